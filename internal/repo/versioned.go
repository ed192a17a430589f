package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hospital-api/internal/domain"
)

// find loads the row with id into dst, mapping a missing row to *domain.NotFoundError.
func find(ctx context.Context, db *gorm.DB, dst any, kind string, id uint) error {
	err := db.WithContext(ctx).First(dst, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFound(kind, id)
	case err != nil:
		return fmt.Errorf("get %s %d: %w", kind, id, err)
	}
	return nil
}

// insert creates row. A duplicate key is AlreadyExists only when the caller
// chose the id; otherwise it is a store failure.
func insert(ctx context.Context, db *gorm.DB, row any, kind string, id uint) error {
	db = db.WithContext(ctx)
	var err error
	if id == 0 {
		err = db.Create(row).Error
	} else {
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(row).Error; err != nil {
				return err
			}
			return syncSequence(tx, row)
		})
	}
	switch {
	case err == nil:
		return nil
	case id != 0 && isDupKey(err):
		return domain.Exists(kind, id)
	default:
		return fmt.Errorf("create %s: %w", kind, err)
	}
}

type tabler interface{ TableName() string }

// syncSequence moves a postgres id sequence past explicitly inserted ids, so
// later inserts without an id do not collide with them.
func syncSequence(tx *gorm.DB, row any) error {
	t, ok := row.(tabler)
	if !ok {
		return nil
	}
	q := sequenceSyncSQL(tx.Dialector.Name(), t.TableName())
	if q == "" {
		return nil
	}
	return tx.Exec(q).Error
}

func sequenceSyncSQL(dialect, table string) string {
	if dialect != "postgres" {
		return ""
	}
	return fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT MAX(id) FROM %[1]s))", table)
}

// updateVersioned overwrites changes on the row (id, version) and bumps its version.
// Zero rows affected means another writer got there first.
func updateVersioned(ctx context.Context, db *gorm.DB, model any, kind string, id uint, version int64, changes map[string]any) error {
	changes["version"] = version + 1
	res := db.WithContext(ctx).Model(model).
		Where("id = ? AND version = ?", id, version).
		Updates(changes)
	if res.Error != nil {
		return fmt.Errorf("update %s %d: %w", kind, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Conflict(kind, id)
	}
	return nil
}

// deleteVersioned removes the row (id, version). When nothing was removed the row either
// vanished (NotFound) or was modified since it was read (Conflict).
func deleteVersioned(ctx context.Context, db *gorm.DB, model any, kind string, id uint, version int64) error {
	db = db.WithContext(ctx)
	res := db.Where("id = ? AND version = ?", id, version).Delete(model)
	if res.Error != nil {
		return fmt.Errorf("delete %s %d: %w", kind, id, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var n int64
	if err := db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	if n == 0 {
		return domain.NotFound(kind, id)
	}
	return domain.Conflict(kind, id)
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without error translation
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
