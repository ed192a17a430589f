package repo

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hospital-api/internal/domain"
	"hospital-api/internal/feature/room"
	"hospital-api/internal/feature/user"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.UserModel{}, &room.RoomModel{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

var seedRooms = []domain.Room{
	{Number: "101A", Floor: 1},
	{Number: "204", Floor: 2},
	{Number: "305B", Floor: 3},
}

var seedUsers = []domain.User{
	{
		FirstName: "John", LastName: "Doe", Emails: "john.doe@example.com", Password: "password",
		Role: domain.RoleUser, Address: "123 Main St", PhoneNumber: "555-1234", Jmbg: 1234567890, Gender: domain.GenderMale,
	},
	{
		FirstName: "Jane", LastName: "Smith", Emails: "jane.smith@example.com", Password: "password",
		Role: domain.RoleUser, Address: "456 Elm St", PhoneNumber: "555-5678", Jmbg: 987654321, Gender: domain.GenderFemale,
	},
	{
		FirstName: "Bob", LastName: "Johnson", Emails: "bob.johnson@example.com", Password: "password",
		Role: domain.RoleUser, Address: "789 Oak St", PhoneNumber: "555-9012", Jmbg: 11111111, Gender: domain.GenderMale,
	},
}

// Seed fills empty tables with the bootstrap rooms and users. Tables that already
// hold rows are left alone, so running it twice is harmless.
func Seed(ctx context.Context, db *gorm.DB, l *zap.Logger) error {
	rooms := NewRoomRepo(db)
	if err := seedTable(ctx, db, &room.RoomModel{}, "rooms", l, func() error {
		for i := range seedRooms {
			r := seedRooms[i]
			if err := rooms.Create(ctx, &r); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	users := NewUserRepo(db)
	return seedTable(ctx, db, &user.UserModel{}, "users", l, func() error {
		for i := range seedUsers {
			u := seedUsers[i]
			if err := users.Create(ctx, &u); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedTable(ctx context.Context, db *gorm.DB, model any, table string, l *zap.Logger, fill func() error) error {
	var n int64
	if err := db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return fmt.Errorf("seed %s: %w", table, err)
	}
	if n > 0 {
		l.Debug("seed skipped", zap.String("table", table), zap.Int64("rows", n))
		return nil
	}
	if err := fill(); err != nil {
		return fmt.Errorf("seed %s: %w", table, err)
	}
	l.Info("seeded", zap.String("table", table))
	return nil
}
