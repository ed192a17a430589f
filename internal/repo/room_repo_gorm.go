package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hospital-api/internal/domain"
	"hospital-api/internal/feature/room"
	"hospital-api/internal/validation"
)

const kindRoom = "room"

type RoomRepo struct{ db *gorm.DB }

func NewRoomRepo(db *gorm.DB) *RoomRepo { return &RoomRepo{db: db} }

var _ domain.RoomRepository = (*RoomRepo)(nil)

func (r *RoomRepo) GetAll(ctx context.Context) ([]domain.Room, error) {
	var rows []room.RoomModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	out := make([]domain.Room, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

func (r *RoomRepo) GetByID(ctx context.Context, id uint) (*domain.Room, error) {
	var m room.RoomModel
	if err := find(ctx, r.db, &m, kindRoom, id); err != nil {
		return nil, err
	}
	rm := m.ToDomain()
	return &rm, nil
}

func (r *RoomRepo) Create(ctx context.Context, rm *domain.Room) error {
	if rm == nil {
		return domain.ErrNullInput
	}
	if err := validation.CheckRoom(rm); err != nil {
		return err
	}
	m := room.FromDomain(rm)
	if err := insert(ctx, r.db, m, kindRoom, rm.ID); err != nil {
		return err
	}
	rm.ID = m.ID
	return nil
}

func (r *RoomRepo) Update(ctx context.Context, rm *domain.Room) error {
	if rm == nil {
		return domain.ErrNullInput
	}
	var cur room.RoomModel
	if err := find(ctx, r.db, &cur, kindRoom, rm.ID); err != nil {
		return err
	}
	if err := validation.CheckRoom(rm); err != nil {
		return err
	}
	return updateVersioned(ctx, r.db, &room.RoomModel{}, kindRoom, rm.ID, cur.Version, room.FromDomain(rm).Changes())
}

func (r *RoomRepo) Delete(ctx context.Context, rm *domain.Room) error {
	if rm == nil {
		return domain.ErrNullInput
	}
	var cur room.RoomModel
	if err := find(ctx, r.db, &cur, kindRoom, rm.ID); err != nil {
		return err
	}
	return deleteVersioned(ctx, r.db, &room.RoomModel{}, kindRoom, rm.ID, cur.Version)
}
