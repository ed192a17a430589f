package room

import (
	"time"

	"hospital-api/internal/domain"
)

type RoomModel struct {
	ID        uint   `gorm:"primaryKey"`
	Number    string `gorm:"size:10;not null"`
	Floor     int    `gorm:"not null"`
	Version   int64  `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RoomModel) TableName() string { return "rooms" }

func FromDomain(r *domain.Room) *RoomModel {
	return &RoomModel{ID: r.ID, Number: r.Number, Floor: r.Floor, Version: 1}
}

func (m *RoomModel) ToDomain() domain.Room {
	return domain.Room{ID: m.ID, Number: m.Number, Floor: m.Floor}
}

func (m *RoomModel) Changes() map[string]any {
	return map[string]any{"number": m.Number, "floor": m.Floor}
}
