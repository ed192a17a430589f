package service

import (
	"hospital-api/internal/domain"
	"hospital-api/internal/validation"
)

type RoomService struct {
	crud[domain.Room]
}

func NewRoomService(repo domain.RoomRepository, opts ...Option) *RoomService {
	return &RoomService{
		crud: newCrud("room", repo, validation.CheckRoom, func(r *domain.Room) uint { return r.ID }, opts),
	}
}
