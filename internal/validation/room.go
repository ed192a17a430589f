package validation

import (
	"strings"

	"hospital-api/internal/domain"
)

const (
	RoomNumberMinLen = 3
	RoomNumberMaxLen = 10
	FloorMin         = 1
	FloorMax         = 10
)

var roomRules = []Rule[domain.Room]{
	{"Number", func(r *domain.Room) bool { return strings.TrimSpace(r.Number) != "" }, "The Number field is required."},
	{"Number", func(r *domain.Room) bool {
		n := runeLen(r.Number)
		return n == 0 || (n >= RoomNumberMinLen && n <= RoomNumberMaxLen)
	}, "The Number field must be between 3 and 10 characters long."},
	{"Floor", func(r *domain.Room) bool { return r.Floor >= FloorMin && r.Floor <= FloorMax }, "The Floor field must be between 1 and 10."},
}

func Room(r *domain.Room) []domain.Violation { return Validate(r, roomRules) }

func CheckRoom(r *domain.Room) error { return check(Room(r)) }
