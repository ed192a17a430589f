package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-api/internal/domain"
	"hospital-api/internal/validation"
)

func TestRoom(t *testing.T) {
	tests := []struct {
		name   string
		room   domain.Room
		fields []string
	}{
		{"valid", domain.Room{Number: "101A", Floor: 1}, nil},
		{"top floor", domain.Room{Number: "1001", Floor: 10}, nil},
		{"too short and too high", domain.Room{Number: "A", Floor: 15}, []string{"Number", "Floor"}},
		{"missing number", domain.Room{Floor: 2}, []string{"Number"}},
		{"too long", domain.Room{Number: "ROOM-123456", Floor: 2}, []string{"Number"}},
		{"floor zero", domain.Room{Number: "204", Floor: 0}, []string{"Floor"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vs := validation.Room(&tc.room)
			if tc.fields == nil {
				assert.Empty(t, vs)
				assert.NoError(t, validation.CheckRoom(&tc.room))
				return
			}
			assert.Equal(t, tc.fields, fields(vs))
			require.ErrorIs(t, validation.CheckRoom(&tc.room), domain.ErrValidationFailed)
		})
	}
}
