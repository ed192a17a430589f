package user

import (
	"time"

	"gorm.io/datatypes"

	"hospital-api/internal/domain"
)

// UserModel is the persisted row of a domain.User. Version is the optimistic
// concurrency token, bumped on every write.
type UserModel struct {
	ID          uint   `gorm:"primaryKey"`
	Emails      string `gorm:"type:text;not null"`
	Password    string `gorm:"type:text;not null"`
	FirstName   string `gorm:"size:50;not null"`
	LastName    string `gorm:"size:50;not null"`
	Role        int    `gorm:"not null;default:0"`
	Address     *string
	PhoneNumber *string
	Jmbg        *int64
	Gender      int `gorm:"not null;default:0"`

	HeartRates       datatypes.JSONSlice[float64]
	BloodSugarLevels datatypes.JSONSlice[float64]

	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func FromDomain(u *domain.User) *UserModel {
	return &UserModel{
		ID:               u.ID,
		Emails:           u.Emails,
		Password:         u.Password,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Role:             int(u.Role),
		Address:          optString(u.Address),
		PhoneNumber:      optString(u.PhoneNumber),
		Jmbg:             optInt(u.Jmbg),
		Gender:           int(u.Gender),
		HeartRates:       datatypes.JSONSlice[float64](u.HeartRates),
		BloodSugarLevels: datatypes.JSONSlice[float64](u.BloodSugarLevels),
		Version:          1,
	}
}

func (m *UserModel) ToDomain() domain.User {
	u := domain.User{
		ID:               m.ID,
		Emails:           m.Emails,
		Password:         m.Password,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Role:             domain.Role(m.Role),
		Gender:           domain.Gender(m.Gender),
		HeartRates:       []float64(m.HeartRates),
		BloodSugarLevels: []float64(m.BloodSugarLevels),
	}
	if m.Address != nil {
		u.Address = *m.Address
	}
	if m.PhoneNumber != nil {
		u.PhoneNumber = *m.PhoneNumber
	}
	if m.Jmbg != nil {
		u.Jmbg = *m.Jmbg
	}
	return u
}

// Changes lists every writable column, zero values included, for a full overwrite.
func (m *UserModel) Changes() map[string]any {
	return map[string]any{
		"emails":             m.Emails,
		"password":           m.Password,
		"first_name":         m.FirstName,
		"last_name":          m.LastName,
		"role":               m.Role,
		"address":            m.Address,
		"phone_number":       m.PhoneNumber,
		"jmbg":               m.Jmbg,
		"gender":             m.Gender,
		"heart_rates":        m.HeartRates,
		"blood_sugar_levels": m.BloodSugarLevels,
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}
