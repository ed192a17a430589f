package service

import (
	"hospital-api/internal/domain"
	"hospital-api/internal/validation"
)

// UserService never hands out passwords: reads come back with Password
// cleared, and nothing cached holds one.
type UserService struct {
	crud[domain.User]
}

func NewUserService(repo domain.UserRepository, opts ...Option) *UserService {
	s := &UserService{
		crud: newCrud("user", repo, validation.CheckUser, func(u *domain.User) uint { return u.ID }, opts),
	}
	s.redact = func(u *domain.User) { u.Password = "" }
	return s
}
