package validation

import (
	"strings"

	"hospital-api/internal/domain"
)

const nameMaxLen = 50

var userRules = []Rule[domain.User]{
	{"Emails", func(u *domain.User) bool { return strings.TrimSpace(u.Emails) != "" }, "The Emails field is required."},
	{"Emails", func(u *domain.User) bool { return u.Emails == "" || IsEmail(u.Emails) }, "The Emails field is not a valid e-mail address."},
	{"Password", func(u *domain.User) bool { return strings.TrimSpace(u.Password) != "" }, "The Password field is required."},
	{"FirstName", func(u *domain.User) bool { return strings.TrimSpace(u.FirstName) != "" }, "The FirstName field is required."},
	{"FirstName", func(u *domain.User) bool { return runeLen(u.FirstName) <= nameMaxLen }, "The field FirstName must be a string with a maximum length of 50."},
	{"LastName", func(u *domain.User) bool { return strings.TrimSpace(u.LastName) != "" }, "The LastName field is required."},
	{"LastName", func(u *domain.User) bool { return runeLen(u.LastName) <= nameMaxLen }, "The field LastName must be a string with a maximum length of 50."},
	{"Role", func(u *domain.User) bool { return u.Role.Valid() }, "The Role field is not a valid role."},
	{"PhoneNumber", func(u *domain.User) bool { return u.PhoneNumber == "" || IsPhone(u.PhoneNumber) }, "The PhoneNumber field is not a valid phone number."},
	{"Gender", func(u *domain.User) bool { return u.Gender.Valid() }, "The Gender field is not a valid gender."},
}

func User(u *domain.User) []domain.Violation { return Validate(u, userRules) }

func CheckUser(u *domain.User) error { return check(User(u)) }
