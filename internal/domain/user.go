package domain

import "fmt"

type Role int

const (
	RoleUser Role = iota
	RoleAdministrator
)

var roleNames = map[Role]string{
	RoleUser:          "USER",
	RoleAdministrator: "ADMINISTRATOR",
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	for k, v := range roleNames {
		if v == string(b) {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown role %q", string(b))
}

type Gender int

const (
	GenderMale Gender = iota
	GenderFemale
)

var genderNames = map[Gender]string{
	GenderMale:   "MALE",
	GenderFemale: "FEMALE",
}

func (g Gender) Valid() bool {
	_, ok := genderNames[g]
	return ok
}

func (g Gender) String() string {
	if s, ok := genderNames[g]; ok {
		return s
	}
	return fmt.Sprintf("Gender(%d)", int(g))
}

func (g Gender) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid gender %d", int(g))
	}
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(b []byte) error {
	for k, v := range genderNames {
		if v == string(b) {
			*g = k
			return nil
		}
	}
	return fmt.Errorf("unknown gender %q", string(b))
}

// User is a hospital account. Address, PhoneNumber and Jmbg are optional; their zero
// values mean "absent". The biometric series are optional as well.
type User struct {
	ID          uint   `json:"id"`
	Emails      string `json:"emails"`
	Password    string `json:"password,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        Role   `json:"role"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Jmbg        int64  `json:"jmbg,omitempty"`
	Gender      Gender `json:"gender"`

	HeartRates       []float64 `json:"heartRates,omitempty"`
	BloodSugarLevels []float64 `json:"bloodSugarLevels,omitempty"`
}

type UserRepository = Repository[User]
