package user

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-api/internal/domain"
	"hospital-api/internal/transport/http/ez"
	"hospital-api/internal/validation"
)

// Module exposes /users.
type Module struct {
	Service ez.Service[domain.User]
	Log     *zap.Logger
}

func (Module) Priority() int { return 20 }

func (m Module) MountAPI(g *gin.RouterGroup) {
	ez.Crud(ez.CrudConfig[domain.User]{
		Group:   g,
		Path:    "/users",
		Service: m.Service,
		Log:     m.Log,
		ID:      func(u *domain.User) *uint { return &u.ID },
		Hooks: ez.CrudHooks[domain.User]{
			Validate: validation.User,
			Present:  Present,
		},
	})
}

// Present drops the password from a user before it is written out.
func Present(u *domain.User) any {
	out := *u
	out.Password = ""
	return out
}
