package room

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-api/internal/domain"
	"hospital-api/internal/transport/http/ez"
	"hospital-api/internal/validation"
)

// Module exposes /rooms.
type Module struct {
	Service ez.Service[domain.Room]
	Log     *zap.Logger
}

func (Module) Priority() int { return 10 }

func (m Module) MountAPI(g *gin.RouterGroup) {
	ez.Crud(ez.CrudConfig[domain.Room]{
		Group:   g,
		Path:    "/rooms",
		Service: m.Service,
		Log:     m.Log,
		ID:      func(r *domain.Room) *uint { return &r.ID },
		Hooks:   ez.CrudHooks[domain.Room]{Validate: validation.Room},
	})
}
