package ez

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-api/internal/domain"
	resp "hospital-api/internal/transport/http/response"
)

// Service is what Crud needs from the layer below.
type Service[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id uint) error
}

type CrudHooks[T any] struct {
	// Validate runs on decoded POST bodies before the service is called.
	Validate func(m *T) []domain.Violation
	// Present shapes an entity for output, e.g. to drop secrets.
	Present func(m *T) any
}

type CrudConfig[T any] struct {
	Group   *gin.RouterGroup
	Path    string // e.g. "/rooms"
	Service Service[T]
	Log     *zap.Logger
	// ID exposes the identifier field of an entity.
	ID    func(m *T) *uint
	Hooks CrudHooks[T]
}

// Crud mounts list, get, create, update and delete for one resource.
func Crud[T any](cfg CrudConfig[T]) {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	present := cfg.Hooks.Present
	if present == nil {
		present = func(m *T) any { return m }
	}
	svc := cfg.Service
	base := cfg.Group.BasePath() + cfg.Path

	cfg.Group.GET(cfg.Path, func(c *gin.Context) {
		items, err := svc.GetAll(c.Request.Context())
		if err != nil {
			Fail(c, cfg.Log, err)
			return
		}
		out := make([]any, 0, len(items))
		for i := range items {
			out = append(out, present(&items[i]))
		}
		c.JSON(http.StatusOK, resp.OK(out))
	})

	cfg.Group.GET(cfg.Path+"/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		m, err := svc.GetByID(c.Request.Context(), id)
		if err != nil {
			Fail(c, cfg.Log, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(present(m)))
	})

	cfg.Group.POST(cfg.Path, func(c *gin.Context) {
		m := new(T)
		if err := c.ShouldBindJSON(m); err != nil {
			badBody(c, err)
			return
		}
		if cfg.Hooks.Validate != nil {
			if vs := cfg.Hooks.Validate(m); len(vs) > 0 {
				Fail(c, cfg.Log, &domain.ValidationError{Violations: vs})
				return
			}
		}
		if err := svc.Create(c.Request.Context(), m); err != nil {
			Fail(c, cfg.Log, err)
			return
		}
		c.Header("Location", base+"/"+strconv.FormatUint(uint64(*cfg.ID(m)), 10))
		c.JSON(http.StatusCreated, resp.OK(present(m)))
	})

	cfg.Group.PUT(cfg.Path+"/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		m := new(T)
		if err := c.ShouldBindJSON(m); err != nil {
			badBody(c, err)
			return
		}
		// a body without an id addresses the path id
		switch bid := cfg.ID(m); *bid {
		case 0:
			*bid = id
		case id:
		default:
			Fail(c, cfg.Log, BadRequest("id in body does not match id in path"))
			return
		}
		if err := svc.Update(c.Request.Context(), m); err != nil {
			Fail(c, cfg.Log, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(present(m)))
	})

	cfg.Group.DELETE(cfg.Path+"/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if _, err := svc.GetByID(c.Request.Context(), id); err != nil {
			Fail(c, cfg.Log, err)
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			Fail(c, cfg.Log, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func badBody(c *gin.Context, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Error(resp.CodeTooLarge, ""))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
}

// pathID parses :id, answering 400 itself when it is not a positive integer.
func pathID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || n == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid id "+strconv.Quote(c.Param("id"))))
		return 0, false
	}
	return uint(n), true
}
