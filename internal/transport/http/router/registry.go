package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule mounts its routes under /api/v1.
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// Modules may implement prioritizer to control mount order (lower first).
// The default is 100.
type prioritizer interface{ Priority() int }

type Registry struct {
	mods []APIModule
}

func NewRegistry(mods ...APIModule) *Registry {
	r := &Registry{}
	for _, m := range mods {
		r.Register(m)
	}
	return r
}

func (r *Registry) Register(m APIModule) { r.mods = append(r.mods, m) }

// MountAPI mounts every registered module on api in priority order.
func (r *Registry) MountAPI(api *gin.RouterGroup) {
	mods := append([]APIModule(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(api)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
