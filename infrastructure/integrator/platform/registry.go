package platform

import (
	"fmt"

	"github.com/vfg2006/campaign-engine/internal/domain"
)

// Registry associa cada plataforma ao adaptador da rede que a atende
type Registry struct {
	adapters map[domain.Platform]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[domain.Platform]Adapter)}
}

// Register associa o adaptador às plataformas informadas
func (r *Registry) Register(adapter Adapter, platforms ...domain.Platform) *Registry {
	for _, p := range platforms {
		r.adapters[p] = adapter
	}
	return r
}

func (r *Registry) Adapter(p domain.Platform) (Adapter, error) {
	adapter, ok := r.adapters[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p)
	}
	return adapter, nil
}

func (r *Registry) Platforms() []domain.Platform {
	platforms := make([]domain.Platform, 0, len(r.adapters))
	for _, p := range domain.AllPlatforms() {
		if _, ok := r.adapters[p]; ok {
			platforms = append(platforms, p)
		}
	}
	return platforms
}
