package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
)

type FormationRepository struct {
	mu    sync.RWMutex
	items []formation.Formation
}

func NewFormationRepository() *FormationRepository {
	return &FormationRepository{}
}

func (r *FormationRepository) List(_ context.Context) ([]formation.Formation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]formation.Formation, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item.Clone())
	}
	return out, nil
}

func (r *FormationRepository) Create(_ context.Context, f formation.Formation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.Name == f.Name {
			return fmt.Errorf("%w: %q", formation.ErrDuplicateFormation, f.Name)
		}
	}
	r.items = append(r.items, f.Clone())
	return nil
}
