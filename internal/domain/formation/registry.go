package formation

import (
	"fmt"
	"sync"
)

// Registry serves built-in formations plus admin-defined ones.
// Custom formations are validated before they become visible.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]Formation
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{custom: make(map[string]Formation)}
}

func (r *Registry) Add(f Formation) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if _, err := Get(f.Name); err == nil {
		return fmt.Errorf("%w: %q is a built-in formation", ErrDuplicateFormation, f.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.custom[f.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFormation, f.Name)
	}
	stored := f.Clone()
	stored.Custom = true
	r.custom[f.Name] = stored
	r.order = append(r.order, f.Name)
	return nil
}

// List returns built-ins in catalog order followed by custom formations in insertion order.
func (r *Registry) List() []Formation {
	out := List()

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.order {
		out = append(out, r.custom[name].Clone())
	}
	return out
}

func (r *Registry) Get(name string) (Formation, error) {
	if f, err := Get(name); err == nil {
		return f, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.custom[name]
	if !ok {
		return Formation{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return f.Clone(), nil
}
