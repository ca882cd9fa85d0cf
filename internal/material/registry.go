package material

import (
	"fmt"
	"sync"
)

// Registry holds declared materials by name. It is created by the caller and
// handed to every construction call.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Material
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Material)}
}

// Define declares m. Redeclaring a name replaces the earlier material but
// keeps its position in the declaration order; replaced reports whether that
// happened.
func (r *Registry) Define(m Material) (replaced bool, err error) {
	if m == nil || m.MaterialName() == "" {
		return false, fmt.Errorf("%w: material has no name", ErrInvalid)
	}
	if err := m.validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := m.MaterialName()
	_, replaced = r.byName[name]
	if !replaced {
		r.order = append(r.order, name)
	}
	r.byName[name] = m
	return replaced, nil
}

// Lookup returns the material declared under name.
func (r *Registry) Lookup(name string) (Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return m, nil
}

// Names returns material names in declaration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of declared materials.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Resolve checks that every constituent reference names a material declared
// earlier. Molecules may only reference elements.
func (r *Registry) Resolve() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos := make(map[string]int, len(r.order))
	for i, name := range r.order {
		pos[name] = i
	}

	check := func(owner string, ref string, wantElement bool) error {
		i, ok := pos[ref]
		if !ok {
			return fmt.Errorf("%w: %q references %q", ErrUnresolved, owner, ref)
		}
		if i >= pos[owner] {
			return fmt.Errorf("%w: %q references %q which is declared after it", ErrUnresolved, owner, ref)
		}
		if wantElement && r.byName[ref].Kind() != KindElement {
			return fmt.Errorf("%w: molecule %q references non-element %q", ErrUnresolved, owner, ref)
		}
		return nil
	}

	for _, name := range r.order {
		switch m := r.byName[name].(type) {
		case *Mixture:
			for _, c := range m.Components {
				if err := check(name, c.Ref, false); err != nil {
					return err
				}
			}
		case *Molecule:
			for _, a := range m.Atoms {
				if err := check(name, a.Ref, true); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
