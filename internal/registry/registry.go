package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/cryogeo/internal/builder"
)

// Module is the interface every builder module implements to be registered.
type Module interface {
	Register(r *Registry)
}

// Kind describes one builder kind.
type Kind struct {
	Name        string
	Description string
	// Slots are the roles that must be bound before construction.
	Slots []string
	// OptionalSlots may be left unbound.
	OptionalSlots []string
	// NewOptions returns a pointer to an option struct holding the kind's
	// defaults. Fields are bound by their `geo` tag.
	NewOptions func() any
	// New validates the decoded options and returns the builder.
	New func(opts any) (builder.Builder, error)
	// Global kinds fill shared state such as the material registry instead
	// of the volume tree. They are constructed whichever builder is the root.
	Global bool
}

// HasSlot reports whether role is one of the kind's required or optional
// slots.
func (k *Kind) HasSlot(role string) bool {
	for _, s := range k.Slots {
		if s == role {
			return true
		}
	}
	for _, s := range k.OptionalSlots {
		if s == role {
			return true
		}
	}
	return false
}

// AllSlots returns required then optional roles.
func (k *Kind) AllSlots() []string {
	return append(append([]string(nil), k.Slots...), k.OptionalSlots...)
}

// Registry holds the registered kinds of a single application instance.
type Registry struct {
	kinds map[string]*Kind
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{kinds: make(map[string]*Kind)}
}

// RegisterKind adds a kind. Registering a name twice is a programming error
// and panics.
func (r *Registry) RegisterKind(k *Kind) {
	if k == nil || k.Name == "" {
		panic("builder kind must have a name")
	}
	if _, exists := r.kinds[k.Name]; exists {
		panic(fmt.Sprintf("builder kind '%s' already registered", k.Name))
	}
	slog.Debug("Registering builder kind.", "kind", k.Name)
	r.kinds[k.Name] = k
}

// Kind looks up a kind by name.
func (r *Registry) Kind(name string) (*Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// Kinds returns every registered kind sorted by name.
func (r *Registry) Kinds() []*Kind {
	out := make([]*Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int { return len(r.kinds) }
