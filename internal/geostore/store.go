// Package geostore keeps every shape and volume registered during an
// assembly, keyed by unique name and kept in registration order so the
// exporter can emit them deterministically.
package geostore

import (
	"errors"
	"fmt"

	"github.com/vk/cryogeo/internal/geom"
)

var (
	// ErrDuplicate is returned when a different object is registered under a
	// name already in use.
	ErrDuplicate = errors.New("geostore: duplicate name")
	// ErrUnregistered is returned when an object refers to a shape or volume
	// that has not been registered first.
	ErrUnregistered = errors.New("geostore: reference to unregistered object")
)

// Store holds shapes and volumes. It is not safe for concurrent use;
// assembly registers from a single goroutine.
type Store struct {
	shapes      map[string]geom.Shape
	shapeOrder  []string
	volumes     map[string]*geom.Volume
	volumeOrder []string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		shapes:  make(map[string]geom.Shape),
		volumes: make(map[string]*geom.Volume),
	}
}

// AddShape registers s. Registering the same shape twice is a no-op. The
// operands of a boolean must already be registered.
func (s *Store) AddShape(sh geom.Shape) error {
	name := sh.Name()
	if existing, ok := s.shapes[name]; ok {
		if existing == sh {
			return nil
		}
		return fmt.Errorf("%w: shape %q", ErrDuplicate, name)
	}
	if b, ok := sh.(*geom.Boolean); ok {
		for _, op := range []geom.Shape{b.First(), b.Second()} {
			if s.shapes[op.Name()] != op {
				return fmt.Errorf("%w: boolean %q uses shape %q", ErrUnregistered, name, op.Name())
			}
		}
	}
	s.shapes[name] = sh
	s.shapeOrder = append(s.shapeOrder, name)
	return nil
}

// AddVolume registers v. Its shape and every placed child must already be
// registered.
func (s *Store) AddVolume(v *geom.Volume) error {
	name := v.Name()
	if existing, ok := s.volumes[name]; ok {
		if existing == v {
			return nil
		}
		return fmt.Errorf("%w: volume %q", ErrDuplicate, name)
	}
	if s.shapes[v.Shape().Name()] != v.Shape() {
		return fmt.Errorf("%w: volume %q uses shape %q", ErrUnregistered, name, v.Shape().Name())
	}
	for _, p := range v.Placements() {
		if s.volumes[p.Volume.Name()] != p.Volume {
			return fmt.Errorf("%w: volume %q places %q", ErrUnregistered, name, p.Volume.Name())
		}
	}
	s.volumes[name] = v
	s.volumeOrder = append(s.volumeOrder, name)
	return nil
}

// Shape retrieves a shape by name.
func (s *Store) Shape(name string) (geom.Shape, bool) {
	sh, ok := s.shapes[name]
	return sh, ok
}

// Volume retrieves a volume by name.
func (s *Store) Volume(name string) (*geom.Volume, bool) {
	v, ok := s.volumes[name]
	return v, ok
}

// Shapes returns all shapes in registration order.
func (s *Store) Shapes() []geom.Shape {
	out := make([]geom.Shape, len(s.shapeOrder))
	for i, n := range s.shapeOrder {
		out[i] = s.shapes[n]
	}
	return out
}

// Volumes returns all volumes in registration order. Children always come
// before the volumes that place them.
func (s *Store) Volumes() []*geom.Volume {
	out := make([]*geom.Volume, len(s.volumeOrder))
	for i, n := range s.volumeOrder {
		out[i] = s.volumes[n]
	}
	return out
}

// Unreachable returns, in registration order, the names of volumes that
// cannot be reached by walking placements down from root.
func (s *Store) Unreachable(root *geom.Volume) []string {
	seen := make(map[*geom.Volume]bool)
	_ = root.Walk(func(v *geom.Volume) error {
		seen[v] = true
		return nil
	})

	var out []string
	for _, n := range s.volumeOrder {
		if !seen[s.volumes[n]] {
			out = append(out, n)
		}
	}
	return out
}
