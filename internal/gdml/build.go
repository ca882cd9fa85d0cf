package gdml

import (
	"strconv"

	"github.com/vk/cryogeo/internal/engine"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/material"
)

// Build converts an assembly result into a GDML document. Solids and
// volumes are emitted children first, so the document never references a
// name before declaring it.
func Build(res *engine.Result) (*Document, error) {
	if res == nil || res.Root == nil {
		return nil, geoerr.Export("nothing to export: no root volume")
	}
	if res.Materials == nil {
		return nil, geoerr.Export("nothing to export: no material registry")
	}

	b := &docBuilder{
		doc: &Document{
			XSI:    xsiNamespace,
			Schema: schemaLocation,
			Setup:  Setup{Name: "Default", Version: "1.0", World: Ref{Ref: res.Root.Name()}},
		},
		mats:    res.Materials,
		solids:  make(map[string]geom.Shape),
		volumes: make(map[string]*geom.Volume),
		defines: make(map[string]bool),
	}
	if err := b.addMaterials(); err != nil {
		return nil, err
	}
	if err := b.addVolume(res.Root); err != nil {
		return nil, err
	}
	return b.doc, nil
}

type docBuilder struct {
	doc     *Document
	mats    *material.Registry
	solids  map[string]geom.Shape
	volumes map[string]*geom.Volume
	defines map[string]bool
}

func (b *docBuilder) addMaterials() error {
	if err := b.mats.Resolve(); err != nil {
		return geoerr.Export("materials do not resolve: %v", err)
	}
	for _, name := range b.mats.Names() {
		m, err := b.mats.Lookup(name)
		if err != nil {
			return geoerr.Export("material %q: %v", name, err)
		}
		switch mat := m.(type) {
		case *material.Element:
			b.doc.Materials.Elements = append(b.doc.Materials.Elements, Element{
				Name:    mat.Name,
				Formula: mat.Symbol,
				Z:       mat.Z,
				Atom:    Quantity{Value: float64(mat.MolarMass), Unit: "g/mole"},
			})
		case *material.Mixture:
			out := Material{Name: mat.Name, D: Quantity{Value: float64(mat.Density), Unit: "g/cm3"}}
			for _, c := range mat.Components {
				out.Fractions = append(out.Fractions, Fraction{N: strconv.FormatFloat(c.Fraction, 'g', -1, 64), Ref: c.Ref})
			}
			b.doc.Materials.Materials = append(b.doc.Materials.Materials, out)
		case *material.Molecule:
			out := Material{Name: mat.Name, Formula: mat.Name, D: Quantity{Value: float64(mat.Density), Unit: "g/cm3"}}
			for _, a := range mat.Atoms {
				out.Composites = append(out.Composites, Fraction{N: strconv.Itoa(a.Count), Ref: a.Ref})
			}
			b.doc.Materials.Materials = append(b.doc.Materials.Materials, out)
		}
	}
	return nil
}

func (b *docBuilder) addSolid(s geom.Shape) error {
	if prev, ok := b.solids[s.Name()]; ok {
		if prev != s {
			return geoerr.Export("two different solids are named %q", s.Name())
		}
		return nil
	}

	switch sh := s.(type) {
	case *geom.Box:
		full := sh.Extents().Scale(2)
		b.doc.Solids.Items = append(b.doc.Solids.Items, Solid{
			XMLName: xmlName("box"),
			Name:    sh.Name(),
			LUnit:   "mm",
			X:       full.X,
			Y:       full.Y,
			Z:       full.Z,
		})
	case *geom.Boolean:
		if err := b.addSolid(sh.First()); err != nil {
			return err
		}
		if err := b.addSolid(sh.Second()); err != nil {
			return err
		}
		b.doc.Solids.Items = append(b.doc.Solids.Items, Solid{
			XMLName: xmlName(sh.Op().String()),
			Name:    sh.Name(),
			First:   &Ref{Ref: sh.First().Name()},
			Second:  &Ref{Ref: sh.Second().Name()},
		})
	default:
		return geoerr.Export("solid %q has unsupported kind %v", s.Name(), s.Kind())
	}
	b.solids[s.Name()] = s
	return nil
}

func (b *docBuilder) addVolume(v *geom.Volume) error {
	if prev, ok := b.volumes[v.Name()]; ok {
		if prev != v {
			return geoerr.Export("two different volumes are named %q", v.Name())
		}
		return nil
	}
	// Mark before descending so a placement cycle is reported, not followed.
	b.volumes[v.Name()] = v

	if _, err := b.mats.Lookup(v.Material()); err != nil {
		return geoerr.Export("volume %q uses undefined material %q", v.Name(), v.Material())
	}
	if err := b.addSolid(v.Shape()); err != nil {
		return err
	}

	out := Volume{
		Name:        v.Name(),
		MaterialRef: Ref{Ref: v.Material()},
		SolidRef:    Ref{Ref: v.Shape().Name()},
	}
	for _, p := range v.Placements() {
		if err := b.addVolume(p.Volume); err != nil {
			return err
		}
		pv := PhysVol{Name: p.Name, VolumeRef: Ref{Ref: p.Volume.Name()}}
		if p.Position != (geom.Vec3{}) {
			name := p.Name + "_pos"
			if err := b.define(name); err != nil {
				return err
			}
			b.doc.Define.Positions = append(b.doc.Define.Positions, Position{
				Name: name, Unit: "mm", X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z,
			})
			pv.PositionRef = &Ref{Ref: name}
		}
		if !p.Rotation.IsZero() {
			name := p.Name + "_rot"
			if err := b.define(name); err != nil {
				return err
			}
			b.doc.Define.Rotations = append(b.doc.Define.Rotations, Rotation{
				Name: name, Unit: "deg", X: p.Rotation.X, Y: p.Rotation.Y, Z: p.Rotation.Z,
			})
			pv.RotationRef = &Ref{Ref: name}
		}
		out.PhysVols = append(out.PhysVols, pv)
	}
	b.doc.Structure.Volumes = append(b.doc.Structure.Volumes, out)
	return nil
}

func (b *docBuilder) define(name string) error {
	if b.defines[name] {
		return geoerr.Export("define %q is declared twice", name)
	}
	b.defines[name] = true
	return nil
}
