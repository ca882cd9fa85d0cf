package gdml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/vk/cryogeo/internal/geoerr"
)

// Verify decodes a GDML document and checks that every reference names
// something declared earlier in the document, that the world volume exists,
// and that every volume is reachable from it.
func Verify(r io.Reader) error {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return &geoerr.Error{Kind: geoerr.KindExport, Message: "failed to decode GDML", Cause: err}
	}
	return VerifyDocument(&doc)
}

// VerifyDocument runs the checks of Verify on an already decoded document.
func VerifyDocument(doc *Document) error {
	v := &verifier{}

	defines := v.declare("define")
	for _, p := range doc.Define.Positions {
		defines.add(p.Name)
	}
	for _, r := range doc.Define.Rotations {
		defines.add(r.Name)
	}

	mats := v.declare("material")
	for _, e := range doc.Materials.Elements {
		mats.add(e.Name)
	}
	for _, m := range doc.Materials.Materials {
		for _, f := range m.Fractions {
			mats.use(m.Name, f.Ref)
		}
		for _, c := range m.Composites {
			mats.use(m.Name, c.Ref)
		}
		mats.add(m.Name)
	}

	solids := v.declare("solid")
	for _, s := range doc.Solids.Items {
		if s.First != nil {
			solids.use(s.Name, s.First.Ref)
		}
		if s.Second != nil {
			solids.use(s.Name, s.Second.Ref)
		}
		if s.XMLName.Local != "box" && (s.First == nil || s.Second == nil) {
			v.fail("%s %q needs both operands", s.XMLName.Local, s.Name)
		}
		solids.add(s.Name)
	}

	vols := v.declare("volume")
	children := make(map[string][]string)
	for _, vol := range doc.Structure.Volumes {
		mats.use(vol.Name, vol.MaterialRef.Ref)
		solids.use(vol.Name, vol.SolidRef.Ref)
		for _, pv := range vol.PhysVols {
			vols.use(vol.Name, pv.VolumeRef.Ref)
			children[vol.Name] = append(children[vol.Name], pv.VolumeRef.Ref)
			if pv.PositionRef != nil {
				defines.use(pv.Name, pv.PositionRef.Ref)
			}
			if pv.RotationRef != nil {
				defines.use(pv.Name, pv.RotationRef.Ref)
			}
		}
		vols.add(vol.Name)
	}

	world := doc.Setup.World.Ref
	if world == "" {
		v.fail("setup names no world volume")
	} else {
		vols.use("setup", world)
		reached := map[string]bool{}
		var walk func(string)
		walk = func(name string) {
			if reached[name] {
				return
			}
			reached[name] = true
			for _, c := range children[name] {
				walk(c)
			}
		}
		walk(world)
		for _, vol := range doc.Structure.Volumes {
			if !reached[vol.Name] {
				v.fail("volume %q is not reachable from world %q", vol.Name, world)
			}
		}
	}

	return v.err()
}

type verifier struct {
	problems []string
}

func (v *verifier) fail(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *verifier) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return geoerr.Export("GDML document does not resolve:\n- %s", strings.Join(v.problems, "\n- "))
}

// namespace tracks the names declared so far in one section.
type namespace struct {
	v     *verifier
	what  string
	names map[string]bool
}

func (v *verifier) declare(what string) *namespace {
	return &namespace{v: v, what: what, names: make(map[string]bool)}
}

func (n *namespace) add(name string) {
	if name == "" {
		n.v.fail("%s without a name", n.what)
		return
	}
	if n.names[name] {
		n.v.fail("%s %q is declared twice", n.what, name)
	}
	n.names[name] = true
}

func (n *namespace) use(owner, ref string) {
	if !n.names[ref] {
		n.v.fail("%q references %s %q which is not yet defined", owner, n.what, ref)
	}
}
