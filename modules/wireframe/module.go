package wireframe

import (
	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

const inch = 25.4

// Register registers both wire-frame kinds with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "wire_frame_one",
		Description: "single ladder frame of hollow stainless bars",
		NewOptions: func() any {
			return &FrameOptions{
				BarWidth:     4 * inch,
				BarThickness: 3.05,
				Crosses:      2,
				CrossGap:     560.20,
				CrossWidth:   3 * inch,
				Thickness:    2 * inch,
				Height:       2036.2,
				Width:        300.8 + 2*4*inch,
				BarMaterial:  "Stainless",
				Material:     "LiquidArgon",
			}
		},
		New: func(o any) (builder.Builder, error) {
			return NewFrame(o.(*FrameOptions))
		},
	})
	r.RegisterKind(&registry.Kind{
		Name:        "wire_frame",
		Description: "small, medium and large frames combined into one anode plane",
		Slots:       []string{SlotSmall, SlotMedium, SlotLarge},
		NewOptions: func() any {
			return &AssemblyOptions{YGap: 1 * inch, ZGap: 1 * inch, Material: "LiquidArgon"}
		},
		New: func(o any) (builder.Builder, error) {
			return NewAssembly(o.(*AssemblyOptions))
		},
	})
}
