package larsoft

import (
	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers both larsoft kinds with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "larsoft_tpc",
		Description: "TPC cell sized by its [SML][SL] code",
		NewOptions: func() any {
			return &TPCOptions{
				XLong:    2284.43,
				XShort:   284.43,
				YSmall:   865,
				YMedium:  1145,
				YLarge:   1960,
				ZSize:    534.9,
				Material: "LiquidArgon",
			}
		},
		New: func(o any) (builder.Builder, error) {
			return NewTPC(o.(*TPCOptions))
		},
	})
	r.RegisterKind(&registry.Kind{
		Name:          "larsoft_cryostat",
		Description:   "six TPC cells around a drift gap, with optional wire frame and cathodes",
		Slots:         CellSlots,
		OptionalSlots: []string{SlotWireFrame, SlotCPA},
		NewOptions: func() any {
			return &CryostatOptions{
				XGap:     100,
				XOffset:  -1000,
				YGap:     10,
				YOffset:  -180,
				ZGap:     10,
				Material: "LiquidArgon",
			}
		},
		New: func(o any) (builder.Builder, error) {
			return NewCryostat(o.(*CryostatOptions))
		},
	})
}
