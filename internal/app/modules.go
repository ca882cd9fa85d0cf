package app

import (
	"github.com/vk/cryogeo/internal/registry"
	"github.com/vk/cryogeo/modules/cage"
	"github.com/vk/cryogeo/modules/cryostat"
	"github.com/vk/cryogeo/modules/drift"
	"github.com/vk/cryogeo/modules/larsoft"
	"github.com/vk/cryogeo/modules/matter"
	"github.com/vk/cryogeo/modules/sandwich"
	"github.com/vk/cryogeo/modules/slab"
	"github.com/vk/cryogeo/modules/wireframe"
	"github.com/vk/cryogeo/modules/world"
)

// coreModules is the definitive list of all modules that are compiled into
// the cryogeo binary.
var coreModules = []registry.Module{
	&world.Module{},
	&matter.Module{},
	&cryostat.Module{},
	&sandwich.Module{},
	&cage.Module{},
	&slab.Module{},
	&drift.Module{},
	&wireframe.Module{},
	&larsoft.Module{},
}
