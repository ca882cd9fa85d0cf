package hcl

import "github.com/hashicorp/hcl/v2"

// attrBlock holds a block whose attributes are read individually, such as
// `options` and `slots`.
type attrBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// builderBlock is a `builder "<kind>" "<name>"` block.
type builderBlock struct {
	Kind        string     `hcl:"kind,label"`
	Name        string     `hcl:"name,label"`
	SubBuilders []string   `hcl:"subbuilders,optional"`
	Slots       *attrBlock `hcl:"slots,block"`
	Options     *attrBlock `hcl:"options,block"`
}

// fileRoot is the top level of a geometry file.
type fileRoot struct {
	World    string          `hcl:"world,optional"`
	Builders []*builderBlock `hcl:"builder,block"`
}
