package gdml

import "encoding/xml"

const (
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://service-spi.web.cern.ch/service-spi/app/releases/GDML/schema/gdml.xsd"
)

// Document is the root <gdml> element.
type Document struct {
	XMLName   xml.Name  `xml:"gdml"`
	XSI       string    `xml:"xmlns:xsi,attr,omitempty"`
	Schema    string    `xml:"xsi:noNamespaceSchemaLocation,attr,omitempty"`
	Define    Define    `xml:"define"`
	Materials Materials `xml:"materials"`
	Solids    Solids    `xml:"solids"`
	Structure Structure `xml:"structure"`
	Setup     Setup     `xml:"setup"`
}

// Ref is any element that points at a named entity by its ref attribute.
type Ref struct {
	Ref string `xml:"ref,attr"`
}

type Define struct {
	Positions []Position `xml:"position"`
	Rotations []Rotation `xml:"rotation"`
}

type Position struct {
	Name string  `xml:"name,attr"`
	Unit string  `xml:"unit,attr"`
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	Z    float64 `xml:"z,attr"`
}

type Rotation struct {
	Name string  `xml:"name,attr"`
	Unit string  `xml:"unit,attr"`
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	Z    float64 `xml:"z,attr"`
}

// Materials lists elements before compounds so every reference points
// backwards.
type Materials struct {
	Elements  []Element  `xml:"element"`
	Materials []Material `xml:"material"`
}

type Element struct {
	Name    string   `xml:"name,attr"`
	Formula string   `xml:"formula,attr"`
	Z       int      `xml:"Z,attr"`
	Atom    Quantity `xml:"atom"`
}

type Quantity struct {
	Value float64 `xml:"value,attr"`
	Unit  string  `xml:"unit,attr,omitempty"`
}

// Material is a mixture (fractions) or a molecule (composites).
type Material struct {
	Name       string     `xml:"name,attr"`
	Formula    string     `xml:"formula,attr,omitempty"`
	D          Quantity   `xml:"D"`
	Fractions  []Fraction `xml:"fraction"`
	Composites []Fraction `xml:"composite"`
}

type Fraction struct {
	N   string `xml:"n,attr"`
	Ref string `xml:"ref,attr"`
}

type Solids struct {
	Items []Solid `xml:",any"`
}

// Solid is a <box> or one of the boolean elements; XMLName carries which.
type Solid struct {
	XMLName xml.Name
	Name    string  `xml:"name,attr"`
	LUnit   string  `xml:"lunit,attr,omitempty"`
	X       float64 `xml:"x,attr,omitempty"`
	Y       float64 `xml:"y,attr,omitempty"`
	Z       float64 `xml:"z,attr,omitempty"`
	First   *Ref    `xml:"first"`
	Second  *Ref    `xml:"second"`
}

type Structure struct {
	Volumes []Volume `xml:"volume"`
}

type Volume struct {
	Name        string    `xml:"name,attr"`
	MaterialRef Ref       `xml:"materialref"`
	SolidRef    Ref       `xml:"solidref"`
	PhysVols    []PhysVol `xml:"physvol"`
}

type PhysVol struct {
	Name        string `xml:"name,attr"`
	VolumeRef   Ref    `xml:"volumeref"`
	PositionRef *Ref   `xml:"positionref"`
	RotationRef *Ref   `xml:"rotationref"`
}

type Setup struct {
	Name    string `xml:"name,attr"`
	Version string `xml:"version,attr"`
	World   Ref    `xml:"world"`
}
