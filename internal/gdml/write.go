package gdml

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/vk/cryogeo/internal/engine"
	"github.com/vk/cryogeo/internal/geoerr"
)

func xmlName(local string) xml.Name { return xml.Name{Local: local} }

// Write serializes doc as indented XML with a header.
func Write(w io.Writer, doc *Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write GDML header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return &geoerr.Error{Kind: geoerr.KindExport, Message: "failed to encode GDML", Cause: err}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write GDML trailer: %w", err)
	}
	return nil
}

// Export builds and writes the document for res in one step.
func Export(w io.Writer, res *engine.Result) error {
	doc, err := Build(res)
	if err != nil {
		return err
	}
	return Write(w, doc)
}
