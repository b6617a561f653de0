package export

// SVGExporter passes an already-rendered SVG document through
// unchanged, matching §4.9's vector exporter contract.
type SVGExporter struct{}

// NewSVGExporter returns an SVGExporter.
func NewSVGExporter() *SVGExporter { return &SVGExporter{} }

func (e *SVGExporter) Name() string      { return "svg" }
func (e *SVGExporter) Extension() string { return "svg" }
func (e *SVGExporter) MimeType() string  { return "image/svg+xml" }

// ExportDocument implements DocumentExporter.
func (e *SVGExporter) ExportDocument(d Document) ([]byte, error) {
	out := make([]byte, len(d.Bytes))
	copy(out, d.Bytes)
	return out, nil
}

var _ DocumentExporter = (*SVGExporter)(nil)
