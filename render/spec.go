// Package render turns tabular query results into embeddable chart
// artifacts. It is a downstream consumer of the proxy's envelopes; the
// caching core never depends on it.
package render

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the chart shapes the renderer understands.
type Kind string

// Known chart kinds. KindRaw is the escape hatch for configurations the
// typed shapes cannot express.
const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
	KindPie  Kind = "pie"
	KindRaw  Kind = "raw"
)

// Spec is a tagged union of the known chart configurations plus a raw
// pass-through. Kind selects which fields apply; unknown kinds fail with
// UnsupportedKindError rather than rendering something half-right.
type Spec struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`

	// LabelColumn names the column supplying x-axis categories (bar, line)
	// or slice names (pie). When empty, bar and line charts fall back to
	// row ordinals.
	LabelColumn string `json:"labelColumn,omitempty" yaml:"label_column,omitempty"`

	// ValueColumns names the columns plotted as series. Bar and line charts
	// accept several; pie uses the first.
	ValueColumns []string `json:"valueColumns,omitempty" yaml:"value_columns,omitempty"`

	// Raw is a complete ECharts option document emitted verbatim when Kind
	// is KindRaw. The other fields are ignored for raw specs.
	Raw json.RawMessage `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// UnsupportedKindError reports a chart kind the renderer does not recognize.
type UnsupportedKindError struct {
	Kind Kind
}

// Error implements the error interface.
func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("render: unsupported chart kind %q", e.Kind)
}
