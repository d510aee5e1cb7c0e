package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/davenforce/SnowflakeProxy/table"
)

// Renderer turns tabular data plus a chart spec into an embeddable artifact.
type Renderer interface {
	Render(data *table.Table, spec Spec) (string, error)
}

// EChartsRenderer renders specs with go-echarts. The artifact is a
// self-contained HTML document embedding the chart and its data.
type EChartsRenderer struct{}

// NewEChartsRenderer creates the default renderer.
func NewEChartsRenderer() *EChartsRenderer {
	return &EChartsRenderer{}
}

// Render implements Renderer. Raw specs are validated as JSON and emitted
// verbatim; every other recognized kind is mapped onto the matching
// go-echarts chart. Unrecognized kinds fail with UnsupportedKindError.
func (r *EChartsRenderer) Render(data *table.Table, spec Spec) (string, error) {
	switch spec.Kind {
	case KindBar:
		return r.renderBar(data, spec)
	case KindLine:
		return r.renderLine(data, spec)
	case KindPie:
		return r.renderPie(data, spec)
	case KindRaw:
		if !json.Valid(spec.Raw) {
			return "", fmt.Errorf("render: raw spec is not valid JSON")
		}
		return string(spec.Raw), nil
	default:
		return "", &UnsupportedKindError{Kind: spec.Kind}
	}
}

func (r *EChartsRenderer) renderBar(data *table.Table, spec Spec) (string, error) {
	labels, err := labelValues(data, spec)
	if err != nil {
		return "", err
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    spec.Title,
		Subtitle: spec.Subtitle,
	}))
	bar.SetXAxis(labels)

	if len(spec.ValueColumns) == 0 {
		return "", fmt.Errorf("render: bar chart needs at least one value column")
	}
	for _, name := range spec.ValueColumns {
		values, ok := data.ColumnValues(name)
		if !ok {
			return "", fmt.Errorf("render: unknown value column %q", name)
		}
		series := make([]opts.BarData, len(values))
		for i, v := range values {
			series[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(name, series)
	}

	return renderHTML(bar)
}

func (r *EChartsRenderer) renderLine(data *table.Table, spec Spec) (string, error) {
	labels, err := labelValues(data, spec)
	if err != nil {
		return "", err
	}

	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    spec.Title,
		Subtitle: spec.Subtitle,
	}))
	line.SetXAxis(labels)

	if len(spec.ValueColumns) == 0 {
		return "", fmt.Errorf("render: line chart needs at least one value column")
	}
	for _, name := range spec.ValueColumns {
		values, ok := data.ColumnValues(name)
		if !ok {
			return "", fmt.Errorf("render: unknown value column %q", name)
		}
		series := make([]opts.LineData, len(values))
		for i, v := range values {
			series[i] = opts.LineData{Value: v}
		}
		line.AddSeries(name, series)
	}

	return renderHTML(line)
}

func (r *EChartsRenderer) renderPie(data *table.Table, spec Spec) (string, error) {
	if spec.LabelColumn == "" {
		return "", fmt.Errorf("render: pie chart needs a label column")
	}
	if len(spec.ValueColumns) == 0 {
		return "", fmt.Errorf("render: pie chart needs a value column")
	}

	names, ok := data.ColumnValues(spec.LabelColumn)
	if !ok {
		return "", fmt.Errorf("render: unknown label column %q", spec.LabelColumn)
	}
	values, ok := data.ColumnValues(spec.ValueColumns[0])
	if !ok {
		return "", fmt.Errorf("render: unknown value column %q", spec.ValueColumns[0])
	}

	series := make([]opts.PieData, len(values))
	for i, v := range values {
		series[i] = opts.PieData{Name: stringify(names[i]), Value: v}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    spec.Title,
		Subtitle: spec.Subtitle,
	}))
	pie.AddSeries(spec.ValueColumns[0], series)

	return renderHTML(pie)
}

// labelValues resolves the x-axis categories, falling back to row ordinals
// when no label column is configured.
func labelValues(data *table.Table, spec Spec) ([]string, error) {
	if spec.LabelColumn == "" {
		labels := make([]string, data.NumRows())
		for i := range labels {
			labels[i] = strconv.Itoa(i + 1)
		}
		return labels, nil
	}

	values, ok := data.ColumnValues(spec.LabelColumn)
	if !ok {
		return nil, fmt.Errorf("render: unknown label column %q", spec.LabelColumn)
	}
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = stringify(v)
	}
	return labels, nil
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func renderHTML(chart interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
