package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yndnr/promwalk/internal/core/model"
)

// Table renders one row per metric in aligned columns:
//
//	NAME                 TYPE     LABELS                  VALUE
//	http_requests_total  COUNTER  method=post,code=200    1027.000000
//
// Summaries and histograms show count and sum as the value and their
// quantiles or buckets in the DETAIL column. Rows are written when the
// walk finishes.
type Table struct {
	Headers []string
	Rows    [][]string

	out       *sink
	noHeaders bool
}

var _ Renderer = (*Table)(nil)

// NewTable returns a table renderer writing to w.
func NewTable(w io.Writer, noHeaders bool) *Table {
	return &Table{out: &sink{w: w}, noHeaders: noHeaders}
}

func (t *Table) Start() {
	t.SetHeaders("NAME", "TYPE", "LABELS", "VALUE", "DETAIL")
	t.Rows = nil
}

func (t *Table) Family(f *model.Family, _ int) {
	if f.Type() != model.TypeUntyped {
		return
	}
	for _, m := range f.Metrics() {
		t.value(m, m.(*model.Untyped).Value())
	}
}

func (t *Table) Counter(_ *model.Family, m *model.Counter, _ int) {
	t.value(m, m.Value())
}

func (t *Table) Gauge(_ *model.Family, m *model.Gauge, _ int) {
	t.value(m, m.Value())
}

func (t *Table) Summary(_ *model.Family, m *model.Summary, _ int) {
	detail := make([]string, 0, len(m.Quantiles()))
	for _, q := range m.Quantiles() {
		detail = append(detail, q.String())
	}
	t.aggregate(m, m.SampleCount(), m.SampleSum(), detail)
}

func (t *Table) Histogram(_ *model.Family, m *model.Histogram, _ int) {
	detail := make([]string, 0, len(m.Buckets()))
	for _, b := range m.Buckets() {
		detail = append(detail, b.String())
	}
	t.aggregate(m, m.SampleCount(), m.SampleSum(), detail)
}

func (t *Table) value(m model.Metric, v float64) {
	t.AddRow(m.Name(), m.Type().String(), cell(m.Labels().String()), model.FormatFloat(v), "-")
}

func (t *Table) aggregate(m model.Metric, count uint64, sum float64, detail []string) {
	t.AddRow(m.Name(), m.Type().String(), cell(m.Labels().String()),
		fmt.Sprintf("count=%d sum=%s", count, model.FormatFloat(sum)),
		cell(strings.Join(detail, " ")))
}

func (t *Table) Finish(int, int) {
	t.out.fail(t.RenderWithOptions(t.out, t.noHeaders))
}

// Err returns the first write error.
func (t *Table) Err() error {
	return t.out.Err()
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		if _, err := io.WriteString(tw, strings.Join(t.Headers, "\t")+"\n"); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if _, err := io.WriteString(tw, strings.Join(row, "\t")+"\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders sets the table headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}

// cell renders empty values as "-".
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
