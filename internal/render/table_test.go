package render

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	out := render(t, FormatTable, Options{})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want header plus 5 rows:\n%s", len(lines), out)
	}

	if fields := strings.Fields(lines[0]); strings.Join(fields, " ") != "NAME TYPE LABELS VALUE DETAIL" {
		t.Errorf("header = %q", lines[0])
	}

	tests := []struct {
		line int
		want []string
	}{
		{1, []string{"http_requests_total", "COUNTER", "method=post,code=200", "1027.000000", "-"}},
		{3, []string{"rpc_seconds", "SUMMARY", "-", "count=4", "sum=1.500000", "0.500000:0.200000"}},
		{4, []string{"latency_seconds", "HISTOGRAM", "-", "count=3", "sum=2.500000", "1.000000:2", "+Inf:3"}},
		{5, []string{"raw_value", "UNTYPED", "-", "7.000000", "-"}},
	}
	for _, tt := range tests {
		if got := strings.Fields(lines[tt.line]); strings.Join(got, " ") != strings.Join(tt.want, " ") {
			t.Errorf("row %d = %q, want %q", tt.line, got, tt.want)
		}
	}

	// Columns are aligned.
	if strings.Index(lines[0], "TYPE") != strings.Index(lines[1], "COUNTER") {
		t.Errorf("columns not aligned:\n%s", out)
	}
}

func TestTable_NoHeaders(t *testing.T) {
	out := render(t, FormatTable, Options{NoHeaders: true})
	if strings.Contains(out, "NAME") {
		t.Errorf("header should be omitted:\n%s", out)
	}
}

func TestTable_Render(t *testing.T) {
	table := &Table{}
	table.SetHeaders("KEY", "VALUE")
	table.AddRow("families", "4")
	table.AddRow("metrics", "5")

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "KEY       VALUE\nfamilies  4\nmetrics   5\n"
	if buf.String() != want {
		t.Errorf("Render() = %q, want %q", buf.String(), want)
	}
}
