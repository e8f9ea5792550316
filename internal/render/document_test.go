package render

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"
)

type jsonFamily struct {
	Name    string `json:"name"`
	Help    string `json:"help"`
	Type    string `json:"type"`
	Metrics []struct {
		Labels    map[string]string `json:"labels"`
		Value     string            `json:"value"`
		Count     string            `json:"count"`
		Sum       string            `json:"sum"`
		Quantiles map[string]string `json:"quantiles"`
		Buckets   map[string]string `json:"buckets"`
	} `json:"metrics"`
}

func TestJSON(t *testing.T) {
	out := render(t, FormatJSON, Options{})

	var families []jsonFamily
	if err := json.Unmarshal([]byte(out), &families); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(families) != 4 {
		t.Fatalf("got %d families, want 4", len(families))
	}

	requests := families[0]
	if requests.Name != "http_requests_total" || requests.Type != "COUNTER" || requests.Help != "Requests." {
		t.Errorf("family header = %+v", requests)
	}
	if len(requests.Metrics) != 2 {
		t.Fatalf("got %d metrics, want 2", len(requests.Metrics))
	}
	if m := requests.Metrics[0]; m.Value != "1027.000000" || m.Labels["code"] != "200" {
		t.Errorf("metric 0 = %+v", m)
	}
	if strings.Index(out, `"method"`) > strings.Index(out, `"code"`) {
		t.Error("label order not preserved")
	}

	summary := families[1].Metrics[0]
	if summary.Count != "4" || summary.Sum != "1.500000" || summary.Quantiles["0.500000"] != "0.200000" {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Labels != nil {
		t.Errorf("empty labels should be omitted, got %v", summary.Labels)
	}

	histogram := families[2].Metrics[0]
	if histogram.Buckets["+Inf"] != "3" || histogram.Buckets["1.000000"] != "2" {
		t.Errorf("histogram = %+v", histogram)
	}

	raw := families[3]
	if raw.Type != "UNTYPED" || len(raw.Metrics) != 1 || raw.Metrics[0].Value != "7.000000" {
		t.Errorf("untyped family = %+v", raw)
	}
}

func TestYAML(t *testing.T) {
	out := render(t, FormatYAML, Options{})

	dec := yaml.NewDecoder(strings.NewReader(out))
	var docs []map[string]any
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("invalid YAML %q: %v", out, err)
		}
		docs = append(docs, doc)
	}
	if len(docs) != 4 {
		t.Fatalf("got %d documents, want 4", len(docs))
	}
	if docs[2]["name"] != "latency_seconds" || docs[2]["type"] != "HISTOGRAM" {
		t.Errorf("document 2 = %v", docs[2])
	}
	if !strings.Contains(out, "method: post\n") {
		t.Errorf("labels missing:\n%s", out)
	}
	if strings.Index(out, "method: post") > strings.Index(out, "code:") {
		t.Errorf("label order not preserved:\n%s", out)
	}
}

type xmlFamilies struct {
	XMLName  xml.Name `xml:"metricFamilies"`
	URL      string   `xml:"url"`
	Families []struct {
		Name    string `xml:"name"`
		Type    string `xml:"type"`
		Help    string `xml:"help"`
		Metrics []struct {
			Name      string   `xml:"name"`
			Type      string   `xml:"type"`
			Labels    string   `xml:"labels"`
			Value     string   `xml:"value"`
			Count     string   `xml:"count"`
			Sum       string   `xml:"sum"`
			Quantiles []string `xml:"quantiles>quantile"`
			Buckets   []string `xml:"buckets>bucket"`
		} `xml:"metric"`
	} `xml:"metricFamily"`
}

func TestXML(t *testing.T) {
	out := render(t, FormatXML, Options{URL: "http://exporter:9100/metrics"})

	var doc xmlFamilies
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid XML %q: %v", out, err)
	}
	if doc.URL != "http://exporter:9100/metrics" {
		t.Errorf("url = %q", doc.URL)
	}
	if len(doc.Families) != 4 {
		t.Fatalf("got %d families, want 4", len(doc.Families))
	}

	counter := doc.Families[0].Metrics[1]
	if counter.Labels != "method=post,code=400" || counter.Value != "3.000000" || counter.Type != "COUNTER" {
		t.Errorf("counter = %+v", counter)
	}
	summary := doc.Families[1].Metrics[0]
	if len(summary.Quantiles) != 1 || summary.Quantiles[0] != "0.500000:0.200000" {
		t.Errorf("quantiles = %v", summary.Quantiles)
	}
	histogram := doc.Families[2].Metrics[0]
	if strings.Join(histogram.Buckets, " ") != "1.000000:2 +Inf:3" || histogram.Count != "3" {
		t.Errorf("histogram = %+v", histogram)
	}
}

func TestXML_Empty(t *testing.T) {
	out := renderEmpty(t, FormatXML)
	var doc xmlFamilies
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid XML %q: %v", out, err)
	}
	if len(doc.Families) != 0 {
		t.Errorf("got %d families", len(doc.Families))
	}
}
