package command

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

func TestScrape_File(t *testing.T) {
	path := writeFile(t, "node.prom", sampleMetrics)

	out, err := runApp(t, "scrape", path)
	if err != nil {
		t.Fatalf("scrape error = %v", err)
	}
	want := "* http_requests_total (COUNTER): Requests.\n" +
		"  + 0. http_requests_total{method=get,code=200} [12.000000]\n"
	if !strings.HasPrefix(out, want) {
		t.Errorf("output = %q, want prefix %q", out, want)
	}
	if strings.Contains(out, "Scraping metrics from") {
		t.Errorf("file targets have no endpoint line:\n%s", out)
	}
	if !strings.Contains(out, "temperature_celsius{} [21.500000]") {
		t.Errorf("missing gauge line in:\n%s", out)
	}
}

func TestScrape_JSON(t *testing.T) {
	path := writeFile(t, "node.prom", sampleMetrics)

	out, err := runApp(t, "--json", "scrape", path)
	if err != nil {
		t.Fatalf("scrape error = %v", err)
	}
	var families []struct {
		Name    string `json:"name"`
		Type    string `json:"type"`
		Metrics []struct {
			Labels map[string]string `json:"labels"`
			Value  string            `json:"value"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal([]byte(out), &families); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(families) != 2 {
		t.Fatalf("families = %d, want 2", len(families))
	}
	if families[0].Name != "http_requests_total" || families[0].Type != "COUNTER" {
		t.Errorf("first family = %+v", families[0])
	}
	if got := families[0].Metrics[0].Labels["code"]; got != "200" {
		t.Errorf("code label = %q", got)
	}
	if got := families[1].Metrics[0].Value; got != "21.500000" {
		t.Errorf("gauge value = %q", got)
	}
}

func TestScrape_HTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "demo_requests_total",
		Help: "Demo requests.",
	}, []string{"path"})
	reg.MustRegister(requests)
	requests.WithLabelValues("/").Add(3)

	srv := httptest.NewServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	defer srv.Close()

	out, err := runApp(t, "scrape", srv.URL+"/metrics")
	if err != nil {
		t.Fatalf("scrape error = %v", err)
	}
	if !strings.HasPrefix(out, "Scraping metrics from Prometheus protocol endpoint: "+srv.URL+"/metrics\n") {
		t.Errorf("missing endpoint line:\n%s", out)
	}
	if !strings.Contains(out, "* demo_requests_total (COUNTER): Demo requests.\n") {
		t.Errorf("missing family line:\n%s", out)
	}
	if !strings.Contains(out, "demo_requests_total{path=/} [3.000000]") {
		t.Errorf("missing metric line:\n%s", out)
	}
}

func TestScrape_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := runApp(t, "scrape", srv.URL); err == nil {
		t.Error("scrape should fail for a 503 response")
	}
}

func TestScrape_NoTarget(t *testing.T) {
	_, err := runApp(t, "scrape")
	var ec cli.ExitCoder
	if !errors.As(err, &ec) || ec.ExitCode() != 1 {
		t.Errorf("error = %v, want exit code 1", err)
	}
}

func TestScrape_Strict(t *testing.T) {
	path := writeFile(t, "broken.prom", sampleMetrics+"not a metric line\n")

	out, err := runApp(t, "scrape", path)
	if err != nil {
		t.Fatalf("non-strict scrape error = %v", err)
	}
	if !strings.Contains(out, "temperature_celsius") {
		t.Errorf("families before the error should be rendered:\n%s", out)
	}

	_, err = runApp(t, "--strict", "scrape", path)
	var ec cli.ExitCoder
	if !errors.As(err, &ec) {
		t.Fatalf("strict scrape error = %v, want an exit error", err)
	}
	if ec.ExitCode() != ExitAborted {
		t.Errorf("exit code = %d, want %d", ec.ExitCode(), ExitAborted)
	}
}

func TestScrape_MultipleTargets(t *testing.T) {
	a := writeFile(t, "a.prom", "a_total 1\n")
	b := writeFile(t, "b.prom", "b_total 2\n")

	out, err := runApp(t, "--output", "exposition", "scrape", a, b)
	if err != nil {
		t.Fatalf("scrape error = %v", err)
	}
	if !strings.Contains(out, "a_total 1") || !strings.Contains(out, "b_total 2") {
		t.Errorf("both targets should be rendered:\n%s", out)
	}
}
