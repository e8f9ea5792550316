package command

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func TestConfigShow(t *testing.T) {
	t.Setenv("PROMWALK_BEARER_TOKEN", "abcdefgh")
	path := writeFile(t, "config.yaml", "output: json\nlog:\n  level: error\n")

	out, err := runApp(t, "--config", path, "--timeout", "3s", "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{
		"output: json # from file\n",
		"format: auto\n",
		"timeout: 3s # from flag\n",
		"bearer_token: ab****gh # from env\n",
		"  level: error # from file\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "abcdefgh") {
		t.Errorf("bearer token leaked:\n%s", out)
	}
}

func TestConfigValidate(t *testing.T) {
	good := writeFile(t, "good.yaml", "output: table\nwatch:\n  interval: 2s\n")
	out, err := runApp(t, "config", "validate", good)
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if out != good+": OK\n" {
		t.Errorf("output = %q", out)
	}

	bad := writeFile(t, "bad.yaml", "output: csv\n")
	_, err = runApp(t, "config", "validate", bad)
	var ec cli.ExitCoder
	if !errors.As(err, &ec) || ec.ExitCode() != 1 {
		t.Errorf("validate error = %v, want exit code 1", err)
	}

	if _, err := runApp(t, "config", "validate"); err == nil {
		t.Error("validate without FILE should fail")
	}
}

func TestVersion(t *testing.T) {
	out, err := runApp(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "promwalk ") || !strings.Contains(out, "go version:") {
		t.Errorf("output = %q", out)
	}

	out, err = runApp(t, "--json", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	var info map[string]any
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(info) == 0 {
		t.Error("empty build information")
	}
}
