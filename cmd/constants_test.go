package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/yourorg/calcctl/internal/calcapi"
)

func runConstantsCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newConstantsCmd(globals)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestConstantsCommandTable(t *testing.T) {
	out, err := runConstantsCommand(t)
	if err != nil {
		t.Fatalf("constants returned error: %v", err)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "pi") {
		t.Fatalf("unexpected table output: %q", out)
	}
	if !strings.Contains(out, "3.1415926535897932384626433832795028841971") {
		t.Fatalf("pi value missing from output: %q", out)
	}
}

func TestConstantsCommandJSON(t *testing.T) {
	out, err := runConstantsCommand(t, "--format", "json")
	if err != nil {
		t.Fatalf("constants returned error: %v", err)
	}

	var resp calcapi.ConstantsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if len(resp.Constants) != 11 {
		t.Fatalf("constant count = %d, want 11", len(resp.Constants))
	}

	byName := make(map[string]string, len(resp.Constants))
	for _, c := range resp.Constants {
		byName[c.Name] = c.Value
	}
	if byName["c"] != "299792458" {
		t.Fatalf("speed of light = %q, want 299792458", byName["c"])
	}
	if _, ok := byName["tau"]; !ok {
		t.Fatalf("tau missing from constants: %v", byName)
	}
}

func TestConstantsCommandRejectsUnknownFormat(t *testing.T) {
	_, err := runConstantsCommand(t, "--format", "yaml")
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("error = %v, want unsupported format", err)
	}
}
