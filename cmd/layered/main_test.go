package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/tailored-agentic-units/layered/layered"
	"github.com/tailored-agentic-units/layered/observability"
)

func writeLayer(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	top := writeLayer(t, dir, "top.json", `{"a": 1, "b": "two"}`)
	base := writeLayer(t, dir, "base.json", `{"b": "four", "c": true}`)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{name: "get primary", args: []string{"get", "a"}, wantOut: "1"},
		{name: "get shadowed", args: []string{"get", "b"}, wantOut: `"two"`},
		{name: "get fallback", args: []string{"get", "c"}, wantOut: "true"},
		{name: "get miss", args: []string{"get", "d"}, wantCode: 1},
		{name: "has", args: []string{"has", "c"}, wantOut: "true"},
		{name: "has miss", args: []string{"has", "d"}, wantOut: "false"},
		{name: "keys", args: []string{"keys"}, wantOut: "a\nb\nc"},
		{name: "len", args: []string{"len"}, wantOut: "3"},
		{name: "unknown command", args: []string{"frobnicate"}, wantCode: 2},
		{name: "get without key", args: []string{"get"}, wantCode: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"-layer", top, "-layer", base}, tt.args...)

			code := run(args, &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("run() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if tt.wantCode == 0 {
				if got := strings.TrimSpace(stdout.String()); got != tt.wantOut {
					t.Errorf("stdout = %q, want %q", got, tt.wantOut)
				}
			}
		})
	}
}

func TestRun_Dump(t *testing.T) {
	dir := t.TempDir()
	top := writeLayer(t, dir, "top.json", `{"name": "top"}`)
	base := writeLayer(t, dir, "base.json", `{"name": "base", "port": 8080}`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-layer", top, "-layer", base, "dump"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, want 0 (stderr: %s)", code, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, `"top"`) || strings.Contains(out, `"base"`) {
		t.Errorf("dump should resolve name to top, got: %s", out)
	}
	if !strings.Contains(out, "8080") {
		t.Errorf("dump should include port from base, got: %s", out)
	}
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if code := run([]string{"keys"}, &stdout, &stderr); code != 2 {
		t.Errorf("run() without layers = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("stderr = %q, want usage text", stderr.String())
	}
}

func TestRun_BadLayer(t *testing.T) {
	dir := t.TempDir()
	bad := writeLayer(t, dir, "bad.json", `[1, 2, 3]`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-layer", bad, "len"}, &stdout, &stderr); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if code := run([]string{"-layer", filepath.Join(dir, "missing.json"), "len"}, &stdout, &stderr); code != 1 {
		t.Errorf("run() with missing file = %d, want 1", code)
	}
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	layer := writeLayer(t, dir, "layer.json", `{"a": 1}`)
	cfg := writeLayer(t, dir, "config.json", `{"observer": "slog"}`)
	badCfg := writeLayer(t, dir, "bad-config.json", `{"observer": "nope"}`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", cfg, "-verbose", "-layer", layer, "get", "missing"}, &stdout, &stderr); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "layered.get.miss") {
		t.Errorf("stderr = %q, want a layered.get.miss log line", stderr.String())
	}

	stderr.Reset()
	if code := run([]string{"-config", badCfg, "-layer", layer, "len"}, &stdout, &stderr); code != 1 {
		t.Errorf("run() with unknown observer = %d, want 1", code)
	}
}

func TestRun_VerboseFansOutToConfiguredObserver(t *testing.T) {
	dir := t.TempDir()
	layer := writeLayer(t, dir, "layer.json", `{"a": 1}`)
	cfg := writeLayer(t, dir, "config.json", `{"observer": "cli-recorder"}`)

	rec := &observability.Recorder{}
	observability.RegisterObserver("cli-recorder", rec)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", cfg, "-verbose", "-layer", layer, "get", "missing"}, &stdout, &stderr); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}

	if !slices.Contains(rec.Types(), layered.EventGetMiss) {
		t.Errorf("recorder types = %v, want %s", rec.Types(), layered.EventGetMiss)
	}
	if !strings.Contains(stderr.String(), "layered.get.miss") {
		t.Errorf("stderr = %q, want a layered.get.miss log line", stderr.String())
	}
}

func TestRun_QuietSkipsSlogForConfiguredObserver(t *testing.T) {
	dir := t.TempDir()
	layer := writeLayer(t, dir, "layer.json", `{"a": 1}`)
	cfg := writeLayer(t, dir, "config.json", `{"observer": "cli-quiet"}`)

	rec := &observability.Recorder{}
	observability.RegisterObserver("cli-quiet", rec)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", cfg, "-layer", layer, "get", "missing"}, &stdout, &stderr); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}

	if !slices.Contains(rec.Types(), layered.EventGetMiss) {
		t.Errorf("recorder types = %v, want %s", rec.Types(), layered.EventGetMiss)
	}
	if strings.Contains(stderr.String(), "layered.get.miss") {
		t.Errorf("stderr = %q, want no event log lines without -verbose", stderr.String())
	}
}
