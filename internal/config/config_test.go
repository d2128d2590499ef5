package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "helpdesk.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("", envMap(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.Format != "json" || cfg.LogLevel != slog.LevelWarn {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `
seed: from-file.yaml
format: text
log_level: info
operator: Dana
`)

	cfg, err := load(path, envMap(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SeedPath != "from-file.yaml" || cfg.Format != "text" || cfg.LogLevel != slog.LevelInfo || cfg.Operator != "Dana" {
		t.Errorf("file values not applied: %+v", cfg)
	}

	cfg, err = load(path, envMap(map[string]string{
		"HELPDESK_SEED":      "from-env.json",
		"HELPDESK_LOG_LEVEL": "DEBUG",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SeedPath != "from-env.json" || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("env did not override file: %+v", cfg)
	}
	if cfg.Format != "text" || cfg.Operator != "Dana" {
		t.Errorf("env cleared file values: %+v", cfg)
	}

	if err := cfg.Override("", "json", "", "Eli"); err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "json" || cfg.Operator != "Eli" || cfg.SeedPath != "from-env.json" {
		t.Errorf("flags did not override: %+v", cfg)
	}
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "operator: Frankie\n")
	cfg, err := load("", envMap(map[string]string{"HELPDESK_CONFIG": path}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Operator != "Frankie" {
		t.Errorf("expected operator from $HELPDESK_CONFIG, got %q", cfg.Operator)
	}
}

func TestLoad_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := load(missing, envMap(nil)); err == nil {
		t.Error("expected error for missing explicit config file")
	}

	if _, err := load(writeConfig(t, "format: xml\n"), envMap(nil)); err == nil {
		t.Error("expected error for bad format in file")
	}

	if _, err := load(writeConfig(t, "format: [\n"), envMap(nil)); err == nil {
		t.Error("expected error for malformed yaml")
	}

	if _, err := load("", envMap(map[string]string{"HELPDESK_LOG_LEVEL": "loud"})); err == nil {
		t.Error("expected error for bad log level in env")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"json", "json", false},
		{" TEXT ", "text", false},
		{"yaml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}
