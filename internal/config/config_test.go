package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	p := writeConfig(t, `
data_dir = "/tmp/cabina-data"
backend = "sqlite"
theme = "neon"
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataDir != "/tmp/cabina-data" || c.Backend != BackendSQLite || c.Theme != "neon" {
		t.Fatalf("unexpected config: %#v", c)
	}
	if c.KeyPrefix != DefaultKeyPrefix || c.Sources["key_prefix"] != SourceDefault {
		t.Fatalf("key_prefix should stay default: %#v", c)
	}
	if c.Sources["backend"] != SourceFile {
		t.Fatalf("backend source = %q, want file", c.Sources["backend"])
	}
	if got := c.StorePath(); got != filepath.Join("/tmp/cabina-data", "cabina.sqlite") {
		t.Fatalf("StorePath = %q", got)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p := writeConfig(t, `theme = "neon"`)
	t.Setenv("CABINA_THEME", "mono")
	t.Setenv("CABINA_LOG_LEVEL", "debug")

	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Theme != "mono" || c.Sources["theme"] != SourceEnv {
		t.Fatalf("theme = %q (%s), want mono (env)", c.Theme, c.Sources["theme"])
	}
	if c.LogLevel != "debug" {
		t.Fatalf("log_level = %q", c.LogLevel)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad backend", `backend = "redis"`, "backend"},
		{"bad theme", `theme = "pink"`, "theme"},
		{"unknown key", `colour = "never"`, "unknown key"},
		{"syntax", `backend = `, "config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Backend != BackendJSON || !strings.HasSuffix(c.DataDir, ".cabina") {
		t.Fatalf("unexpected defaults: %#v", c)
	}
}

func TestSet_FlagSource(t *testing.T) {
	t.Parallel()

	c := Default()
	if err := c.Set("color", "NEVER", SourceFlag); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if c.Color != "never" || c.Sources["color"] != SourceFlag {
		t.Fatalf("color = %q (%s)", c.Color, c.Sources["color"])
	}
	if err := c.Set("nope", "x", SourceFlag); err == nil {
		t.Fatal("expected unknown field error")
	}
	if err := c.Set("data_dir", "  ", SourceFlag); err == nil {
		t.Fatal("expected empty data_dir error")
	}
	for _, p := range []string{"a/b_", `a\b_`} {
		if err := c.Set("key_prefix", p, SourceFlag); err == nil {
			t.Fatalf("key_prefix %q: expected separator error", p)
		}
	}
	if c.KeyPrefix != DefaultKeyPrefix {
		t.Fatalf("rejected prefix should leave %q, got %q", DefaultKeyPrefix, c.KeyPrefix)
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	c := Default()
	c.DataDir = "/data"
	lines := c.Lines()
	if len(lines) != len(Fields()) {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "data_dir") || !strings.Contains(lines[0], `"/data"`) {
		t.Fatalf("first line = %q", lines[0])
	}
}
