//go:build !android

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "log_level = \"warn\"\nasset_dir = \"/srv/assets\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := resolveConfig(rootFlags{configPath: path})
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.LogLevel != "WARN" || cfg.AssetDir != "/srv/assets" {
		t.Fatalf("file values = %q %q, want WARN /srv/assets", cfg.LogLevel, cfg.AssetDir)
	}

	cfg, err = resolveConfig(rootFlags{configPath: path, assetDir: "local", logLevel: "debug"})
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Fatalf("LogLevel = %q, want DEBUG", cfg.LogLevel)
	}
	if cfg.AssetDir != "local" {
		t.Fatalf("AssetDir = %q, want local", cfg.AssetDir)
	}
}

func TestResolveConfig_InvalidLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := resolveConfig(rootFlags{configPath: path, logLevel: "loud"})
	if err == nil || !strings.Contains(err.Error(), "invalid --log-level") {
		t.Fatalf("resolveConfig error = %v, want invalid --log-level", err)
	}
}

func TestAssetSource(t *testing.T) {
	embedded := assetSource("")
	if _, err := embedded.ReadString("init.js"); err != nil {
		t.Fatalf("embedded init.js: %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "init.js"), []byte("// local"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	src, err := assetSource(dir).ReadString("init.js")
	if err != nil {
		t.Fatalf("dir init.js: %v", err)
	}
	if src != "// local" {
		t.Fatalf("dir init.js = %q, want %q", src, "// local")
	}
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "assets", "log-level"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("flag --%s not registered", name)
		}
	}
	if err := cmd.Args(cmd, []string{"extra"}); err == nil {
		t.Fatal("positional arguments accepted, want error")
	}
}
