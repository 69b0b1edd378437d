package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaydAbdullayev/bubbles/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvDataDir, config.EnvSeed, config.EnvPreset} {
		t.Setenv(k, "")
	}
}

func parse(t *testing.T, args ...string) (*cobra.Command, *globalFlags) {
	t.Helper()
	g := &globalFlags{}
	cmd := &cobra.Command{Use: "test"}
	g.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd, g
}

func TestResolveConfigDefaults(t *testing.T) {
	clearEnv(t)
	cmd, g := parse(t)

	cfg, err := resolveConfig(cmd, g)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.DataDir != config.DefaultDataDir {
		t.Errorf("data dir = %s", cfg.DataDir)
	}
	if cfg.Seed == 0 {
		t.Error("zero seed should be replaced from the clock")
	}
	if cfg.Field.Grow != 5*time.Minute || cfg.Field.MaxBubbles != 50 {
		t.Errorf("field = %+v", cfg.Field)
	}
}

func TestResolveConfigLayers(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bubbles.yaml")
	yaml := "data_dir: from-file\nseed: 11\nfield:\n  grow: 30s\n  max_bubbles: 20\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(config.EnvSeed, "22")

	tests := []struct {
		name     string
		args     []string
		wantData string
		wantSeed int64
		wantGrow time.Duration
	}{
		{"file then env", []string{"--config", path}, "from-file", 22, 30 * time.Second},
		{"flags win", []string{"--config", path, "--seed", "33", "--data", "from-flag"}, "from-flag", 33, 30 * time.Second},
		{"preset replaces field", []string{"--config", path, "--preset", "demo"}, "from-file", 22, 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, g := parse(t, tt.args...)
			cfg, err := resolveConfig(cmd, g)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if cfg.DataDir != tt.wantData {
				t.Errorf("data dir = %s, want %s", cfg.DataDir, tt.wantData)
			}
			if cfg.Seed != tt.wantSeed {
				t.Errorf("seed = %d, want %d", cfg.Seed, tt.wantSeed)
			}
			if cfg.Field.Grow != tt.wantGrow {
				t.Errorf("grow = %v, want %v", cfg.Field.Grow, tt.wantGrow)
			}
		})
	}
}

func TestResolveConfigErrors(t *testing.T) {
	clearEnv(t)

	cmd, g := parse(t, "--preset", "frantic")
	if _, err := resolveConfig(cmd, g); err == nil {
		t.Error("unknown preset should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("field:\n  tick: 0s\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd, g = parse(t, "--config", path)
	if _, err := resolveConfig(cmd, g); !errors.Is(err, config.ErrInvalidInterval) {
		t.Errorf("err = %v, want ErrInvalidInterval", err)
	}

	cmd, g = parse(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := resolveConfig(cmd, g); err == nil {
		t.Error("missing config file should fail")
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestSimulateCommand(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	export := filepath.Join(dir, "run.json")
	svg := filepath.Join(dir, "field.svg")
	chart := filepath.Join(dir, "chart.svg")

	out := execute(t, "simulate", "--data", dir, "--seed", "7", "--preset", "demo", "--duration", "2m",
		"--export", export, "--svg", svg, "--chart", chart)
	for _, want := range []string{"grown", "final population", "exported"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	for _, p := range []string{svg, chart} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}

	data, err := os.ReadFile(export)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var got struct {
		Seed   int64  `json:"seed"`
		Preset string `json:"preset"`
		Grown  int    `json:"grown"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if got.Seed != 7 || got.Preset != "demo" || got.Grown != 40 {
		t.Errorf("export = %+v", got)
	}
}

func TestPresetsCommand(t *testing.T) {
	out := execute(t, "presets")
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %s", name)
		}
	}
}

func TestPaletteCommand(t *testing.T) {
	out := execute(t, "palette")
	if !strings.Contains(out, "Ocean Blue") || !strings.Contains(out, "#6366F1") {
		t.Errorf("palette output:\n%s", out)
	}
}

func TestResetCommand(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bubbles.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	execute(t, "reset", "--data", dir)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("reset left the state file behind")
	}
}

func TestPlayRejectsUnknownColor(t *testing.T) {
	clearEnv(t)
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"play", "--color", "mauve", "--data", t.TempDir()})
	if err := root.Execute(); err == nil {
		t.Error("unknown color should fail before the TUI starts")
	}
}

func TestSimulateEnsemble(t *testing.T) {
	clearEnv(t)
	out := execute(t, "simulate", "--data", t.TempDir(), "--seed", "5", "--preset", "demo", "--duration", "1m", "--runs", "3")
	for _, seed := range []string{"5", "6", "7"} {
		if !strings.Contains(out, "\n"+seed+" ") {
			t.Errorf("ensemble table missing seed %s:\n%s", seed, out)
		}
	}
}
