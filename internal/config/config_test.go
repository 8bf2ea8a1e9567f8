package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataDir != filepath.Join("data", "csvs") {
		t.Fatalf("data_dir = %q", c.DataDir)
	}
	if c.Stride != 10 {
		t.Fatalf("stride = %d, want 10", c.Stride)
	}
	if c.FileExt != ".csv" {
		t.Fatalf("file_ext = %q, want .csv", c.FileExt)
	}
	if len(c.LabelTrimSuffixes) != 2 {
		t.Fatalf("label_trim_suffixes = %v", c.LabelTrimSuffixes)
	}
}

func TestLoadFromFileWithAliasOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `data_dir: /srv/exports
stride: 25
aliases:
  x:
    - micron_x
cell_type_samples:
  fem3_WTE1_B_R: WTE1_B_R
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataDir != "/srv/exports" || c.Stride != 25 {
		t.Fatalf("config not applied: %+v", c)
	}
	if got := c.Aliases["x"]; len(got) != 1 || got[0] != "micron_x" {
		t.Fatalf("alias override = %v, want [micron_x]", got)
	}
	if c.CellTypeSamples["fem3_WTE1_B_R"] != "WTE1_B_R" {
		t.Fatalf("cell_type_samples = %v", c.CellTypeSamples)
	}
}

func TestLoadRejectsBadStride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("stride: 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for stride 0")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := &Global{DataDir: "d", OutDir: "o", FileExt: ".csv", Stride: 5}
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DataDir != "d" || got.Stride != 5 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
