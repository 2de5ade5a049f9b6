package captioner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.MaxLength != 34 {
		t.Errorf("MaxLength = %d, want 34", cfg.MaxLength)
	}
	if cfg.BeamWidth != 3 {
		t.Errorf("BeamWidth = %d, want 3", cfg.BeamWidth)
	}
	if cfg.NumAlternatives != 3 {
		t.Errorf("NumAlternatives = %d, want 3", cfg.NumAlternatives)
	}
	if cfg.Tone != "creative" {
		t.Errorf("Tone = %q, want creative", cfg.Tone)
	}
	if cfg.MinConfidence != 0.1 {
		t.Errorf("MinConfidence = %v, want 0.1", cfg.MinConfidence)
	}
	if cfg.ReuseThreshold != 0.985 {
		t.Errorf("ReuseThreshold = %v, want 0.985", cfg.ReuseThreshold)
	}
	if cfg.Model.FeatureDim != 2048 {
		t.Errorf("Model.FeatureDim = %d, want 2048", cfg.Model.FeatureDim)
	}

	// Explicit values survive.
	cfg = Config{BeamWidth: 5, Tone: "poetic"}
	cfg.ApplyDefaults()
	if cfg.BeamWidth != 5 || cfg.Tone != "poetic" {
		t.Errorf("ApplyDefaults overwrote explicit values: %+v", cfg)
	}
}

func TestConfigClone(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.Model.EncoderPath = "encoder.onnx"

	clone := cfg.Clone()
	clone.BeamWidth = 9
	clone.Model.EncoderPath = "other.onnx"
	if cfg.BeamWidth == 9 || cfg.Model.EncoderPath != "encoder.onnx" {
		t.Errorf("mutating the clone changed the original: %+v", cfg)
	}
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.MaxLength != 34 || cfg.BeamWidth != 3 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestSaveAndLoadConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	var cfg Config
	cfg.ApplyDefaults()
	cfg.BeamWidth = 5
	cfg.Tone = "descriptive"
	cfg.Model.EncoderPath = "models/encoder.onnx"
	cfg.CacheDir = filepath.Join(dir, "cache")

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.BeamWidth != 5 || loaded.Tone != "descriptive" || loaded.Model.EncoderPath != "models/encoder.onnx" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if _, err := os.Stat(loaded.CacheDir); err != nil {
		t.Errorf("LoadConfig() should create the cache dir: %v", err)
	}
}

func TestLoadConfigRejectsBrokenJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should fail on malformed JSON")
	}
}
