package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Scoring.TrackGateDeg != 20.0 {
		t.Errorf("TrackGateDeg = %v; want 20", cfg.Scoring.TrackGateDeg)
	}
	if cfg.Scoring.XTrackGateNM != 0.3 {
		t.Errorf("XTrackGateNM = %v; want 0.3", cfg.Scoring.XTrackGateNM)
	}
	if !cfg.Scoring.UseDistance {
		t.Error("UseDistance should default to true")
	}
	if cfg.ADSB.FetchInterval().Seconds() != 15 {
		t.Errorf("FetchInterval = %v; want 15s", cfg.ADSB.FetchInterval())
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[scoring]
track_gate_deg = 25.0
use_distance = false

[station]
airport = "CYYZ"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	// Overridden fields take the file values.
	if cfg.Scoring.TrackGateDeg != 25.0 {
		t.Errorf("TrackGateDeg = %v; want 25", cfg.Scoring.TrackGateDeg)
	}
	if cfg.Scoring.UseDistance {
		t.Error("UseDistance should be overridden to false")
	}
	if cfg.Station.Airport != "CYYZ" {
		t.Errorf("Airport = %q; want CYYZ", cfg.Station.Airport)
	}

	// Untouched fields keep their defaults.
	if cfg.Scoring.WTrack != 0.45 {
		t.Errorf("WTrack = %v; want default 0.45", cfg.Scoring.WTrack)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %v; want default 8080", cfg.Server.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}

func TestScoringConfigParams(t *testing.T) {
	cfg := Default()
	p := cfg.Scoring.Params()
	if p.TrackGateDeg != cfg.Scoring.TrackGateDeg || p.WDist != cfg.Scoring.WDist {
		t.Errorf("Params conversion mismatch: %+v vs %+v", p, cfg.Scoring)
	}
}
