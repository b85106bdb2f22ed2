// Package config loads the TOML application configuration. Every field has
// a default, so a partial file (or none at all) still yields a runnable
// configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/yegors/rwy-assign/internal/scoring"
)

// Config is the top-level application configuration
type Config struct {
	Station StationConfig `toml:"station"`
	ADSB    ADSBConfig    `toml:"adsb"`
	Scoring ScoringConfig `toml:"scoring"`
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
}

// StationConfig describes the airport the classifier watches
type StationConfig struct {
	Airport     string  `toml:"airport"`
	Latitude    float64 `toml:"latitude"`
	Longitude   float64 `toml:"longitude"`
	RunwaysPath string  `toml:"runways_path"`
}

// ADSBConfig configures the traffic snapshot source and filters
type ADSBConfig struct {
	BaseURL            string  `toml:"base_url"`
	FetchIntervalSecs  int     `toml:"fetch_interval_secs"`
	TimeoutSecs        int     `toml:"timeout_secs"`
	SearchRadiusNM     float64 `toml:"search_radius_nm"`
	MinSpeedMPS        float64 `toml:"min_speed_mps"`
	MaxThresholdDistNM float64 `toml:"max_threshold_dist_nm"`
}

// FetchInterval returns the polling interval as a duration
func (c ADSBConfig) FetchInterval() time.Duration {
	return time.Duration(c.FetchIntervalSecs) * time.Second
}

// Timeout returns the HTTP timeout as a duration
func (c ADSBConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ScoringConfig mirrors scoring.Params so the tuning lives in the config
// file next to everything else
type ScoringConfig struct {
	TrackGateDeg float64 `toml:"track_gate_deg"`
	XTrackGateNM float64 `toml:"xtrack_gate_nm"`
	WTrack       float64 `toml:"w_track"`
	WXTrack      float64 `toml:"w_xtrack"`
	UseDistance  bool    `toml:"use_distance"`
	DPeakNM      float64 `toml:"d_peak_nm"`
	DSpanNM      float64 `toml:"d_span_nm"`
	WDist        float64 `toml:"w_dist"`
}

// Params converts the config section to scoring parameters
func (c ScoringConfig) Params() scoring.Params {
	return scoring.Params{
		TrackGateDeg: c.TrackGateDeg,
		XTrackGateNM: c.XTrackGateNM,
		WTrack:       c.WTrack,
		WXTrack:      c.WXTrack,
		UseDistance:  c.UseDistance,
		DPeakNM:      c.DPeakNM,
		DSpanNM:      c.DSpanNM,
		WDist:        c.WDist,
	}
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

// StorageConfig configures assignment persistence
type StorageConfig struct {
	SQLitePath   string `toml:"sqlite_path"`
	HistoryLimit int    `toml:"history_limit"`
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the stock configuration: RKSI with the default scoring
// tuning, polling an anonymous OpenSky endpoint every 15 seconds.
func Default() *Config {
	p := scoring.DefaultParams()
	return &Config{
		Station: StationConfig{
			Airport:     "RKSI",
			Latitude:    37.4692,
			Longitude:   126.4505,
			RunwaysPath: "data/runways.json",
		},
		ADSB: ADSBConfig{
			BaseURL:            "https://opensky-network.org/api",
			FetchIntervalSecs:  15,
			TimeoutSecs:        15,
			SearchRadiusNM:     60.0,
			MinSpeedMPS:        10.0,
			MaxThresholdDistNM: 10.0,
		},
		Scoring: ScoringConfig{
			TrackGateDeg: p.TrackGateDeg,
			XTrackGateNM: p.XTrackGateNM,
			WTrack:       p.WTrack,
			WXTrack:      p.WXTrack,
			UseDistance:  p.UseDistance,
			DPeakNM:      p.DPeakNM,
			DSpanNM:      p.DSpanNM,
			WDist:        p.WDist,
		},
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			CORSAllowedOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			SQLitePath:   "assignments.db",
			HistoryLimit: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a TOML config file over the defaults. Fields absent from the
// file keep their default values; a missing file is an error so typos in
// the path are not silently ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
