package adsb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/yegors/rwy-assign/pkg/logger"
)

// Client fetches traffic snapshots from an OpenSky-compatible endpoint. The
// bounding box is derived once from the station coordinates and search
// radius; no authentication is required for anonymous snapshot access.
type Client struct {
	httpClient *http.Client
	baseURL    string
	lamin      float64
	lomin      float64
	lamax      float64
	lomax      float64
	logger     *logger.Logger
}

// NewClient creates a snapshot client centered on the station position
func NewClient(baseURL string, stationLat, stationLon, radiusNM float64, timeout time.Duration, log *logger.Logger) *Client {
	// Degrees of latitude per NM is 1/60; longitude widens with latitude.
	dLat := radiusNM / 60.0
	dLon := radiusNM / (60.0 * math.Cos(stationLat*math.Pi/180.0))

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		lamin:      stationLat - dLat,
		lomin:      stationLon - dLon,
		lamax:      stationLat + dLat,
		lomax:      stationLon + dLon,
		logger:     log.Named("adsb-cli"),
	}
}

// FetchSnapshot fetches and parses one bounding-box traffic snapshot
func (c *Client) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	url := fmt.Sprintf("%s/states/all?lamin=%.6f&lomin=%.6f&lamax=%.6f&lomax=%.6f",
		c.baseURL, c.lamin, c.lomin, c.lamax, c.lomax)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Fetching traffic snapshot", logger.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	snapshot, err := ParseSnapshot(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched traffic snapshot",
		logger.Int("states", len(snapshot.States)),
		logger.Int64("feed_time", snapshot.Time),
	)

	return snapshot, nil
}

// ParseSnapshot parses a raw snapshot body, dropping rows that are
// malformed or carry no position. Bad rows are a normal part of the feed
// and never fail the whole snapshot.
func ParseSnapshot(body []byte) (*Snapshot, error) {
	var raw struct {
		Time   int64             `json:"time"`
		States []json.RawMessage `json:"states"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}

	snapshot := &Snapshot{Time: raw.Time, States: make([]StateVector, 0, len(raw.States))}
	for _, rawRow := range raw.States {
		var sv StateVector
		if err := json.Unmarshal(rawRow, &sv); err != nil {
			continue
		}
		if !sv.HasPosition() {
			continue
		}
		snapshot.States = append(snapshot.States, sv)
	}

	return snapshot, nil
}
