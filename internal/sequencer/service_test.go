package sequencer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yegors/rwy-assign/internal/adsb"
	"github.com/yegors/rwy-assign/internal/runways"
	"github.com/yegors/rwy-assign/internal/scoring"
	"github.com/yegors/rwy-assign/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "console"})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

// testTable is a single north-facing runway at the equator
func testTable() *runways.Table {
	return &runways.Table{
		Airport: "TEST",
		Directions: []runways.Direction{
			{ID: "36", LatThr: 0, LonThr: 0, CourseDeg: 0},
		},
	}
}

// snapshotBody builds an OpenSky-style response with the given rows
func snapshotBody(rows ...string) string {
	out := `{"time": 1700000000, "states": [`
	for i, row := range rows {
		if i > 0 {
			out += ","
		}
		out += row
	}
	return out + `]}`
}

// row renders a feed row for an aircraft at (lat, lon)
func row(icao, callsign string, lat, lon, velocity, track, vrate float64, onGround bool) string {
	return fmt.Sprintf(
		`["%s", "%s", "Test", 1699999998, 1699999999, %f, %f, 500.0, %t, %f, %f, %f, null, 510.0, "1200", false, 0]`,
		icao, callsign, lon, lat, onGround, velocity, track, vrate,
	)
}

func TestFetchAndClassify(t *testing.T) {
	body := snapshotBody(
		// Descending arrival on final for runway 36, ~0.6 NM out.
		row("abc001", "ARR1    ", 0.01, 0, 80, 0, -3, false),
		// Descending but far off the centerline: fails both gates.
		row("abc002", "OFF1    ", 0.05, 0.08, 80, 90, -3, false),
		// Climbing traffic is filtered before classification.
		row("abc003", "DEP1    ", 0.02, 0, 80, 0, 5, false),
		// Ground traffic is filtered.
		row("abc004", "GND1    ", 0.001, 0, 8, 0, -1, true),
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	log := testLogger(t)
	client := adsb.NewClient(srv.URL, 0, 0, 60, 5*time.Second, log)
	service := NewService(client, testTable(), scoring.DefaultParams(), nil, time.Minute, 10, 10, log)

	if err := service.fetchAndClassify(context.Background()); err != nil {
		t.Fatalf("fetchAndClassify returned error: %v", err)
	}

	latest := service.Latest()
	if len(latest) != 2 {
		t.Fatalf("classified %d aircraft; want 2 (arrival + off-axis)", len(latest))
	}

	// Sorted by distance to the nearest threshold: ARR1 first.
	first := latest[0]
	if first.State.Callsign != "ARR1" {
		t.Fatalf("first classified = %q; want ARR1", first.State.Callsign)
	}
	if first.Assignment.BestID != "36" {
		t.Errorf("BestID = %q; want 36", first.Assignment.BestID)
	}
	if first.Confidence != scoring.ConfidenceHigh {
		t.Errorf("Confidence = %q; want high", first.Confidence)
	}
	if first.Assignment.BestScore <= 0 || first.Assignment.BestScore > 1 {
		t.Errorf("BestScore = %v; want in (0,1]", first.Assignment.BestScore)
	}

	second := latest[1]
	if second.State.Callsign != "OFF1" {
		t.Fatalf("second classified = %q; want OFF1", second.State.Callsign)
	}
	if second.Assignment.BestID != "" {
		t.Errorf("off-axis BestID = %q; want empty", second.Assignment.BestID)
	}
	if second.Confidence != ConfidenceUnknown {
		t.Errorf("off-axis Confidence = %q; want unknown", second.Confidence)
	}

	if _, ok := service.Status(); !ok {
		t.Error("Status should report a successful fetch")
	}
}

func TestFetchAndClassifyFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	log := testLogger(t)
	client := adsb.NewClient(srv.URL, 0, 0, 60, 5*time.Second, log)
	service := NewService(client, testTable(), scoring.DefaultParams(), nil, time.Minute, 10, 10, log)

	if err := service.fetchAndClassify(context.Background()); err == nil {
		t.Fatal("expected error for failing upstream")
	}
	if _, ok := service.Status(); ok {
		t.Error("Status should report a failed fetch")
	}
}

func TestStartStop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, snapshotBody())
	}))
	defer srv.Close()

	log := testLogger(t)
	client := adsb.NewClient(srv.URL, 0, 0, 60, 5*time.Second, log)
	service := NewService(client, testTable(), scoring.DefaultParams(), nil, 10*time.Millisecond, 10, 10, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := service.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	service.Stop()
}
