package runways

import (
	"math"
	"os"
	"path/filepath"
	"testing"

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

func TestCrossAlongNM(t *testing.T) {
	// Runway at the equator pointing due north.
	rw := Direction{ID: "36", LatThr: 0, LonThr: 0, CourseDeg: 0}

	// Aircraft 0.01 deg north of the threshold, on centerline.
	xNM, sNM, dNM := CrossAlongNM(0.01, 0, rw)
	if math.Abs(xNM) > 1e-9 {
		t.Errorf("on-centerline xNM = %v; want 0", xNM)
	}
	if math.Abs(sNM-0.60) > 0.006 {
		t.Errorf("sNM = %v; want ~0.60", sNM)
	}
	if math.Abs(dNM-0.60) > 0.006 {
		t.Errorf("dNM = %v; want ~0.60", dNM)
	}

	// Aircraft east of a north-facing runway is right of the centerline.
	xNM, sNM, _ = CrossAlongNM(0, 0.01, rw)
	if xNM <= 0 {
		t.Errorf("aircraft east of northbound runway: xNM = %v; want > 0", xNM)
	}
	if math.Abs(sNM) > 1e-9 {
		t.Errorf("abeam threshold: sNM = %v; want 0", sNM)
	}

	// Aircraft behind the threshold has negative along-track.
	_, sNM, _ = CrossAlongNM(-0.01, 0, rw)
	if sNM >= 0 {
		t.Errorf("aircraft behind threshold: sNM = %v; want < 0", sNM)
	}
}

func TestCrossAlongNMSignFollowsCourse(t *testing.T) {
	// For a southbound runway the same east offset is LEFT of course.
	rw := Direction{ID: "18", LatThr: 0, LonThr: 0, CourseDeg: 180}
	xNM, _, _ := CrossAlongNM(0, 0.01, rw)
	if xNM >= 0 {
		t.Errorf("aircraft east of southbound runway: xNM = %v; want < 0", xNM)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runways.json")
	content := `{
		"airport": "RKSI",
		"directions": [
			{"id": "33L", "lat_thr": 37.4542, "lon_thr": 126.4608, "course_deg": 333.0, "elev_ft": 23.0},
			{"id": "15R", "lat_thr": 37.4802, "lon_thr": 126.4500, "course_deg": 153.0, "elev_ft": 23.0}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test table: %v", err)
	}

	table, err := Load(path, testLogger(t))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if table.Airport != "RKSI" {
		t.Errorf("airport = %q; want RKSI", table.Airport)
	}
	if len(table.Directions) != 2 {
		t.Fatalf("directions = %d; want 2", len(table.Directions))
	}
	if table.Directions[0].ID != "33L" || table.Directions[0].CourseDeg != 333.0 {
		t.Errorf("unexpected first direction: %+v", table.Directions[0])
	}
}

func TestLoadErrors(t *testing.T) {
	log := testLogger(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json"), log); err == nil {
		t.Error("Load of missing file should fail")
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte(`{"airport":"X","directions":[]}`), 0o644); err != nil {
		t.Fatalf("failed to write test table: %v", err)
	}
	if _, err := Load(empty, log); err == nil {
		t.Error("Load of empty table should fail")
	}
}

func TestNearestThresholdNM(t *testing.T) {
	table := &Table{
		Airport: "TEST",
		Directions: []Direction{
			{ID: "36", LatThr: 0, LonThr: 0, CourseDeg: 0},
			{ID: "18", LatThr: 1, LonThr: 0, CourseDeg: 180},
		},
	}

	// Point just north of the first threshold.
	d := table.NearestThresholdNM(0.01, 0)
	if math.Abs(d-0.60) > 0.01 {
		t.Errorf("NearestThresholdNM = %v; want ~0.60", d)
	}

	// Point near the second threshold should use it instead.
	d = table.NearestThresholdNM(0.99, 0)
	if d > 1.0 {
		t.Errorf("NearestThresholdNM = %v; want < 1 NM", d)
	}
}
