package adsb

import (
	"testing"
)

// sampleBody is a trimmed OpenSky response: one complete row, one row with
// no position, one malformed short row.
const sampleBody = `{
	"time": 1700000000,
	"states": [
		["71be12", "KAL123  ", "Republic of Korea", 1699999998, 1699999999, 126.52, 37.38, 762.0, false, 82.3, 334.1, -4.2, null, 792.5, "1535", false, 0],
		["71c045", "AAR771  ", "Republic of Korea", null, 1699999999, null, null, null, false, 75.0, 150.0, -2.0, null, null, "2000", false, 0],
		["badrow", "SHORT"]
	]
}`

func TestParseSnapshot(t *testing.T) {
	snapshot, err := ParseSnapshot([]byte(sampleBody))
	if err != nil {
		t.Fatalf("ParseSnapshot returned error: %v", err)
	}

	if snapshot.Time != 1700000000 {
		t.Errorf("Time = %d; want 1700000000", snapshot.Time)
	}
	// Positionless and malformed rows are dropped.
	if len(snapshot.States) != 1 {
		t.Fatalf("kept %d states; want 1", len(snapshot.States))
	}

	sv := snapshot.States[0]
	if sv.Icao24 != "71be12" {
		t.Errorf("Icao24 = %q; want 71be12", sv.Icao24)
	}
	if sv.Callsign != "KAL123  " {
		t.Errorf("Callsign = %q; want raw padded value", sv.Callsign)
	}
	if sv.Lat == nil || *sv.Lat != 37.38 {
		t.Errorf("Lat = %v; want 37.38", sv.Lat)
	}
	if sv.Lon == nil || *sv.Lon != 126.52 {
		t.Errorf("Lon = %v; want 126.52", sv.Lon)
	}
	if sv.TrackDeg == nil || *sv.TrackDeg != 334.1 {
		t.Errorf("TrackDeg = %v; want 334.1", sv.TrackDeg)
	}
	if sv.VerticalRate == nil || *sv.VerticalRate != -4.2 {
		t.Errorf("VerticalRate = %v; want -4.2", sv.VerticalRate)
	}
	if sv.GeoAlt == nil || *sv.GeoAlt != 792.5 {
		t.Errorf("GeoAlt = %v; want 792.5", sv.GeoAlt)
	}
	if sv.OnGround {
		t.Error("OnGround = true; want false")
	}
}

func TestParseSnapshotBadJSON(t *testing.T) {
	if _, err := ParseSnapshot([]byte(`{"time": `)); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestToAircraftState(t *testing.T) {
	lat, lon, track, vel := 37.38, 126.52, 334.1, 82.3
	sv := StateVector{
		Icao24:      "71be12",
		Callsign:    "KAL123  ",
		Lat:         &lat,
		Lon:         &lon,
		TrackDeg:    &track,
		VelocityMPS: &vel,
	}

	ac := sv.ToAircraftState()
	if ac.Callsign != "KAL123" {
		t.Errorf("Callsign = %q; want trimmed KAL123", ac.Callsign)
	}
	if ac.Lat != lat || ac.Lon != lon || ac.TrackDeg != track || ac.VelocityMPS != vel {
		t.Errorf("unexpected conversion: %+v", ac)
	}

	// Blank callsign falls back to the hex address.
	sv.Callsign = "  "
	if ac := sv.ToAircraftState(); ac.Callsign != "71be12" {
		t.Errorf("Callsign fallback = %q; want 71be12", ac.Callsign)
	}
}
