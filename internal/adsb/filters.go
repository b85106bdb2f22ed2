package adsb

import (
	"strings"

	"github.com/yegors/rwy-assign/internal/runways"
	"github.com/yegors/rwy-assign/internal/scoring"
)

// FilterAirborne keeps rows that are off the ground and moving faster than
// minSpeedMPS. Rows with no velocity data are dropped.
func FilterAirborne(states []StateVector, minSpeedMPS float64) []StateVector {
	out := make([]StateVector, 0, len(states))
	for _, sv := range states {
		if sv.OnGround {
			continue
		}
		if sv.VelocityMPS == nil || *sv.VelocityMPS <= minSpeedMPS {
			continue
		}
		out = append(out, sv)
	}
	return out
}

// FilterDescending keeps rows with a known negative vertical rate
func FilterDescending(states []StateVector) []StateVector {
	out := make([]StateVector, 0, len(states))
	for _, sv := range states {
		if sv.VerticalRate == nil || *sv.VerticalRate >= 0 {
			continue
		}
		out = append(out, sv)
	}
	return out
}

// FilterNearThresholds keeps rows within maxNM of the nearest runway
// threshold and annotates each kept row with that distance.
func FilterNearThresholds(states []StateVector, table *runways.Table, maxNM float64) []StateVector {
	out := make([]StateVector, 0, len(states))
	for _, sv := range states {
		d := table.NearestThresholdNM(*sv.Lat, *sv.Lon)
		if d > maxNM {
			continue
		}
		sv.ThresholdDistNM = d
		out = append(out, sv)
	}
	return out
}

// ToAircraftState converts a filtered feed row into the scoring input.
// Rows reaching this point always have a position; a missing track is
// mapped to 0, which the caller should have filtered beforehand.
func (sv *StateVector) ToAircraftState() scoring.AircraftState {
	ac := scoring.AircraftState{
		Callsign: strings.TrimSpace(sv.Callsign),
		Lat:      *sv.Lat,
		Lon:      *sv.Lon,
		GeoAlt:   sv.GeoAlt,
		BaroAlt:  sv.BaroAlt,
	}
	if ac.Callsign == "" {
		ac.Callsign = sv.Icao24
	}
	if sv.TrackDeg != nil {
		ac.TrackDeg = *sv.TrackDeg
	}
	if sv.VelocityMPS != nil {
		ac.VelocityMPS = *sv.VelocityMPS
	}
	return ac
}

// HasTrack reports whether the row carries a ground track
func (sv *StateVector) HasTrack() bool {
	return sv.TrackDeg != nil
}
