// Package scoring evaluates which runway direction a moving aircraft is
// most likely approaching, given a single position/track snapshot. The
// evaluation applies hard angular and lateral gates, computes a weighted
// fit score in [0,1], and picks the best candidate with a deterministic
// tie-break. All functions are pure; nothing here carries state between
// snapshots.
package scoring

import (
	"math"

	"github.com/yegors/rwy-assign/internal/geo"
	"github.com/yegors/rwy-assign/internal/runways"
)

// scoreRelTol is the relative tolerance used when comparing candidate
// scores before the tie-break applies. Matches the common isclose default.
const scoreRelTol = 1e-9

// dSpanFloorNM guards the distance term against division by zero
const dSpanFloorNM = 1e-6

// AircraftState is the read-only per-snapshot input for one aircraft.
// Altitudes are optional since either source may be missing from the feed.
type AircraftState struct {
	Callsign    string   `json:"callsign"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	TrackDeg    float64  `json:"track_deg"`
	VelocityMPS float64  `json:"velocity_mps"`
	GeoAlt      *float64 `json:"geo_alt,omitempty"`
	BaroAlt     *float64 `json:"baro_alt,omitempty"`
}

// Terms holds the diagnostic quantities behind one candidate evaluation
type Terms struct {
	DTrack float64 `json:"dtrack"` // angular error vs runway course (deg)
	XNM    float64 `json:"x_nm"`   // signed cross-track distance (NM)
	SNM    float64 `json:"s_nm"`   // signed along-track distance (NM)
	DNM    float64 `json:"d_nm"`   // straight-line distance to threshold (NM)
	T      float64 `json:"T"`      // normalized track-alignment credit [0,1]
	X      float64 `json:"X"`      // normalized lateral-alignment credit [0,1]
}

// Candidate is the per-runway-direction debug record. Failed candidates
// keep their geometry terms with the score forced to zero.
type Candidate struct {
	Pass  bool    `json:"pass"`
	Score float64 `json:"score"`
	Terms
}

// Assignment is the selection result for one aircraft. BestID is empty when
// no runway direction passed the hard gates; Debug always contains one
// entry per evaluated direction.
type Assignment struct {
	Callsign  string               `json:"callsign"`
	BestID    string               `json:"best_id,omitempty"`
	BestScore float64              `json:"best_score"`
	Debug     map[string]Candidate `json:"debug"`
}

// FitScore evaluates one aircraft against one runway direction. Both hard
// gates must hold for the candidate to pass; otherwise the score is 0 and
// the geometry terms are still reported for diagnostics. A passing score
// combines track alignment and cross-track tightness, optionally blended
// with a triangular distance-preference window, and is clipped to [0,1].
func FitScore(ac AircraftState, rw runways.Direction, p Params) (pass bool, score float64, terms Terms) {
	dtrack := geo.AngDiffDeg(ac.TrackDeg, rw.CourseDeg)
	xNM, sNM, dNM := runways.CrossAlongNM(ac.Lat, ac.Lon, rw)

	terms = Terms{DTrack: dtrack, XNM: xNM, SNM: sNM, DNM: dNM}

	if dtrack > p.TrackGateDeg || math.Abs(xNM) > p.XTrackGateNM {
		return false, 0.0, terms
	}

	terms.T = math.Max(0.0, 1.0-dtrack/p.TrackGateDeg)
	terms.X = math.Max(0.0, 1.0-math.Abs(xNM)/p.XTrackGateNM)

	score = p.WTrack*terms.T + p.WXTrack*terms.X

	if p.UseDistance {
		span := math.Max(dSpanFloorNM, p.DSpanNM)
		d := math.Max(0.0, 1.0-math.Abs(dNM-p.DPeakNM)/span)
		score = (1.0-p.WDist)*score + p.WDist*d
	}

	return true, clamp01(score), terms
}

// AssignAircraft evaluates every runway direction for one aircraft and
// picks the best passing candidate. Higher score wins; scores equal within
// scoreRelTol fall through to the ascending tie-break (|x_nm|, dtrack,
// d_nm). With no passing candidate, BestID is empty and BestScore is 0.
func AssignAircraft(ac AircraftState, dirs []runways.Direction, p Params) Assignment {
	debug := make(map[string]Candidate, len(dirs))

	bestID := ""
	bestScore := 0.0
	bestKey := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}

	for _, rw := range dirs {
		pass, score, terms := FitScore(ac, rw, p)
		debug[rw.ID] = Candidate{Pass: pass, Score: score, Terms: terms}
		if !pass {
			continue
		}

		key := [3]float64{math.Abs(terms.XNM), terms.DTrack, terms.DNM}
		if score > bestScore && !scoresClose(score, bestScore) {
			bestID, bestScore, bestKey = rw.ID, score, key
		} else if scoresClose(score, bestScore) && keyLess(key, bestKey) {
			bestID, bestScore, bestKey = rw.ID, score, key
		}
	}

	return Assignment{
		Callsign:  ac.Callsign,
		BestID:    bestID,
		BestScore: bestScore,
		Debug:     debug,
	}
}

// AssignAll runs AssignAircraft independently for each aircraft. Output
// order matches input order; there is no cross-aircraft interaction.
func AssignAll(aircraft []AircraftState, dirs []runways.Direction, p Params) []Assignment {
	out := make([]Assignment, 0, len(aircraft))
	for _, ac := range aircraft {
		out = append(out, AssignAircraft(ac, dirs, p))
	}
	return out
}

// Confidence levels for a winning candidate's raw error terms
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Confidence maps angular and lateral error to a qualitative label. The
// thresholds are fixed and independent of Params; the label is informational
// and plays no part in selection.
func Confidence(dtrackDeg, xNM float64) string {
	ad := math.Abs(dtrackDeg)
	ax := math.Abs(xNM)
	if ad <= 10.0 && ax <= 0.20 {
		return ConfidenceHigh
	}
	if ad <= 20.0 && ax <= 0.40 {
		return ConfidenceMedium
	}
	return ConfidenceLow
}

func clamp01(v float64) float64 {
	return math.Min(1.0, math.Max(0.0, v))
}

// scoresClose reports whether two scores are equal within scoreRelTol,
// relative to the larger magnitude. Zero compares close only to zero.
func scoresClose(a, b float64) bool {
	return math.Abs(a-b) <= scoreRelTol*math.Max(math.Abs(a), math.Abs(b))
}

// keyLess compares tie-break tuples lexicographically
func keyLess(a, b [3]float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
