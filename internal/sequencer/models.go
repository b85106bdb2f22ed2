package sequencer

import (
	"time"

	"github.com/yegors/rwy-assign/internal/scoring"
)

// ConfidenceUnknown marks aircraft for which no runway direction passed the
// hard gates; the scoring confidence levels only apply to a winner.
const ConfidenceUnknown = "unknown"

// ClassifiedAircraft is one aircraft's classification from the latest
// polling cycle, as served by the API.
type ClassifiedAircraft struct {
	Icao24          string                `json:"icao24"`
	State           scoring.AircraftState `json:"state"`
	Assignment      scoring.Assignment    `json:"assignment"`
	Confidence      string                `json:"confidence"`
	ThresholdDistNM float64               `json:"threshold_dist_nm"`
	ClassifiedAt    time.Time             `json:"classified_at"`
}
