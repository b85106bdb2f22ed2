// Package runways holds the static runway-direction reference table and the
// runway-relative geometry derived from it.
package runways

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/yegors/rwy-assign/internal/geo"
	"github.com/yegors/rwy-assign/pkg/logger"
)

// Direction represents one landing direction of one physical runway. A
// runway with two usable ends yields two records. Records are created once
// at startup from reference data and never mutated.
type Direction struct {
	ID        string  `json:"id"`         // e.g. "33L", "16R"
	LatThr    float64 `json:"lat_thr"`    // threshold latitude (deg)
	LonThr    float64 `json:"lon_thr"`    // threshold longitude (deg)
	CourseDeg float64 `json:"course_deg"` // landing course (deg true, 0..360)
	ElevFt    float64 `json:"elev_ft"`    // threshold elevation (feet)
}

// Table is the set of usable landing directions for one airport
type Table struct {
	Airport    string      `json:"airport"`
	Directions []Direction `json:"directions"`
}

// Load reads a runway table from a JSON file
func Load(path string, log *logger.Logger) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read runway table: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse runway table: %w", err)
	}

	if len(table.Directions) == 0 {
		return nil, fmt.Errorf("runway table %s contains no directions", path)
	}

	log.Info("Loaded runway table",
		logger.String("airport", table.Airport),
		logger.String("path", path),
		logger.Int("directions", len(table.Directions)),
	)

	return &table, nil
}

// CrossAlongNM projects an aircraft position into the runway's local frame
// and returns cross-track, along-track and straight-line distances from the
// threshold, all in nautical miles. Cross-track is signed positive to the
// right of the landing direction; along-track is signed positive in the
// landing direction.
func CrossAlongNM(acLat, acLon float64, rw Direction) (xNM, sNM, dNM float64) {
	eastM, northM := geo.ENFromThreshold(acLat, acLon, rw.LatThr, rw.LonThr)
	aE, aN, rE, rN := geo.RunwayUnitVectors(rw.CourseDeg)

	sM := eastM*aE + northM*aN
	xM := eastM*rE + northM*rN
	dM := math.Hypot(eastM, northM)

	return geo.MetersToNM(xM), geo.MetersToNM(sM), geo.MetersToNM(dM)
}

// NearestThresholdNM returns the great-circle distance in NM from the given
// position to the closest threshold in the table.
func (t *Table) NearestThresholdNM(lat, lon float64) float64 {
	min := math.Inf(1)
	for _, rw := range t.Directions {
		if d := geo.HaversineNM(rw.LatThr, rw.LonThr, lat, lon); d < min {
			min = d
		}
	}
	return min
}
