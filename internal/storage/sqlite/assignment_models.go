package sqlite

import "time"

// AssignmentRecord is one persisted runway classification for one aircraft
// in one polling cycle. RunwayID and the error terms are nil when no runway
// direction passed the hard gates.
type AssignmentRecord struct {
	ID         int64     `json:"id"`
	Callsign   string    `json:"callsign"`
	Icao24     string    `json:"icao24"`
	RunwayID   *string   `json:"runway_id"`
	Score      float64   `json:"score"`
	Confidence string    `json:"confidence"`
	DTrackDeg  *float64  `json:"dtrack_deg"`
	XTrackNM   *float64  `json:"xtrack_nm"`
	DistNM     *float64  `json:"dist_nm"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	TrackDeg   float64   `json:"track_deg"`
	CreatedAt  time.Time `json:"created_at"`
}
