package scoring

// Params configures the gates and weights of the runway fit score. It is a
// plain value passed explicitly to every call; callers may start from
// DefaultParams and override any subset of fields.
type Params struct {
	TrackGateDeg float64 `json:"track_gate_deg"` // hard angular gate (deg)
	XTrackGateNM float64 `json:"xtrack_gate_nm"` // hard lateral gate (NM)
	WTrack       float64 `json:"w_track"`        // weight of the track-alignment term
	WXTrack      float64 `json:"w_xtrack"`       // weight of the cross-track term
	UseDistance  bool    `json:"use_distance"`   // enable the distance-preference term
	DPeakNM      float64 `json:"d_peak_nm"`      // center of the preferred-distance window (NM)
	DSpanNM      float64 `json:"d_span_nm"`      // half-width of the window (NM)
	WDist        float64 `json:"w_dist"`         // blend weight of the distance term
}

// DefaultParams returns the stock scoring configuration. The distance nudge
// is enabled by default to disambiguate near-parallel runway directions
// whose track and cross-track terms are nearly identical.
func DefaultParams() Params {
	return Params{
		TrackGateDeg: 20.0,
		XTrackGateNM: 0.3,
		WTrack:       0.45,
		WXTrack:      0.45,
		UseDistance:  true,
		DPeakNM:      4.0, // short final, typical 3-6 NM
		DSpanNM:      6.0,
		WDist:        0.10,
	}
}
