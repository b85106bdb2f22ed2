package adsb

import (
	"encoding/json"
	"fmt"
)

// Snapshot represents one raw OpenSky bounding-box response
type Snapshot struct {
	Time   int64         `json:"time"`
	States []StateVector `json:"states"`
}

// StateVector is one aircraft row from the OpenSky states array. The feed
// encodes rows as positional JSON arrays, so the fields are decoded by
// index. Pointer fields are null in the feed when the receiver had no data.
type StateVector struct {
	Icao24        string
	Callsign      string
	OriginCountry string
	TimePosition  *int64
	LastContact   int64
	Lon           *float64
	Lat           *float64
	BaroAlt       *float64
	OnGround      bool
	VelocityMPS   *float64
	TrackDeg      *float64
	VerticalRate  *float64
	GeoAlt        *float64
	Squawk        string

	// ThresholdDistNM is not part of the feed; the proximity filter fills
	// it in with the distance to the nearest runway threshold.
	ThresholdDistNM float64
}

// Feed row indexes, per the OpenSky state vector layout
const (
	idxIcao24        = 0
	idxCallsign      = 1
	idxOriginCountry = 2
	idxTimePosition  = 3
	idxLastContact   = 4
	idxLon           = 5
	idxLat           = 6
	idxBaroAlt       = 7
	idxOnGround      = 8
	idxVelocity      = 9
	idxTrack         = 10
	idxVerticalRate  = 11
	idxGeoAlt        = 13
	idxSquawk        = 14

	minRowLen = 17
)

// UnmarshalJSON decodes one positional feed row
func (sv *StateVector) UnmarshalJSON(data []byte) error {
	var row []interface{}
	if err := json.Unmarshal(data, &row); err != nil {
		return fmt.Errorf("failed to parse state vector row: %w", err)
	}
	if len(row) < minRowLen {
		return fmt.Errorf("state vector row too short: %d fields", len(row))
	}

	sv.Icao24 = asString(row[idxIcao24])
	sv.Callsign = asString(row[idxCallsign])
	sv.OriginCountry = asString(row[idxOriginCountry])
	sv.TimePosition = asInt64Ptr(row[idxTimePosition])
	if v := asInt64Ptr(row[idxLastContact]); v != nil {
		sv.LastContact = *v
	}
	sv.Lon = asFloatPtr(row[idxLon])
	sv.Lat = asFloatPtr(row[idxLat])
	sv.BaroAlt = asFloatPtr(row[idxBaroAlt])
	sv.OnGround = asBool(row[idxOnGround])
	sv.VelocityMPS = asFloatPtr(row[idxVelocity])
	sv.TrackDeg = asFloatPtr(row[idxTrack])
	sv.VerticalRate = asFloatPtr(row[idxVerticalRate])
	sv.GeoAlt = asFloatPtr(row[idxGeoAlt])
	sv.Squawk = asString(row[idxSquawk])

	return nil
}

// HasPosition reports whether the row carries usable coordinates
func (sv *StateVector) HasPosition() bool {
	return sv.Lat != nil && sv.Lon != nil
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asBool(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

func asFloatPtr(v interface{}) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

func asInt64Ptr(v interface{}) *int64 {
	if f, ok := v.(float64); ok {
		i := int64(f)
		return &i
	}
	return nil
}
