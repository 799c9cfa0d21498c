package model

import (
	"encoding/json"
	"errors"
)

// Location is a [longitude, latitude] pair. It is stored in that order so the
// 2d index works, and exposed as {"latitude", "longitude"} in JSON.
type Location []float64

// NewLocation builds a location from latitude and longitude
func NewLocation(latitude, longitude float64) Location {
	return Location{longitude, latitude}
}

// Valid reports whether both coordinates are present
func (l Location) Valid() bool {
	return len(l) > 1
}

// Longitude returns the first coordinate, or nil when the pair is incomplete
func (l Location) Longitude() *float64 {
	if !l.Valid() {
		return nil
	}
	v := l[0]
	return &v
}

// Latitude returns the second coordinate, or nil when the pair is incomplete
func (l Location) Latitude() *float64 {
	if !l.Valid() {
		return nil
	}
	v := l[1]
	return &v
}

type namedLocation struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// MarshalJSON renders the named form; an incomplete pair becomes nulls
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(namedLocation{Latitude: l.Latitude(), Longitude: l.Longitude()})
}

// UnmarshalJSON reads the named form. Both coordinates are required.
func (l *Location) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var in namedLocation
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Latitude == nil || in.Longitude == nil {
		return errors.New("location requires latitude and longitude")
	}
	*l = NewLocation(*in.Latitude, *in.Longitude)
	return nil
}
