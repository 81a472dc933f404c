// Package entity contains the core business objects of the project.
package entity

// Coordinates is a best-effort geographic position. Latitude and longitude are
// always a complete pair; Known distinguishes a genuine fix at (0, 0) from the
// default written when no location could be resolved.
type Coordinates struct {
	Latitude  float32 // The geographic latitude, single precision.
	Longitude float32 // The geographic longitude, single precision.
	Known     bool    // Whether the pair is a resolved estimate rather than the default.
}

// UnknownCoordinates returns the default pair stored when resolution failed.
func UnknownCoordinates() Coordinates {
	return Coordinates{Latitude: 0, Longitude: 0, Known: false}
}
