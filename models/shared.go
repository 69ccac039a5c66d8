package models

// GeoPoint represents a GeoJSON point stored as [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Address is a denormalized location snapshot attached to a booking.
// Latitude/Longitude are optional; matching falls back to the postal
// fields when they are absent or out of range.
type Address struct {
	Line1     string   `bson:"line1" json:"line1"`
	Pincode   string   `bson:"pincode,omitempty" json:"pincode,omitempty"`
	City      string   `bson:"city,omitempty" json:"city,omitempty"`
	State     string   `bson:"state,omitempty" json:"state,omitempty"`
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

// HasValidCoordinates reports whether the address carries a usable
// latitude/longitude pair.
func (a Address) HasValidCoordinates() bool {
	if a.Latitude == nil || a.Longitude == nil {
		return false
	}
	lat, lng := *a.Latitude, *a.Longitude
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
