package models

// Service is the catalog entry a booking points at. The catalog itself is
// managed elsewhere; the dispatch core only reads it to validate bookings
// and to decorate the job feed.
type Service struct {
	ID          string `bson:"id" json:"id"`
	ServiceName string `bson:"service_name" json:"service_name"`
	IsActive    bool   `bson:"is_active" json:"is_active"`
}
