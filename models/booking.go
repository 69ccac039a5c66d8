package models

import "time"

// BookingStatus enumerates the booking lifecycle.
type BookingStatus string

const (
	BookingRequested   BookingStatus = "requested"
	BookingBroadcasted BookingStatus = "broadcasted"
	BookingAccepted    BookingStatus = "accepted"
	BookingOnTheWay    BookingStatus = "on_the_way"
	BookingReached     BookingStatus = "reached"
	BookingInProgress  BookingStatus = "in_progress"
	BookingCompleted   BookingStatus = "completed"
	BookingCancelled   BookingStatus = "cancelled"
)

// Booking represents one customer service request. TechnicianID stays empty
// until the booking is claimed through the acceptance resolver.
type Booking struct {
	ID           string        `bson:"id" json:"id"`
	CustomerID   string        `bson:"customer_id" json:"customer_id"`
	ServiceID    string        `bson:"service_id" json:"service_id"`
	TechnicianID string        `bson:"technician_id,omitempty" json:"technician_id,omitempty"`
	BaseAmount   float64       `bson:"base_amount" json:"base_amount"`
	Address      Address       `bson:"address" json:"address"`
	ScheduledAt  *time.Time    `bson:"scheduled_at,omitempty" json:"scheduled_at,omitempty"`
	Status       BookingStatus `bson:"status" json:"status"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updated_at"`
}

// Assigned reports whether the booking status implies an owning technician.
func (s BookingStatus) Assigned() bool {
	switch s {
	case BookingAccepted, BookingOnTheWay, BookingReached, BookingInProgress, BookingCompleted:
		return true
	}
	return false
}

// Terminal reports whether the booking can no longer transition.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CreateBookingInput is the payload for the booking creation endpoint.
type CreateBookingInput struct {
	ServiceID   string     `json:"serviceId"`
	BaseAmount  float64    `json:"baseAmount"`
	Address     Address    `json:"address"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}
