package models

import "time"

// OfferStatus enumerates the broadcast offer lifecycle.
type OfferStatus string

const (
	OfferSent     OfferStatus = "sent"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
	OfferExpired  OfferStatus = "expired"
)

// Offer is one technician's invitation to a specific booking. Many offers
// reference one booking; at most one of them ever reaches "accepted".
type Offer struct {
	ID           string      `bson:"id" json:"id"`
	BookingID    string      `bson:"booking_id" json:"booking_id"`
	TechnicianID string      `bson:"technician_id" json:"technician_id"`
	Status       OfferStatus `bson:"status" json:"status"`
	CreatedAt    time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `bson:"updated_at" json:"updated_at"`
}

// OpenOffer is a feed row: a "sent" offer together with a summary of its
// still-open parent booking.
type OpenOffer struct {
	Offer       Offer      `json:"offer"`
	BookingID   string     `json:"booking_id"`
	ServiceID   string     `json:"service_id"`
	ServiceName string     `json:"service_name,omitempty"`
	BaseAmount  float64    `json:"base_amount"`
	Address     Address    `json:"address"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// OfferResponse is a technician's answer to an offer.
type OfferResponse string

const (
	ResponseAccept OfferResponse = "accepted"
	ResponseReject OfferResponse = "rejected"
)
