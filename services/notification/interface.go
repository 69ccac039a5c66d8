package notification

import (
	"context"
	"fmt"

	technicianRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/technician"
	"github.com/FlareMindsTech/righttouch-backend/models"

	"firebase.google.com/go/v4/messaging"
)

// Service receives dispatch events worth telling a technician about.
// Delivery is best effort; callers log failures and move on.
type Service interface {
	NotifyOfferCreated(ctx context.Context, offer models.Offer, booking *models.Booking) error
}

// FCMService is the production implementation: it resolves the technician's
// registered device token and sends a push through Firebase Cloud Messaging.
type FCMService struct {
	Client   *messaging.Client
	TechRepo technicianRepo.TechnicianRepository
}

func NewFCMService(client *messaging.Client, techRepo technicianRepo.TechnicianRepository) *FCMService {
	return &FCMService{Client: client, TechRepo: techRepo}
}

func (s *FCMService) NotifyOfferCreated(ctx context.Context, offer models.Offer, booking *models.Booking) error {
	tech, err := s.TechRepo.GetByID(ctx, offer.TechnicianID)
	if err != nil {
		return fmt.Errorf("could not load technician %s: %w", offer.TechnicianID, err)
	}
	if tech == nil || tech.FCMToken == "" {
		return fmt.Errorf("technician %s has no registered device token", offer.TechnicianID)
	}

	msg := &messaging.Message{
		Token: tech.FCMToken,
		Notification: &messaging.Notification{
			Title: "New job available",
			Body:  "A service request near you is waiting for a response.",
		},
		Data: map[string]string{
			"offerId":   offer.ID,
			"bookingId": booking.ID,
			"serviceId": booking.ServiceID,
		},
	}
	if _, err := s.Client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to push offer %s: %w", offer.ID, err)
	}
	return nil
}

// NoopService drops every event. Used when no Firebase credentials are
// configured and in tests.
type NoopService struct{}

func (NoopService) NotifyOfferCreated(context.Context, models.Offer, *models.Booking) error {
	return nil
}
