package dispatch

import (
	"context"
	"fmt"
	"time"

	offerRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/offer"
	"github.com/FlareMindsTech/righttouch-backend/models"
	"github.com/FlareMindsTech/righttouch-backend/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultFanoutService implements FanoutService.
type DefaultFanoutService struct {
	OfferRepo    offerRepo.OfferRepository
	Notification notification.Service
	Logger       *zap.Logger
}

func (s *DefaultFanoutService) Broadcast(ctx context.Context, booking *models.Booking, technicianIDs []string) ([]models.Offer, error) {
	if len(technicianIDs) == 0 {
		s.Logger.Info("booking broadcast with no candidates", zap.String("bookingId", booking.ID))
		return []models.Offer{}, nil
	}

	now := time.Now().UTC()
	offers := make([]models.Offer, 0, len(technicianIDs))
	seen := make(map[string]struct{}, len(technicianIDs))
	for _, techID := range technicianIDs {
		// One offer per technician per fan-out round.
		if _, dup := seen[techID]; dup {
			continue
		}
		seen[techID] = struct{}{}
		offers = append(offers, models.Offer{
			ID:           uuid.New().String(),
			BookingID:    booking.ID,
			TechnicianID: techID,
			Status:       models.OfferSent,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if err := s.OfferRepo.CreateBatch(ctx, offers); err != nil {
		return nil, fmt.Errorf("fan-out failed for booking %s: %w", booking.ID, err)
	}
	s.Logger.Info("broadcast fan-out created",
		zap.String("bookingId", booking.ID), zap.Int("offers", len(offers)))

	// Delivery is a collaborator concern; failures never fail the booking.
	if s.Notification != nil {
		for _, offer := range offers {
			if err := s.Notification.NotifyOfferCreated(ctx, offer, booking); err != nil {
				s.Logger.Warn("offer notification failed",
					zap.String("offerId", offer.ID),
					zap.String("technicianId", offer.TechnicianID),
					zap.Error(err))
			}
		}
	}

	return offers, nil
}
