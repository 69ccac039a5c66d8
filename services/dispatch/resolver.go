package dispatch

import (
	"context"
	"fmt"

	"github.com/FlareMindsTech/righttouch-backend/database"
	bookingRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/booking"
	offerRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/offer"
	"github.com/FlareMindsTech/righttouch-backend/models"

	"go.uber.org/zap"
)

// DefaultResolverService implements ResolverService. The accept path runs
// inside one transaction: the conditional booking claim, the winning offer
// update and the sibling expiry commit or abort together. The claim's
// status filter is the only concurrency control; no in-process lock would
// hold across server instances.
type DefaultResolverService struct {
	Bookings bookingRepo.BookingRepository
	Offers   offerRepo.OfferRepository
	Tx       database.TxRunner
	Logger   *zap.Logger
}

func (s *DefaultResolverService) Respond(ctx context.Context, offerID, technicianID string, response models.OfferResponse) (*models.Booking, error) {
	if response != models.ResponseAccept && response != models.ResponseReject {
		return nil, NewValidationError("invalid response %q", response)
	}

	offer, err := s.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, fmt.Errorf("offer %s: %w", offerID, ErrNotFound)
	}
	if offer.TechnicianID != technicianID {
		return nil, fmt.Errorf("offer %s is not addressed to technician %s: %w", offerID, technicianID, ErrForbidden)
	}
	if offer.Status != models.OfferSent {
		return nil, fmt.Errorf("offer %s already processed: %w", offerID, ErrConflict)
	}

	if response == models.ResponseReject {
		return nil, s.reject(ctx, offerID)
	}
	return s.accept(ctx, offer)
}

// reject touches only the offer itself. The sent-precondition in the write
// keeps it exclusive of a concurrent accept of the same offer.
func (s *DefaultResolverService) reject(ctx context.Context, offerID string) error {
	err := s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.Offers.UpdateStatus(txCtx, offerID, models.OfferSent, models.OfferRejected)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("offer %s already processed: %w", offerID, ErrConflict)
		}
		return nil
	})
	if err == nil {
		s.Logger.Info("offer rejected", zap.String("offerId", offerID))
	}
	return err
}

func (s *DefaultResolverService) accept(ctx context.Context, offer *models.Offer) (*models.Booking, error) {
	var booking *models.Booking

	err := s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		// The conditional claim decides the winner. A miss means someone
		// else got there first; abort with nothing changed.
		claimed, err := s.Bookings.Claim(txCtx, offer.BookingID, offer.TechnicianID)
		if err != nil {
			return err
		}
		if claimed == nil {
			return fmt.Errorf("booking %s already taken: %w", offer.BookingID, ErrConflict)
		}

		ok, err := s.Offers.UpdateStatus(txCtx, offer.ID, models.OfferSent, models.OfferAccepted)
		if err != nil {
			return err
		}
		if !ok {
			// A concurrent writer got to this offer inside our transaction
			// window; aborting rolls the claim back too.
			return fmt.Errorf("offer %s already processed: %w", offer.ID, ErrConflict)
		}

		if err := s.Offers.ExpireSiblings(txCtx, offer.BookingID, offer.ID); err != nil {
			return err
		}

		booking = claimed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("booking claimed",
		zap.String("bookingId", booking.ID),
		zap.String("technicianId", offer.TechnicianID),
		zap.String("offerId", offer.ID))
	return booking, nil
}
