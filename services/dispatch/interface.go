package dispatch

import (
	"context"

	"github.com/FlareMindsTech/righttouch-backend/models"
)

// MatcherService selects the technicians a new booking is broadcast to.
type MatcherService interface {
	// Match returns up to the configured cap of eligible technician IDs for
	// the service at the given address. An empty result is not an error; the
	// booking simply receives no offers.
	Match(ctx context.Context, serviceID string, address models.Address) ([]string, error)
}

// FanoutService turns a candidate list into persisted offers.
type FanoutService interface {
	// Broadcast creates one "sent" offer per candidate as a single batch and
	// reports each created offer to the notifier. Runs exactly once per
	// booking, triggered synchronously by booking creation.
	Broadcast(ctx context.Context, booking *models.Booking, technicianIDs []string) ([]models.Offer, error)
}

// ResolverService processes a technician's response to an offer.
type ResolverService interface {
	// Respond applies an accept or reject. On accept it claims the parent
	// booking and retires every sibling offer inside one transaction; if the
	// booking was already claimed it returns ErrConflict and leaves the
	// offer untouched. The updated booking is returned on a winning accept.
	Respond(ctx context.Context, offerID, technicianID string, response models.OfferResponse) (*models.Booking, error)
}

// FeedService is the technician-facing read model of open offers.
type FeedService interface {
	// OpenOffers returns the technician's "sent" offers whose booking is
	// still broadcasted. Offers on bookings claimed by someone else are
	// filtered out at read time even if not yet marked expired.
	OpenOffers(ctx context.Context, technicianID string) ([]models.OpenOffer, error)
}
