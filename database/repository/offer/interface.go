package offerRepo

import (
	"context"
	"time"

	"github.com/FlareMindsTech/righttouch-backend/models"
)

// OfferRepository persists broadcast offers. UpdateStatus is a conditional
// write keyed on the current status; a false result means the offer was no
// longer in the expected state at write time.
type OfferRepository interface {
	// CreateBatch inserts the whole fan-out in one call. An empty batch is
	// a no-op, not an error.
	CreateBatch(ctx context.Context, offers []models.Offer) error
	GetByID(ctx context.Context, id string) (*models.Offer, error)
	UpdateStatus(ctx context.Context, id string, from, to models.OfferStatus) (bool, error)

	// ExpireSiblings marks every other "sent" offer of the booking expired.
	ExpireSiblings(ctx context.Context, bookingID, winningOfferID string) error

	// ListSentByTechnician returns the technician's offers still in "sent",
	// newest first. The caller filters out offers whose booking has already
	// been claimed.
	ListSentByTechnician(ctx context.Context, technicianID string) ([]models.Offer, error)

	// ExpireOlderThan expires every "sent" offer created before the cutoff
	// and returns the affected booking IDs. Used by the optional sweep.
	ExpireOlderThan(ctx context.Context, cutoff time.Time) ([]string, error)
}
