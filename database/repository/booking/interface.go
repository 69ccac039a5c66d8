package bookingRepo

import (
	"context"

	"github.com/FlareMindsTech/righttouch-backend/models"
)

// BookingRepository persists bookings. Transition and Claim are conditional
// writes: they only take effect when the booking still holds the expected
// prior status, and report a miss with a nil booking rather than an error.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// Claim atomically moves a still-broadcasted, unassigned booking to
	// "accepted" and sets the owning technician. A nil result means another
	// technician already claimed it.
	Claim(ctx context.Context, bookingID, technicianID string) (*models.Booking, error)

	// Transition moves the booking to the target status only if its current
	// status is one of from. A nil result means the precondition no longer
	// held at write time.
	Transition(ctx context.Context, id string, to models.BookingStatus, from ...models.BookingStatus) (*models.Booking, error)

	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListByTechnician(ctx context.Context, technicianID string, statuses ...models.BookingStatus) ([]models.Booking, error)
	ListByIDs(ctx context.Context, ids []string, status models.BookingStatus) ([]models.Booking, error)
}
