package booking

import (
	"context"

	bookingRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/booking"
	serviceRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/service"
	"github.com/FlareMindsTech/righttouch-backend/models"
	"github.com/FlareMindsTech/righttouch-backend/services/dispatch"

	"go.uber.org/zap"
)

// BookingService owns the booking lifecycle: creation with broadcast
// fan-out, role-scoped listing, technician status progression and customer
// cancellation.
type BookingService interface {
	Create(ctx context.Context, customerID string, input models.CreateBookingInput) (*models.Booking, error)
	ListFor(ctx context.Context, actor models.Actor) ([]models.Booking, error)
	CustomerHistory(ctx context.Context, customerID string) ([]models.Booking, error)
	TechnicianHistory(ctx context.Context, technicianID string) ([]models.Booking, error)
	TechnicianCurrentJobs(ctx context.Context, technicianID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, technicianID string, next models.BookingStatus) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, customerID string) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Services serviceRepo.ServiceRepository
	Matcher  dispatch.MatcherService
	Fanout   dispatch.FanoutService
	Logger   *zap.Logger
}
