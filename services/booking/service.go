package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/FlareMindsTech/righttouch-backend/models"
	"github.com/FlareMindsTech/righttouch-backend/services/dispatch"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates the request, persists the booking in "broadcasted" state
// and fans the broadcast out to matched technicians. A booking with zero
// candidates is still created; it simply receives no offers.
func (s *DefaultBookingService) Create(ctx context.Context, customerID string, input models.CreateBookingInput) (*models.Booking, error) {
	if input.ServiceID == "" {
		return nil, dispatch.NewValidationError("serviceId is required")
	}
	if input.BaseAmount < 0 {
		return nil, dispatch.NewValidationError("baseAmount must be a non-negative number")
	}
	if input.Address.Line1 == "" {
		return nil, dispatch.NewValidationError("address is required")
	}

	svc, err := s.Services.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || !svc.IsActive {
		return nil, fmt.Errorf("service %s not found or inactive: %w", input.ServiceID, dispatch.ErrNotFound)
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		ServiceID:   input.ServiceID,
		BaseAmount:  input.BaseAmount,
		Address:     input.Address,
		ScheduledAt: input.ScheduledAt,
		Status:      models.BookingBroadcasted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	candidates, err := s.Matcher.Match(ctx, booking.ServiceID, booking.Address)
	if err != nil {
		return nil, err
	}
	if _, err := s.Fanout.Broadcast(ctx, booking, candidates); err != nil {
		return nil, err
	}

	s.Logger.Info("booking created and broadcasted",
		zap.String("bookingId", booking.ID),
		zap.String("customerId", customerID),
		zap.Int("candidates", len(candidates)))
	return booking, nil
}

// ListFor returns bookings scoped to the caller's role.
func (s *DefaultBookingService) ListFor(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	switch actor.Role {
	case models.RoleCustomer:
		return s.Repo.ListByCustomer(ctx, actor.ProfileID)
	case models.RoleTechnician:
		return s.Repo.ListByTechnician(ctx, actor.ProfileID)
	default:
		return nil, fmt.Errorf("unknown role %q: %w", actor.Role, dispatch.ErrForbidden)
	}
}

func (s *DefaultBookingService) CustomerHistory(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *DefaultBookingService) TechnicianHistory(ctx context.Context, technicianID string) ([]models.Booking, error) {
	return s.Repo.ListByTechnician(ctx, technicianID,
		models.BookingCompleted, models.BookingCancelled)
}

func (s *DefaultBookingService) TechnicianCurrentJobs(ctx context.Context, technicianID string) ([]models.Booking, error) {
	return s.Repo.ListByTechnician(ctx, technicianID,
		models.BookingAccepted, models.BookingOnTheWay, models.BookingReached, models.BookingInProgress)
}

// UpdateStatus moves a booking one forward step, performed only by the
// technician who owns it.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, technicianID string, next models.BookingStatus) (*models.Booking, error) {
	switch next {
	case models.BookingOnTheWay, models.BookingReached, models.BookingInProgress, models.BookingCompleted:
	default:
		return nil, dispatch.NewValidationError("invalid status %q", next)
	}

	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, dispatch.ErrNotFound)
	}
	if booking.TechnicianID == "" || booking.TechnicianID != technicianID {
		return nil, fmt.Errorf("booking %s is not assigned to technician %s: %w", bookingID, technicianID, dispatch.ErrForbidden)
	}
	if !CanStep(booking.Status, next) {
		return nil, fmt.Errorf("illegal transition %s -> %s: %w", booking.Status, next, dispatch.ErrConflict)
	}

	updated, err := s.Repo.Transition(ctx, bookingID, next, booking.Status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Status moved under us between the read and the write.
		return nil, fmt.Errorf("booking %s changed concurrently: %w", bookingID, dispatch.ErrConflict)
	}

	s.Logger.Info("booking status updated",
		zap.String("bookingId", bookingID), zap.String("status", string(next)))
	return updated, nil
}

// Cancel is the customer's exit. Allowed until a technician is on the way;
// terminal bookings stay terminal.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, customerID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, dispatch.ErrNotFound)
	}
	if booking.CustomerID != customerID {
		return nil, fmt.Errorf("booking %s does not belong to customer %s: %w", bookingID, customerID, dispatch.ErrForbidden)
	}
	if !Cancellable(booking.Status) {
		return nil, fmt.Errorf("booking in status %s cannot be cancelled: %w", booking.Status, dispatch.ErrConflict)
	}

	updated, err := s.Repo.Transition(ctx, bookingID, models.BookingCancelled,
		models.BookingRequested, models.BookingBroadcasted, models.BookingAccepted)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("booking %s changed concurrently: %w", bookingID, dispatch.ErrConflict)
	}

	s.Logger.Info("booking cancelled", zap.String("bookingId", bookingID))
	return updated, nil
}
