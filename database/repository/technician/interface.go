package technicianRepo

import (
	"context"

	"github.com/FlareMindsTech/righttouch-backend/models"
)

// TechnicianRepository reads technician eligibility snapshots and mutates
// the availability toggle. Each Find* method applies the full broadcast
// eligibility predicate on top of its own tier filter and returns technician
// IDs capped at limit. FindEligibleNearby orders results nearest first.
type TechnicianRepository interface {
	GetByID(ctx context.Context, id string) (*models.Technician, error)
	GetByUserID(ctx context.Context, userID string) (*models.Technician, error)

	FindEligibleNearby(ctx context.Context, serviceID string, lng, lat, radiusMeters float64, limit int64) ([]string, error)
	FindEligibleByPincode(ctx context.Context, serviceID, pincode string, limit int64) ([]string, error)
	FindEligibleByCity(ctx context.Context, serviceID, city string, limit int64) ([]string, error)
	FindEligibleByState(ctx context.Context, serviceID, state string, limit int64) ([]string, error)

	SetAvailability(ctx context.Context, id string, online bool) error
}
