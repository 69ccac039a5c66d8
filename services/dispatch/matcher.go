package dispatch

import (
	"context"
	"fmt"
	"strings"

	technicianRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/technician"
	"github.com/FlareMindsTech/righttouch-backend/models"

	"go.uber.org/zap"
)

// DefaultMatcherService implements MatcherService with tiered selection:
// proximity, then pincode, then city, then state. The first tier that yields
// any result wins; tiers are never merged.
type DefaultMatcherService struct {
	TechRepo      technicianRepo.TechnicianRepository
	RadiusMeters  float64
	MaxCandidates int64
	Logger        *zap.Logger
}

func (s *DefaultMatcherService) Match(ctx context.Context, serviceID string, address models.Address) ([]string, error) {
	if serviceID == "" {
		return []string{}, nil
	}

	limit := s.MaxCandidates
	if limit <= 0 {
		limit = 50
	}
	radius := s.RadiusMeters
	if radius <= 0 {
		radius = 5000
	}

	if address.HasValidCoordinates() {
		ids, err := s.TechRepo.FindEligibleNearby(ctx, serviceID, *address.Longitude, *address.Latitude, radius, limit)
		if err != nil {
			return nil, fmt.Errorf("proximity match failed: %w", err)
		}
		if len(ids) > 0 {
			s.Logger.Debug("matched technicians by proximity",
				zap.String("serviceId", serviceID), zap.Int("count", len(ids)))
			return ids, nil
		}
	}

	if pincode := strings.TrimSpace(address.Pincode); pincode != "" {
		ids, err := s.TechRepo.FindEligibleByPincode(ctx, serviceID, pincode, limit)
		if err != nil {
			return nil, fmt.Errorf("pincode match failed: %w", err)
		}
		if len(ids) > 0 {
			return ids, nil
		}
	}

	if city := strings.TrimSpace(address.City); city != "" {
		ids, err := s.TechRepo.FindEligibleByCity(ctx, serviceID, city, limit)
		if err != nil {
			return nil, fmt.Errorf("city match failed: %w", err)
		}
		if len(ids) > 0 {
			return ids, nil
		}
	}

	if state := strings.TrimSpace(address.State); state != "" {
		ids, err := s.TechRepo.FindEligibleByState(ctx, serviceID, state, limit)
		if err != nil {
			return nil, fmt.Errorf("state match failed: %w", err)
		}
		if len(ids) > 0 {
			return ids, nil
		}
	}

	s.Logger.Info("no eligible technicians matched", zap.String("serviceId", serviceID))
	return []string{}, nil
}
