package dispatch

import (
	"context"

	bookingRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/booking"
	offerRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/offer"
	serviceRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/service"
	"github.com/FlareMindsTech/righttouch-backend/models"
)

// DefaultFeedService implements FeedService. The feed filters at read time:
// an offer only shows while its booking is still broadcasted, so offers on
// claimed bookings disappear even before the sweep marks them expired.
type DefaultFeedService struct {
	Offers   offerRepo.OfferRepository
	Bookings bookingRepo.BookingRepository
	Services serviceRepo.ServiceRepository
}

func (s *DefaultFeedService) OpenOffers(ctx context.Context, technicianID string) ([]models.OpenOffer, error) {
	offers, err := s.Offers.ListSentByTechnician(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return []models.OpenOffer{}, nil
	}

	bookingIDs := make([]string, 0, len(offers))
	for _, o := range offers {
		bookingIDs = append(bookingIDs, o.BookingID)
	}
	bookings, err := s.Bookings.ListByIDs(ctx, bookingIDs, models.BookingBroadcasted)
	if err != nil {
		return nil, err
	}
	open := make(map[string]models.Booking, len(bookings))
	serviceIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		open[b.ID] = b
		serviceIDs = append(serviceIDs, b.ServiceID)
	}

	names := map[string]string{}
	if s.Services != nil {
		if names, err = s.Services.GetNames(ctx, serviceIDs); err != nil {
			return nil, err
		}
	}

	feed := []models.OpenOffer{}
	for _, o := range offers {
		booking, ok := open[o.BookingID]
		if !ok {
			continue
		}
		feed = append(feed, models.OpenOffer{
			Offer:       o,
			BookingID:   booking.ID,
			ServiceID:   booking.ServiceID,
			ServiceName: names[booking.ServiceID],
			BaseAmount:  booking.BaseAmount,
			Address:     booking.Address,
			ScheduledAt: booking.ScheduledAt,
		})
	}
	return feed, nil
}
