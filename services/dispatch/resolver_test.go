package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/FlareMindsTech/righttouch-backend/models"

	"go.uber.org/zap"
)

type resolverFixture struct {
	store    *memStore
	bookings *fakeBookingRepo
	offers   *fakeOfferRepo
	resolver *DefaultResolverService
}

func newResolverFixture() *resolverFixture {
	store := newMemStore()
	bookings := &fakeBookingRepo{store: store}
	offers := &fakeOfferRepo{store: store}
	return &resolverFixture{
		store:    store,
		bookings: bookings,
		offers:   offers,
		resolver: &DefaultResolverService{
			Bookings: bookings,
			Offers:   offers,
			Tx:       store,
			Logger:   zap.NewNop(),
		},
	}
}

func (f *resolverFixture) seedBroadcast(t *testing.T, bookingID string, technicianIDs ...string) []models.Offer {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := f.bookings.Create(ctx, &models.Booking{
		ID:         bookingID,
		CustomerID: "cust-1",
		ServiceID:  testServiceID,
		BaseAmount: 500,
		Address:    models.Address{Line1: "12 MG Road"},
		Status:     models.BookingBroadcasted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	offers := make([]models.Offer, 0, len(technicianIDs))
	for i, techID := range technicianIDs {
		offers = append(offers, models.Offer{
			ID:           fmt.Sprintf("%s-offer-%d", bookingID, i),
			BookingID:    bookingID,
			TechnicianID: techID,
			Status:       models.OfferSent,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	if err := f.offers.CreateBatch(ctx, offers); err != nil {
		t.Fatalf("seed offers: %v", err)
	}
	return offers
}

func TestRespondAcceptClaimsBookingAndRetiresSiblings(t *testing.T) {
	f := newResolverFixture()
	offers := f.seedBroadcast(t, "bk-1", "tech-a", "tech-b", "tech-c")

	booking, err := f.resolver.Respond(context.Background(), offers[0].ID, "tech-a", models.ResponseAccept)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if booking.Status != models.BookingAccepted || booking.TechnicianID != "tech-a" {
		t.Fatalf("booking = %+v, want accepted by tech-a", booking)
	}

	winner, _ := f.offers.GetByID(context.Background(), offers[0].ID)
	if winner.Status != models.OfferAccepted {
		t.Errorf("winning offer status = %s, want accepted", winner.Status)
	}
	for _, o := range offers[1:] {
		sibling, _ := f.offers.GetByID(context.Background(), o.ID)
		if sibling.Status != models.OfferExpired {
			t.Errorf("sibling %s status = %s, want expired", o.ID, sibling.Status)
		}
	}
}

func TestRespondRejectTouchesOnlyTheOffer(t *testing.T) {
	f := newResolverFixture()
	offers := f.seedBroadcast(t, "bk-1", "tech-a", "tech-b")

	booking, err := f.resolver.Respond(context.Background(), offers[0].ID, "tech-a", models.ResponseReject)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if booking != nil {
		t.Fatalf("reject returned a booking: %+v", booking)
	}

	rejected, _ := f.offers.GetByID(context.Background(), offers[0].ID)
	if rejected.Status != models.OfferRejected {
		t.Errorf("offer status = %s, want rejected", rejected.Status)
	}
	other, _ := f.offers.GetByID(context.Background(), offers[1].ID)
	if other.Status != models.OfferSent {
		t.Errorf("sibling status = %s, want sent", other.Status)
	}
	parent, _ := f.bookings.GetByID(context.Background(), "bk-1")
	if parent.Status != models.BookingBroadcasted || parent.TechnicianID != "" {
		t.Errorf("booking = %+v, want still broadcasted and unassigned", parent)
	}
}

func TestRespondForbiddenForWrongTechnician(t *testing.T) {
	f := newResolverFixture()
	offers := f.seedBroadcast(t, "bk-1", "tech-a")

	_, err := f.resolver.Respond(context.Background(), offers[0].ID, "tech-b", models.ResponseAccept)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestRespondUnknownOfferIsNotFound(t *testing.T) {
	f := newResolverFixture()

	_, err := f.resolver.Respond(context.Background(), "missing", "tech-a", models.ResponseAccept)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRespondProcessedOfferIsConflict(t *testing.T) {
	f := newResolverFixture()
	offers := f.seedBroadcast(t, "bk-1", "tech-a")

	if _, err := f.resolver.Respond(context.Background(), offers[0].ID, "tech-a", models.ResponseReject); err != nil {
		t.Fatalf("first reject failed: %v", err)
	}
	_, err := f.resolver.Respond(context.Background(), offers[0].ID, "tech-a", models.ResponseReject)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestRespondInvalidResponseIsValidation(t *testing.T) {
	f := newResolverFixture()
	offers := f.seedBroadcast(t, "bk-1", "tech-a")

	_, err := f.resolver.Respond(context.Background(), offers[0].ID, "tech-a", "maybe")
	if !IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

// Losing an accept leaves the loser's offer untouched: the booking was taken
// but their own record stays "sent" until the winner's sibling expiry (which
// already ran here) or a later sweep picks it up.
func TestRespondAcceptAfterClaimIsConflict(t *testing.T) {
	f := newResolverFixture()
	offers := f.seedBroadcast(t, "bk-1", "tech-a", "tech-b")

	if _, err := f.resolver.Respond(context.Background(), offers[0].ID, "tech-a", models.ResponseAccept); err != nil {
		t.Fatalf("winner accept failed: %v", err)
	}

	_, err := f.resolver.Respond(context.Background(), offers[1].ID, "tech-b", models.ResponseAccept)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("loser err = %v, want ErrConflict", err)
	}
}

// k technicians race to accept k distinct offers on one booking: exactly one
// wins, the rest get conflicts, and the booking ends with a single owner and
// at most one accepted offer.
func TestConcurrentAcceptsExactlyOneWinner(t *testing.T) {
	const k = 8
	f := newResolverFixture()

	techIDs := make([]string, k)
	for i := range techIDs {
		techIDs[i] = fmt.Sprintf("tech-%d", i)
	}
	offers := f.seedBroadcast(t, "bk-race", techIDs...)

	var wg sync.WaitGroup
	errs := make([]error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.resolver.Respond(context.Background(), offers[i].ID, techIDs[i], models.ResponseAccept)
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != k-1 {
		t.Fatalf("wins = %d, conflicts = %d, want 1 and %d", wins, conflicts, k-1)
	}

	booking, _ := f.bookings.GetByID(context.Background(), "bk-race")
	if booking.Status != models.BookingAccepted || booking.TechnicianID == "" {
		t.Fatalf("booking = %+v, want accepted with an owner", booking)
	}

	accepted := 0
	for _, o := range offers {
		got, _ := f.offers.GetByID(context.Background(), o.ID)
		switch got.Status {
		case models.OfferAccepted:
			accepted++
			if got.TechnicianID != booking.TechnicianID {
				t.Errorf("accepted offer belongs to %s, booking owned by %s", got.TechnicianID, booking.TechnicianID)
			}
		case models.OfferExpired, models.OfferSent:
			// Losers are expired by the winner's transaction; "sent" is only
			// possible transiently and never after settling, but a loser must
			// never be accepted.
		default:
			t.Errorf("offer %s in unexpected status %s", got.ID, got.Status)
		}
	}
	if accepted != 1 {
		t.Fatalf("accepted offers = %d, want exactly 1", accepted)
	}
}
