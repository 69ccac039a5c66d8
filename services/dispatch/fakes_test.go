package dispatch

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/FlareMindsTech/righttouch-backend/models"
)

// memStore backs the in-memory repository fakes. A single mutex stands in
// for the storage layer's atomicity: transactions hold it for their whole
// body and roll the state back when the body fails.
type memStore struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	offers   map[string]models.Offer
	order    []string // offer insertion order, newest last
}

func newMemStore() *memStore {
	return &memStore{
		bookings: map[string]models.Booking{},
		offers:   map[string]models.Offer{},
	}
}

type txKey struct{}

// lock acquires the store mutex unless the context is already inside a
// transaction, which holds it for the duration.
func (s *memStore) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *memStore) snapshot() (map[string]models.Booking, map[string]models.Offer, []string) {
	bookings := make(map[string]models.Booking, len(s.bookings))
	for k, v := range s.bookings {
		bookings[k] = v
	}
	offers := make(map[string]models.Offer, len(s.offers))
	for k, v := range s.offers {
		offers[k] = v
	}
	order := append([]string(nil), s.order...)
	return bookings, offers, order
}

// WithTransaction implements database.TxRunner.
func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, offers, order := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.bookings, s.offers, s.order = bookings, offers, order
		return err
	}
	return nil
}

// fakeBookingRepo implements bookingRepo.BookingRepository on a memStore.
type fakeBookingRepo struct {
	store *memStore
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	defer r.store.lock(ctx)()
	r.store.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	defer r.store.lock(ctx)()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBookingRepo) Claim(ctx context.Context, bookingID, technicianID string) (*models.Booking, error) {
	defer r.store.lock(ctx)()
	b, ok := r.store.bookings[bookingID]
	if !ok || b.Status != models.BookingBroadcasted || b.TechnicianID != "" {
		return nil, nil
	}
	b.Status = models.BookingAccepted
	b.TechnicianID = technicianID
	b.UpdatedAt = time.Now().UTC()
	r.store.bookings[bookingID] = b
	return &b, nil
}

func (r *fakeBookingRepo) Transition(ctx context.Context, id string, to models.BookingStatus, from ...models.BookingStatus) (*models.Booking, error) {
	defer r.store.lock(ctx)()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, nil
	}
	matched := false
	for _, f := range from {
		if b.Status == f {
			matched = true
			break
		}
	}
	if !matched {
		return nil, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	r.store.bookings[id] = b
	return &b, nil
}

func (r *fakeBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	defer r.store.lock(ctx)()
	out := []models.Booking{}
	for _, b := range r.store.bookings {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByTechnician(ctx context.Context, technicianID string, statuses ...models.BookingStatus) ([]models.Booking, error) {
	defer r.store.lock(ctx)()
	out := []models.Booking{}
	for _, b := range r.store.bookings {
		if b.TechnicianID != technicianID {
			continue
		}
		if len(statuses) == 0 {
			out = append(out, b)
			continue
		}
		for _, s := range statuses {
			if b.Status == s {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByIDs(ctx context.Context, ids []string, status models.BookingStatus) ([]models.Booking, error) {
	defer r.store.lock(ctx)()
	out := []models.Booking{}
	for _, id := range ids {
		if b, ok := r.store.bookings[id]; ok && b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

// fakeOfferRepo implements offerRepo.OfferRepository on a memStore.
type fakeOfferRepo struct {
	store *memStore
}

func (r *fakeOfferRepo) CreateBatch(ctx context.Context, offers []models.Offer) error {
	defer r.store.lock(ctx)()
	for _, o := range offers {
		for _, existing := range r.store.offers {
			if existing.BookingID == o.BookingID && existing.TechnicianID == o.TechnicianID {
				return errors.New("duplicate offer for booking/technician pair")
			}
		}
		r.store.offers[o.ID] = o
		r.store.order = append(r.store.order, o.ID)
	}
	return nil
}

func (r *fakeOfferRepo) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	defer r.store.lock(ctx)()
	o, ok := r.store.offers[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *fakeOfferRepo) UpdateStatus(ctx context.Context, id string, from, to models.OfferStatus) (bool, error) {
	defer r.store.lock(ctx)()
	o, ok := r.store.offers[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	r.store.offers[id] = o
	return true, nil
}

func (r *fakeOfferRepo) ExpireSiblings(ctx context.Context, bookingID, winningOfferID string) error {
	defer r.store.lock(ctx)()
	for id, o := range r.store.offers {
		if o.BookingID == bookingID && id != winningOfferID && o.Status == models.OfferSent {
			o.Status = models.OfferExpired
			o.UpdatedAt = time.Now().UTC()
			r.store.offers[id] = o
		}
	}
	return nil
}

func (r *fakeOfferRepo) ListSentByTechnician(ctx context.Context, technicianID string) ([]models.Offer, error) {
	defer r.store.lock(ctx)()
	out := []models.Offer{}
	// Newest first.
	for i := len(r.store.order) - 1; i >= 0; i-- {
		o := r.store.offers[r.store.order[i]]
		if o.TechnicianID == technicianID && o.Status == models.OfferSent {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) ExpireOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	defer r.store.lock(ctx)()
	seen := map[string]bool{}
	for id, o := range r.store.offers {
		if o.Status == models.OfferSent && o.CreatedAt.Before(cutoff) {
			o.Status = models.OfferExpired
			r.store.offers[id] = o
			seen[o.BookingID] = true
		}
	}
	ids := []string{}
	for id := range seen {
		ids = append(ids, id)
	}
	return ids, nil
}

// fakeTechRepo implements technicianRepo.TechnicianRepository over a static
// technician set, re-applying the eligibility predicate per tier the way the
// real queries do.
type fakeTechRepo struct {
	techs []models.Technician
}

func (r *fakeTechRepo) GetByID(ctx context.Context, id string) (*models.Technician, error) {
	for _, t := range r.techs {
		if t.ID == id {
			tt := t
			return &tt, nil
		}
	}
	return nil, nil
}

func (r *fakeTechRepo) GetByUserID(ctx context.Context, userID string) (*models.Technician, error) {
	for _, t := range r.techs {
		if t.UserID == userID {
			tt := t
			return &tt, nil
		}
	}
	return nil, nil
}

func (r *fakeTechRepo) FindEligibleNearby(ctx context.Context, serviceID string, lng, lat, radiusMeters float64, limit int64) ([]string, error) {
	type scored struct {
		id   string
		dist float64
	}
	matches := []scored{}
	for _, t := range r.techs {
		if !t.Eligible(serviceID) || t.Location == nil {
			continue
		}
		d := haversineMeters(lat, lng, t.Location.Coordinates[1], t.Location.Coordinates[0])
		if d <= radiusMeters {
			matches = append(matches, scored{t.ID, d})
		}
	}
	// Nearest first.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].dist < matches[j-1].dist; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
	ids := []string{}
	for _, m := range matches {
		if int64(len(ids)) >= limit {
			break
		}
		ids = append(ids, m.id)
	}
	return ids, nil
}

func (r *fakeTechRepo) FindEligibleByPincode(ctx context.Context, serviceID, pincode string, limit int64) ([]string, error) {
	return r.filter(serviceID, limit, func(t models.Technician) bool {
		return t.Pincode == pincode
	})
}

func (r *fakeTechRepo) FindEligibleByCity(ctx context.Context, serviceID, city string, limit int64) ([]string, error) {
	return r.filter(serviceID, limit, func(t models.Technician) bool {
		return strings.EqualFold(t.City, city)
	})
}

func (r *fakeTechRepo) FindEligibleByState(ctx context.Context, serviceID, state string, limit int64) ([]string, error) {
	return r.filter(serviceID, limit, func(t models.Technician) bool {
		return strings.EqualFold(t.State, state)
	})
}

func (r *fakeTechRepo) filter(serviceID string, limit int64, match func(models.Technician) bool) ([]string, error) {
	ids := []string{}
	for _, t := range r.techs {
		if int64(len(ids)) >= limit {
			break
		}
		if t.Eligible(serviceID) && match(t) {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

func (r *fakeTechRepo) SetAvailability(ctx context.Context, id string, online bool) error {
	for i := range r.techs {
		if r.techs[i].ID == id {
			r.techs[i].Availability.IsOnline = online
			return nil
		}
	}
	return errors.New("technician not found")
}

// haversineMeters computes the great-circle distance between two points.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadius = 6371000.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
