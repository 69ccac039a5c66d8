package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/FlareMindsTech/righttouch-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository backed by the "bookings"
// collection of the given database.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields that are frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		// Technician dashboard queries filter on both.
		{Keys: bson.D{{Key: "technician_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// Claim is the single conditional write that decides the broadcast winner.
// The filter pins the still-open state, so of any number of concurrent
// claims the store applies exactly one.
func (r *MongoBookingRepo) Claim(ctx context.Context, bookingID, technicianID string) (*models.Booking, error) {
	filter := bson.M{
		"id":     bookingID,
		"status": models.BookingBroadcasted,
		"technician_id": bson.M{
			"$in": bson.A{nil, ""},
		},
	}
	update := bson.M{"$set": bson.M{
		"status":        models.BookingAccepted,
		"technician_id": technicianID,
		"updated_at":    time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to claim booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) Transition(ctx context.Context, id string, to models.BookingStatus, from ...models.BookingStatus) (*models.Booking, error) {
	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": from},
	}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to transition booking %s to %s: %w", id, to, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"customer_id": customerID})
}

func (r *MongoBookingRepo) ListByTechnician(ctx context.Context, technicianID string, statuses ...models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{"technician_id": technicianID}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	return r.list(ctx, filter)
}

func (r *MongoBookingRepo) ListByIDs(ctx context.Context, ids []string, status models.BookingStatus) ([]models.Booking, error) {
	if len(ids) == 0 {
		return []models.Booking{}, nil
	}
	return r.list(ctx, bson.M{"id": bson.M{"$in": ids}, "status": status})
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
