package offerRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/FlareMindsTech/righttouch-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOfferRepo implements OfferRepository using MongoDB.
type MongoOfferRepo struct {
	coll *mongo.Collection
}

// NewMongoOfferRepo creates an OfferRepository backed by the "offers"
// collection of the given database.
func NewMongoOfferRepo(db *mongo.Database) OfferRepository {
	repo := &MongoOfferRepo{coll: db.Collection("offers")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create offer indexes: %v\n", err)
	}
	return repo
}

func (r *MongoOfferRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// One offer per technician per fan-out round.
		{Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "technician_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// Feed query.
		{Keys: bson.D{{Key: "technician_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoOfferRepo) CreateBatch(ctx context.Context, offers []models.Offer) error {
	if len(offers) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(offers))
	for i := range offers {
		docs = append(docs, offers[i])
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create offers: %w", err)
	}
	return nil
}

func (r *MongoOfferRepo) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	var offer models.Offer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&offer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch offer with id %s: %w", id, err)
	}
	return &offer, nil
}

func (r *MongoOfferRepo) UpdateStatus(ctx context.Context, id string, from, to models.OfferStatus) (bool, error) {
	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update offer %s to %s: %w", id, to, err)
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoOfferRepo) ExpireSiblings(ctx context.Context, bookingID, winningOfferID string) error {
	filter := bson.M{
		"booking_id": bookingID,
		"id":         bson.M{"$ne": winningOfferID},
		"status":     models.OfferSent,
	}
	update := bson.M{"$set": bson.M{
		"status":     models.OfferExpired,
		"updated_at": time.Now().UTC(),
	}}
	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to expire sibling offers for booking %s: %w", bookingID, err)
	}
	return nil
}

func (r *MongoOfferRepo) ListSentByTechnician(ctx context.Context, technicianID string) ([]models.Offer, error) {
	filter := bson.M{"technician_id": technicianID, "status": models.OfferSent}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve offers for technician %s: %w", technicianID, err)
	}
	defer cursor.Close(ctx)

	offers := []models.Offer{}
	for cursor.Next(ctx) {
		var o models.Offer
		if err := cursor.Decode(&o); err != nil {
			return nil, fmt.Errorf("failed to decode offer: %w", err)
		}
		offers = append(offers, o)
	}
	return offers, nil
}

func (r *MongoOfferRepo) ExpireOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	filter := bson.M{
		"status":     models.OfferSent,
		"created_at": bson.M{"$lt": cutoff},
	}

	bookingIDs, err := r.coll.Distinct(ctx, "booking_id", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to collect stale offer bookings: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"status":     models.OfferExpired,
		"updated_at": time.Now().UTC(),
	}}
	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return nil, fmt.Errorf("failed to expire stale offers: %w", err)
	}

	ids := make([]string, 0, len(bookingIDs))
	for _, v := range bookingIDs {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
