package technicianRepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/FlareMindsTech/righttouch-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTechnicianRepo implements TechnicianRepository using MongoDB.
type MongoTechnicianRepo struct {
	coll *mongo.Collection
}

// NewMongoTechnicianRepo creates a TechnicianRepository backed by the
// "technicians" collection of the given database.
func NewMongoTechnicianRepo(db *mongo.Database) TechnicianRepository {
	repo := &MongoTechnicianRepo{coll: db.Collection("technicians")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create technician indexes: %v\n", err)
	}
	return repo
}

func (r *MongoTechnicianRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// 2dsphere index on location for the proximity tier.
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "work_status", Value: 1}, {Key: "availability.is_online", Value: 1}}},
		{Keys: bson.D{{Key: "pincode", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoTechnicianRepo) GetByID(ctx context.Context, id string) (*models.Technician, error) {
	var tech models.Technician
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tech); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch technician with id %s: %w", id, err)
	}
	return &tech, nil
}

func (r *MongoTechnicianRepo) GetByUserID(ctx context.Context, userID string) (*models.Technician, error) {
	var tech models.Technician
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&tech); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch technician for user %s: %w", userID, err)
	}
	return &tech, nil
}

// eligibleFilter is the broadcast eligibility predicate shared by every tier.
func eligibleFilter(serviceID string) bson.M {
	return bson.M{
		"kyc_status":             models.KycApproved,
		"work_status":            models.WorkApproved,
		"profile_complete":       true,
		"training_completed":     true,
		"availability.is_online": true,
		"skills.service_id":      serviceID,
	}
}

func (r *MongoTechnicianRepo) FindEligibleNearby(ctx context.Context, serviceID string, lng, lat, radiusMeters float64, limit int64) ([]string, error) {
	filter := eligibleFilter(serviceID)
	filter["location"] = bson.M{
		"$nearSphere": bson.M{
			"$geometry": bson.M{
				"type":        "Point",
				"coordinates": bson.A{lng, lat},
			},
			"$maxDistance": radiusMeters,
		},
	}
	return r.findIDs(ctx, filter, limit)
}

func (r *MongoTechnicianRepo) FindEligibleByPincode(ctx context.Context, serviceID, pincode string, limit int64) ([]string, error) {
	filter := eligibleFilter(serviceID)
	filter["pincode"] = strings.TrimSpace(pincode)
	return r.findIDs(ctx, filter, limit)
}

func (r *MongoTechnicianRepo) FindEligibleByCity(ctx context.Context, serviceID, city string, limit int64) ([]string, error) {
	filter := eligibleFilter(serviceID)
	filter["city"] = caseInsensitiveExact(city)
	return r.findIDs(ctx, filter, limit)
}

func (r *MongoTechnicianRepo) FindEligibleByState(ctx context.Context, serviceID, state string, limit int64) ([]string, error) {
	filter := eligibleFilter(serviceID)
	filter["state"] = caseInsensitiveExact(state)
	return r.findIDs(ctx, filter, limit)
}

// caseInsensitiveExact builds an anchored, escaped, case-insensitive match.
func caseInsensitiveExact(value string) primitive.Regex {
	return primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(value)) + "$",
		Options: "i",
	}
}

func (r *MongoTechnicianRepo) findIDs(ctx context.Context, filter bson.M, limit int64) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"id": 1}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find eligible technicians: %w", err)
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode technician: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func (r *MongoTechnicianRepo) SetAvailability(ctx context.Context, id string, online bool) error {
	update := bson.M{"$set": bson.M{
		"availability.is_online": online,
		"updated_at":             time.Now().UTC(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update availability for technician %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("technician with id %s not found", id)
	}
	return nil
}
