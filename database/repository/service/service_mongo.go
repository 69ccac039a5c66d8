package serviceRepo

import (
	"context"
	"fmt"

	"github.com/FlareMindsTech/righttouch-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceRepository reads the service catalog. Catalog CRUD is owned by
// another system; the dispatch core only validates bookings against it and
// decorates the job feed with service names.
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
	GetNames(ctx context.Context, ids []string) (map[string]string, error)
}

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

func NewMongoServiceRepo(db *mongo.Database) ServiceRepository {
	return &MongoServiceRepo{coll: db.Collection("services")}
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &svc, nil
}

func (r *MongoServiceRepo) GetNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := map[string]string{}
	if len(ids) == 0 {
		return names, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var svc models.Service
		if err := cursor.Decode(&svc); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		names[svc.ID] = svc.ServiceName
	}
	return names, nil
}
