package profileRepo

import (
	"context"
	"fmt"

	"github.com/FlareMindsTech/righttouch-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository resolves a verified account identity to the role-specific
// profile the core operates on. There is one implementation per role; the
// auth boundary picks the right one once, instead of re-dispatching on a
// role string throughout the core.
type Repository interface {
	Role() models.Role
	// ResolveProfileID maps the authenticated user to their profile ID. A
	// nil error with an empty ID means no profile exists for this user.
	ResolveProfileID(ctx context.Context, userID string) (string, error)
}

// CustomerProfileRepo resolves customers. A customer's profile is the user
// record itself, so resolution only verifies the account exists.
type CustomerProfileRepo struct {
	coll *mongo.Collection
}

func NewCustomerProfileRepo(db *mongo.Database) *CustomerProfileRepo {
	return &CustomerProfileRepo{coll: db.Collection("users")}
}

func (r *CustomerProfileRepo) Role() models.Role { return models.RoleCustomer }

func (r *CustomerProfileRepo) ResolveProfileID(ctx context.Context, userID string) (string, error) {
	var user struct {
		ID string `bson:"id"`
	}
	err := r.coll.FindOne(ctx, bson.M{"id": userID, "role": models.RoleCustomer}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve customer profile for user %s: %w", userID, err)
	}
	return user.ID, nil
}

// TechnicianProfileRepo resolves technicians to their technician document.
type TechnicianProfileRepo struct {
	coll *mongo.Collection
}

func NewTechnicianProfileRepo(db *mongo.Database) *TechnicianProfileRepo {
	return &TechnicianProfileRepo{coll: db.Collection("technicians")}
}

func (r *TechnicianProfileRepo) Role() models.Role { return models.RoleTechnician }

func (r *TechnicianProfileRepo) ResolveProfileID(ctx context.Context, userID string) (string, error) {
	var tech struct {
		ID string `bson:"id"`
	}
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&tech)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve technician profile for user %s: %w", userID, err)
	}
	return tech.ID, nil
}
