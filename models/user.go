package models

import "time"

// Role is the closed set of actors the auth boundary can hand us.
type Role string

const (
	RoleCustomer   Role = "Customer"
	RoleTechnician Role = "Technician"
)

// User is the account record behind both roles. Signup, OTP and password
// handling live outside this service; only the identity fields are read here.
type User struct {
	ID        string    `bson:"id" json:"id"`
	FirstName string    `bson:"first_name" json:"first_name"`
	LastName  string    `bson:"last_name" json:"last_name"`
	Phone     string    `bson:"phone" json:"phone"`
	Role      Role      `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Actor is the verified (identity, role, profile) triple the auth middleware
// attaches to every request. ProfileID is the role-specific profile: the
// technician document ID for technicians, the user ID itself for customers.
type Actor struct {
	UserID    string
	Role      Role
	ProfileID string
}
