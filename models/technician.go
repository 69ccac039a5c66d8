package models

import "time"

// WorkStatus is the admin approval state of a technician.
type WorkStatus string

const (
	WorkPending   WorkStatus = "pending"
	WorkTrained   WorkStatus = "trained"
	WorkApproved  WorkStatus = "approved"
	WorkSuspended WorkStatus = "suspended"
)

// KycStatus is the verification state of a technician's KYC submission.
type KycStatus string

const (
	KycPending  KycStatus = "pending"
	KycApproved KycStatus = "approved"
	KycRejected KycStatus = "rejected"
)

// Skill declares one service a technician can perform.
type Skill struct {
	ServiceID string `bson:"service_id" json:"service_id"`
}

// Availability holds the technician's live availability toggle.
type Availability struct {
	IsOnline bool `bson:"is_online" json:"is_online"`
}

// Technician is the eligibility snapshot read by the matcher. The dispatch
// core only ever mutates the availability toggle; everything else is owned
// by the onboarding/KYC flows outside this service.
type Technician struct {
	ID                string       `bson:"id" json:"id"`
	UserID            string       `bson:"user_id" json:"user_id"`
	WorkStatus        WorkStatus   `bson:"work_status" json:"work_status"`
	KycStatus         KycStatus    `bson:"kyc_status" json:"kyc_status"`
	ProfileComplete   bool         `bson:"profile_complete" json:"profile_complete"`
	TrainingCompleted bool         `bson:"training_completed" json:"training_completed"`
	Availability      Availability `bson:"availability" json:"availability"`
	Skills            []Skill      `bson:"skills" json:"skills"`
	Location          *GeoPoint    `bson:"location,omitempty" json:"location,omitempty"`
	Pincode           string       `bson:"pincode,omitempty" json:"pincode,omitempty"`
	City              string       `bson:"city,omitempty" json:"city,omitempty"`
	State             string       `bson:"state,omitempty" json:"state,omitempty"`
	FCMToken          string       `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt         time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time    `bson:"updated_at" json:"updated_at"`
}

// Eligible reports whether the snapshot passes every gate of the broadcast
// eligibility predicate for the given service.
func (t Technician) Eligible(serviceID string) bool {
	if t.KycStatus != KycApproved || t.WorkStatus != WorkApproved {
		return false
	}
	if !t.ProfileComplete || !t.TrainingCompleted || !t.Availability.IsOnline {
		return false
	}
	for _, s := range t.Skills {
		if s.ServiceID == serviceID {
			return true
		}
	}
	return false
}
