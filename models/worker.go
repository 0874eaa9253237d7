package models

import "time"

// RegistrationState tracks the worker registration saga.
type RegistrationState string

const (
	RegistrationPending  RegistrationState = "pending"
	RegistrationComplete RegistrationState = "complete"
)

// DefaultAvailability is assigned when a worker does not choose one.
var DefaultAvailability = []string{"morning", "afternoon", "evening"}

type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

type Location struct {
	City    string    `bson:"city" json:"city"`
	State   string    `bson:"state,omitempty" json:"state,omitempty"`
	Pincode string    `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Geo     *GeoPoint `bson:"geo,omitempty" json:"geo,omitempty"`
}

// Worker is a worker's service-offering profile. One per owning identity.
type Worker struct {
	ID                string            `bson:"id" json:"id"`
	OwnerID           string            `bson:"ownerId" json:"ownerId"`
	Name              string            `bson:"name" json:"name"`
	Email             string            `bson:"email" json:"email"`
	Phone             string            `bson:"phone,omitempty" json:"phone,omitempty"`
	Skills            []string          `bson:"skills" json:"skills"`
	SkillKeys         []string          `bson:"skillKeys" json:"-"`
	Experience        int               `bson:"experience" json:"experience"`
	Price             float64           `bson:"price" json:"price"`
	Bio               string            `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar            string            `bson:"avatar,omitempty" json:"avatar,omitempty"`
	IDProof           string            `bson:"idProof,omitempty" json:"-"`
	Certificate       string            `bson:"certificate,omitempty" json:"-"`
	Rating            float64           `bson:"rating" json:"rating"`
	ReviewCount       int               `bson:"reviewCount" json:"reviewCount"`
	Verified          bool              `bson:"verified" json:"verified"`
	Location          Location          `bson:"location" json:"location"`
	Address           string            `bson:"address,omitempty" json:"address,omitempty"`
	Availability      []string          `bson:"availability" json:"availability"`
	RegistrationState RegistrationState `bson:"registrationState" json:"registrationState"`
	CreatedAt         time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// HasSkill reports whether the normalized key is among the worker's skills.
func (w *Worker) HasSkill(key string) bool {
	for _, k := range w.SkillKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Summary returns the projection shown next to a customer's bookings.
func (w *Worker) Summary() *WorkerSummary {
	return &WorkerSummary{ID: w.ID, Name: w.Name, Avatar: w.Avatar, Skills: w.Skills}
}

type WorkerSummary struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Avatar string   `json:"avatar,omitempty"`
	Skills []string `json:"skills"`
}

// WorkerServices is the skills and price view a worker edits.
type WorkerServices struct {
	Skills []string `json:"skills"`
	Price  float64  `json:"price"`
}

// ProfileFiles holds the durable URLs returned by object storage.
type ProfileFiles struct {
	Avatar      string
	IDProof     string
	Certificate string
}
