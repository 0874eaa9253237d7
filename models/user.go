package models

import "time"

// User is an identity account. Role starts as "user" and flips to
// "worker" on worker registration.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	City         string    `bson:"city,omitempty" json:"city,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) Summary() *CustomerSummary {
	return &CustomerSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserUpdate carries the account fields a customer may edit. Nil fields
// are left unchanged.
type UserUpdate struct {
	Name *string
	City *string
}
