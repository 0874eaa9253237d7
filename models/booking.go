package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus accepts only the three known statuses.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted:
		return BookingStatus(s), true
	}
	return "", false
}

// Booking links a customer to a worker for a service at a date and slot.
// Price is fixed when the booking is created.
type Booking struct {
	ID         string        `bson:"id" json:"id"`
	CustomerID string        `bson:"customerId" json:"customerId"`
	WorkerID   string        `bson:"workerId" json:"workerId"`
	Service    string        `bson:"service" json:"service"`
	Date       time.Time     `bson:"date" json:"date"`
	Slot       string        `bson:"slot" json:"slot"`
	Address    string        `bson:"address" json:"address"`
	Price      float64       `bson:"price" json:"price"`
	Notes      string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Status     BookingStatus `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// BookingInput is a booking request after boundary parsing.
type BookingInput struct {
	WorkerID string  `json:"workerId"`
	Service  string  `json:"service"`
	Date     string  `json:"date"`
	Slot     string  `json:"slot"`
	Address  string  `json:"address"`
	Price    float64 `json:"price"`
	Notes    string  `json:"notes"`
}

type CustomerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingView is a booking joined with the counterpart's projection.
type BookingView struct {
	Booking
	Worker   *WorkerSummary   `json:"worker,omitempty"`
	Customer *CustomerSummary `json:"customer,omitempty"`
}

// BookingStats summarizes one worker's bookings.
type BookingStats struct {
	Pending       int     `json:"pending"`
	Confirmed     int     `json:"confirmed"`
	Completed     int     `json:"completed"`
	TotalEarnings float64 `json:"totalEarnings"`
}

// StatusCount is one $group row of the stats aggregation.
type StatusCount struct {
	Status BookingStatus `bson:"_id"`
	Count  int           `bson:"count"`
	Amount float64       `bson:"amount"`
}

// EarningsEntry is one row of the earnings ledger read projection.
type EarningsEntry struct {
	BookingID    string        `json:"bookingId"`
	Date         time.Time     `json:"date"`
	ServiceLabel string        `json:"serviceLabel"`
	Amount       float64       `json:"amount"`
	Status       BookingStatus `json:"status"`
}
