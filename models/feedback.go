package models

import "time"

type Feedback struct {
	ID        string    `bson:"id" json:"id"`
	WorkerID  string    `bson:"workerId" json:"workerId"`
	UserID    string    `bson:"userId" json:"userId"`
	UserName  string    `bson:"userName" json:"userName"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// RatingSummary is the aggregate written back onto the worker profile.
type RatingSummary struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// RatingRefreshPayload is the background task payload.
type RatingRefreshPayload struct {
	WorkerID string `json:"workerId"`
}

// WorkerDashboard is the worker's self-service overview.
type WorkerDashboard struct {
	Worker         *Worker      `json:"worker"`
	Stats          BookingStats `json:"stats"`
	RecentFeedback []Feedback   `json:"recentFeedback"`
}
