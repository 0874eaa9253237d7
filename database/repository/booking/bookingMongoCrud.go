package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"urbanset/database/repository"
	"urbanset/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// CompareAndSetStatus applies the transition only while the stored status
// still equals from, so concurrent writers cannot overwrite each other.
func (r *MongoBookingRepo) CompareAndSetStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": at}}
	return r.guardedUpdate(ctx, id, filter, update)
}

// UpdateDetails edits address and notes while the booking is still pending.
func (r *MongoBookingRepo) UpdateDetails(ctx context.Context, id, customerID, address, notes string) (*models.Booking, error) {
	filter := bson.M{"id": id, "customerId": customerID, "status": models.StatusPending}
	update := bson.M{"$set": bson.M{
		"address":   address,
		"notes":     notes,
		"updatedAt": time.Now().UTC(),
	}}
	return r.guardedUpdate(ctx, id, filter, update)
}

// guardedUpdate runs a conditional FindOneAndUpdate. When the guard does not
// match it tells a missing booking apart from a stale one.
func (r *MongoBookingRepo) guardedUpdate(ctx context.Context, id string, filter, update bson.M) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&b)
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to check booking with id %s: %w", id, err)
	}
	if n == 0 {
		return nil, repository.ErrNotFound
	}
	return nil, repository.ErrStaleWrite
}
