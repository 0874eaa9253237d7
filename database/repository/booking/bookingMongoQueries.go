package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"urbanset/database"
	"urbanset/database/repository"
	"urbanset/models"
	"urbanset/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.GetDatabase().Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

// newestFirst orders listings by date, then creation time, then id.
var newestFirst = bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}, {Key: "id", Value: 1}}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"customerId": customerID})
}

func (r *MongoBookingRepo) ListByWorker(ctx context.Context, workerID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"workerId": workerID})
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// StatsByWorker groups the worker's bookings by status, summing prices per group.
func (r *MongoBookingRepo) StatsByWorker(ctx context.Context, workerID string) ([]models.StatusCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"workerId": workerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$status",
			"count":  bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$price"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings for worker %s: %w", workerID, err)
	}
	defer cursor.Close(ctx)

	var rows []models.StatusCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode booking stats: %w", err)
	}
	return rows, nil
}
