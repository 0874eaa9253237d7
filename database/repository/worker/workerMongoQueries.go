package workerRepo

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

// MongoWorkerRepo implements WorkerRepository using MongoDB.
type MongoWorkerRepo struct {
	coll *mongo.Collection
}

// NewMongoWorkerRepo creates a new instance of WorkerRepository using MongoDB.
func NewMongoWorkerRepo() WorkerRepository {
	repo := &MongoWorkerRepo{coll: database.GetDatabase().Collection("workers")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create worker indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoWorkerRepo) findOne(ctx context.Context, filter bson.M) (*models.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var w models.Worker
	if err := r.coll.FindOne(ctx, filter).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch worker: %w", err)
	}
	return &w, nil
}

func (r *MongoWorkerRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer cursor.Close(ctx)

	workers := []models.Worker{}
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("failed to decode workers: %w", err)
	}
	return workers, nil
}

// GetByID retrieves a worker by its unique ID.
func (r *MongoWorkerRepo) GetByID(ctx context.Context, id string) (*models.Worker, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetByOwner retrieves the worker profile owned by the given identity.
func (r *MongoWorkerRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Worker, error) {
	return r.findOne(ctx, bson.M{"ownerId": ownerID})
}

func (r *MongoWorkerRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Worker, error) {
	if len(ids) == 0 {
		return []models.Worker{}, nil
	}
	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}})
}

// ListByServiceKey returns every completed profile offering the category.
// Ordering is left to the matching service.
func (r *MongoWorkerRepo) ListByServiceKey(ctx context.Context, key string) ([]models.Worker, error) {
	filter := bson.M{
		"skillKeys":         key,
		"registrationState": models.RegistrationComplete,
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
}
