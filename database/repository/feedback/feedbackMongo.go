package feedbackRepo

import (
	"context"
	"fmt"
	"time"

	"urbanset/database"
	"urbanset/models"
	"urbanset/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoFeedbackRepo implements FeedbackRepository using MongoDB.
type MongoFeedbackRepo struct {
	coll *mongo.Collection
}

func NewMongoFeedbackRepo() FeedbackRepository {
	repo := &MongoFeedbackRepo{coll: database.GetDatabase().Collection("feedback")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create feedback indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoFeedbackRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "workerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoFeedbackRepo) Create(ctx context.Context, f *models.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *MongoFeedbackRepo) ListByWorker(ctx context.Context, workerID string, limit int64) ([]models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"workerId": workerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.Feedback{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %w", err)
	}
	return entries, nil
}

// RatingSummary runs an $avg/$sum aggregation over the worker's feedback.
func (r *MongoFeedbackRepo) RatingSummary(ctx context.Context, workerID string) (models.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"workerId": workerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to aggregate feedback for worker %s: %w", workerID, err)
	}
	defer cursor.Close(ctx)

	var rows []models.RatingSummary
	if err := cursor.All(ctx, &rows); err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to decode rating summary: %w", err)
	}
	if len(rows) == 0 {
		return models.RatingSummary{}, nil
	}
	return rows[0], nil
}
