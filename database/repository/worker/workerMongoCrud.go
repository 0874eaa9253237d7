package workerRepo

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

// Create inserts a new worker document.
func (r *MongoWorkerRepo) Create(ctx context.Context, w *models.Worker) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, w); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

// Update modifies the mutable fields of an existing worker document.
func (r *MongoWorkerRepo) Update(ctx context.Context, w *models.Worker) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	w.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":         w.Name,
		"email":        w.Email,
		"phone":        w.Phone,
		"skills":       w.Skills,
		"skillKeys":    w.SkillKeys,
		"experience":   w.Experience,
		"price":        w.Price,
		"bio":          w.Bio,
		"avatar":       w.Avatar,
		"idProof":      w.IDProof,
		"certificate":  w.Certificate,
		"location":     w.Location,
		"address":      w.Address,
		"availability": w.Availability,
		"updatedAt":    w.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": w.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update worker with id %s: %w", w.ID, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateServices replaces skills and price atomically for the owner's profile.
func (r *MongoWorkerRepo) UpdateServices(ctx context.Context, ownerID string, skills, keys []string, price float64) (*models.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"skills":    skills,
		"skillKeys": keys,
		"price":     price,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var w models.Worker
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"ownerId": ownerID}, update, opts).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update services for owner %s: %w", ownerID, err)
	}
	return &w, nil
}

func (r *MongoWorkerRepo) UpdateRating(ctx context.Context, id string, rating float64, count int) error {
	return r.setFields(ctx, id, bson.M{"rating": rating, "reviewCount": count})
}

func (r *MongoWorkerRepo) SetRegistrationState(ctx context.Context, id string, state models.RegistrationState) error {
	return r.setFields(ctx, id, bson.M{"registrationState": state})
}

func (r *MongoWorkerRepo) setFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update worker with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
