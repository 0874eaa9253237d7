package catalogRepo

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

// CatalogRepository defines methods for service category data access.
type CatalogRepository interface {
	// List returns every category sorted by name.
	List(ctx context.Context) ([]models.Service, error)
	GetBySlug(ctx context.Context, slug string) (*models.Service, error)
	// Upsert inserts or replaces the category with the same slug.
	Upsert(ctx context.Context, svc *models.Service) error
}

type MongoCatalogRepo struct {
	coll *mongo.Collection
}

func NewMongoCatalogRepo() CatalogRepository {
	repo := &MongoCatalogRepo{coll: database.GetDatabase().Collection("services")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		utils.GetLogger().Error("failed to create catalog indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoCatalogRepo) List(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *MongoCatalogRepo) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", slug, err)
	}
	return &svc, nil
}

func (r *MongoCatalogRepo) Upsert(ctx context.Context, svc *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"name":        svc.Name,
			"description": svc.Description,
			"imageUrl":    svc.ImageURL,
		},
		"$setOnInsert": bson.M{"id": svc.ID, "slug": svc.Slug},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"slug": svc.Slug}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert service %s: %w", svc.Slug, err)
	}
	return nil
}
