package worker

import (
	"context"

	workerRepo "urbanset/database/repository/worker"
	"urbanset/models"
	"urbanset/services/storage"
)

// DirectoryService is the worker directory: lookup, registration and
// self-service edits of worker profiles.
type DirectoryService interface {
	FindByOwner(ctx context.Context, identityID string) (*models.Worker, error)
	FindByID(ctx context.Context, workerID string) (*models.Worker, error)
	FindByService(ctx context.Context, category string) ([]models.Worker, error)
	Register(ctx context.Context, p models.Principal, in RegistrationInput, files RegistrationFiles) (*models.Worker, bool, error)
	UpdateProfile(ctx context.Context, p models.Principal, in ProfileUpdate, avatar *storage.Upload) (*models.Worker, error)
	GetServices(ctx context.Context, identityID string) (*models.WorkerServices, error)
	UpdateSkillsAndPrice(ctx context.Context, identityID string, skills []string, price float64) (*models.Worker, error)
}

// RoleWriter flips an identity's role. Implementations must also drop any
// cached role for the identity.
type RoleWriter interface {
	SetRole(ctx context.Context, identityID, role string) error
}

// DefaultDirectoryService is the production implementation.
type DefaultDirectoryService struct {
	Repo    workerRepo.WorkerRepository
	Roles   RoleWriter
	Storage storage.FileStore
	Folder  string
}

func NewDefaultDirectoryService(repo workerRepo.WorkerRepository, roles RoleWriter, store storage.FileStore, folder string) *DefaultDirectoryService {
	return &DefaultDirectoryService{Repo: repo, Roles: roles, Storage: store, Folder: folder}
}

// RegistrationInput holds the profile fields submitted on registration.
type RegistrationInput struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        string   `json:"phone" validate:"max=20"`
	Skills       []string `json:"skills" validate:"min=1,max=20"`
	Experience   int      `json:"experience" validate:"gte=0,lte=80"`
	Price        float64  `json:"price" validate:"gt=0"`
	Bio          string   `json:"bio" validate:"max=2000"`
	City         string   `json:"city" validate:"required,max=100"`
	State        string   `json:"state" validate:"max=100"`
	Pincode      string   `json:"pincode" validate:"max=12"`
	Address      string   `json:"address" validate:"max=500"`
	Availability []string `json:"availability"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// RegistrationFiles are the optional uploads sent with a registration.
type RegistrationFiles struct {
	Avatar      *storage.Upload
	IDProof     *storage.Upload
	Certificate *storage.Upload
}

// ProfileUpdate carries optional profile edits; nil means unchanged.
type ProfileUpdate struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Phone        *string  `json:"phone" validate:"omitempty,max=20"`
	Bio          *string  `json:"bio" validate:"omitempty,max=2000"`
	City         *string  `json:"city" validate:"omitempty,min=1,max=100"`
	State        *string  `json:"state" validate:"omitempty,max=100"`
	Pincode      *string  `json:"pincode" validate:"omitempty,max=12"`
	Address      *string  `json:"address" validate:"omitempty,max=500"`
	Experience   *int     `json:"experience" validate:"omitempty,gte=0,lte=80"`
	Availability []string `json:"availability"`
}
