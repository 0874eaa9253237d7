package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"urbanset/config"
)

// Upload is one file received from a client.
type Upload struct {
	Reader      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// FileStore persists a payload and returns a durable URL for it. Callers
// store the URL verbatim.
type FileStore interface {
	Upload(ctx context.Context, folder string, file Upload) (string, error)
}

// NewFileStore builds the backend named by STORAGE_DRIVER.
func NewFileStore(ctx context.Context, cfg config.Config) (FileStore, error) {
	switch cfg.StorageDriver {
	case "", "cloudinary":
		return NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "minio":
		return NewMinioStore(ctx, MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			PublicURL: cfg.MinioPublicURL,
			UseSSL:    cfg.MinioUseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// objectKey builds a collision-free key under folder, keeping the extension.
func objectKey(folder, filename string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return path.Join(folder, fmt.Sprintf("%d_%s", now.UnixNano(), base))
}
