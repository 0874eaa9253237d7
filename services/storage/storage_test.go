package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"urbanset/config"
)

func TestObjectKey(t *testing.T) {
	now := time.Unix(0, 42)
	cases := map[string]string{
		"avatar.png":          "profiles/42_avatar.png",
		"../../etc/passwd":    "profiles/42_passwd",
		`C:\Users\me\id.jpeg`: "profiles/42_id.jpeg",
		"":                    "profiles/42_file",
	}
	for in, want := range cases {
		if got := objectKey("profiles", in, now); got != want {
			t.Errorf("objectKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewFileStoreRejectsUnknownDriver(t *testing.T) {
	_, err := NewFileStore(context.Background(), config.Config{StorageDriver: "ftp"})
	if err == nil || !strings.Contains(err.Error(), "ftp") {
		t.Fatalf("want unknown driver error, got %v", err)
	}
}

func TestNewFileStoreRequiresCloudinaryCredentials(t *testing.T) {
	if _, err := NewFileStore(context.Background(), config.Config{StorageDriver: "cloudinary"}); err == nil {
		t.Fatal("want error for missing credentials")
	}
}
