package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Store holds uploaded study files. Keys are "<owner>/<millis>_<name>".
type Store interface {
	// Upload never overwrites an existing key.
	Upload(ctx context.Context, key string, contentType string, body io.Reader) error
	// Delete succeeds when the object is already gone.
	Delete(ctx context.Context, key string) error
	Download(ctx context.Context, key string) ([]byte, error)
	PublicURL(key string) string
}

var ErrNotFound = errors.New("object not found")

const (
	ProviderSupabase = "supabase"
	ProviderGCS      = "gcs"
)

// DefaultBucket is the bucket study materials live in unless configured.
const DefaultBucket = "study-materials"

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}
	return key, nil
}
