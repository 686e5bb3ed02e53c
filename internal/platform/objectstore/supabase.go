package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	storage_go "github.com/supabase-community/storage-go"

	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

type SupabaseConfig struct {
	URL        string
	ServiceKey string
	Bucket     string
}

type supabaseStore struct {
	log    *logger.Logger
	client *storage_go.Client
	bucket string
}

func NewSupabaseStore(log *logger.Logger, cfg SupabaseConfig) (Store, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		return nil, fmt.Errorf("missing SUPABASE_URL")
	}
	if strings.TrimSpace(cfg.ServiceKey) == "" {
		return nil, fmt.Errorf("missing SUPABASE_SERVICE_ROLE_KEY")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		bucket = DefaultBucket
	}

	client := storage_go.NewClient(base+"/storage/v1", cfg.ServiceKey, map[string]string{
		"apikey": cfg.ServiceKey,
	})

	storeLog := log.With("service", "SupabaseStore")
	storeLog.Info("Object storage initialized", "provider", ProviderSupabase, "bucket", bucket)
	return &supabaseStore{log: storeLog, client: client, bucket: bucket}, nil
}

func (s *supabaseStore) Upload(ctx context.Context, key string, contentType string, body io.Reader) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	upsert := false
	opts := storage_go.FileOptions{Upsert: &upsert}
	if contentType != "" {
		opts.ContentType = &contentType
	}
	if _, err := s.client.UploadFile(s.bucket, key, body, opts); err != nil {
		return fmt.Errorf("supabase upload %q: %w", key, err)
	}
	return nil
}

func (s *supabaseStore) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	// Removing a missing path is not an error for the storage API.
	if _, err := s.client.RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("supabase remove %q: %w", key, err)
	}
	return nil
}

func (s *supabaseStore) Download(ctx context.Context, key string) ([]byte, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.client.DownloadFile(s.bucket, key)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("supabase download %q: %w", key, err)
	}
	return data, nil
}

func (s *supabaseStore) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	return s.client.GetPublicUrl(s.bucket, key).SignedURL
}
