package app

import (
	"context"
	"fmt"

	"github.com/yungbote/notequiz-backend/internal/observability"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/platform/objectstore"
	"github.com/yungbote/notequiz-backend/internal/platform/openai"
)

type Clients struct {
	LLM   openai.Client
	Store objectstore.Store
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")

	llm, err := openai.NewClient(log, cfg.OpenAI, metrics)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	var store objectstore.Store
	switch cfg.Storage.Provider {
	case StorageProviderGCS:
		store, err = objectstore.NewGCSStore(ctx, log, objectstore.GCSConfig{
			Bucket:      cfg.Storage.GCSBucket,
			Credentials: cfg.Storage.GCSCredentials,
		})
	default:
		store, err = objectstore.NewSupabaseStore(log, objectstore.SupabaseConfig{
			URL:        cfg.Storage.SupabaseURL,
			ServiceKey: cfg.Storage.SupabaseServiceKey,
			Bucket:     cfg.Storage.Bucket,
		})
	}
	if err != nil {
		return Clients{}, fmt.Errorf("init object store (%s): %w", cfg.Storage.Provider, err)
	}

	return Clients{LLM: llm, Store: store}, nil
}
