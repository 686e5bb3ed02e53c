package app

import (
	"strings"
	"testing"
	"time"

	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/notequiz")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)
	for _, name := range []string{"PORT", "STORAGE_BUCKET", "OPENAI_MODEL", "MAX_UPLOAD_BYTES", "OBJECT_STORAGE_PROVIDER", "RECONCILE_INTERVAL_SECONDS", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(name, "")
	}

	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" || cfg.Storage.Bucket != "study-materials" || cfg.Storage.Provider != StorageProviderSupabase {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" || cfg.OpenAI.MaxTokens != 3000 || cfg.OpenAI.Timeout != 0 {
		t.Fatalf("unexpected model defaults: %+v", cfg.OpenAI)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Fatalf("max upload: %d", cfg.MaxUploadBytes)
	}
	if cfg.ReconcileEvery != 5*time.Minute || cfg.ReconcileGrace != 10*time.Minute {
		t.Fatalf("reconciler defaults: %v %v", cfg.ReconcileEvery, cfg.ReconcileGrace)
	}
	if cfg.AllowedOrigins != nil {
		t.Fatalf("origins should default to nil, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigReportsAllMissing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("OBJECT_STORAGE_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("SUPABASE_URL", "")

	_, err := LoadConfig(logger.Nop())
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, name := range []string{"OPENAI_API_KEY", "SUPABASE_URL"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not name %s", err, name)
		}
	}
}

func TestLoadConfigGCSProvider(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "")
	t.Setenv("OBJECT_STORAGE_PROVIDER", "GCS")
	t.Setenv("GCS_BUCKET_NAME", "")

	if _, err := LoadConfig(logger.Nop()); err == nil || !strings.Contains(err.Error(), "GCS_BUCKET_NAME") {
		t.Fatalf("expected missing GCS_BUCKET_NAME, got %v", err)
	}

	t.Setenv("GCS_BUCKET_NAME", "notes-bucket")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", `{"type":"service_account"}`)
	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Provider != StorageProviderGCS || cfg.Storage.GCSBucket != "notes-bucket" || cfg.Storage.GCSCredentials == "" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("AUTH_TOKEN_TTL_SECONDS", "120")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key=abc")

	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9090" || len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.TokenTTL != 2*time.Minute {
		t.Fatalf("ttl: %v", cfg.TokenTTL)
	}
	if cfg.Otel.Headers["x-api-key"] != "abc" {
		t.Fatalf("headers: %v", cfg.Otel.Headers)
	}
}
