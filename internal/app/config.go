package app

import (
	"strings"
	"time"

	"github.com/yungbote/notequiz-backend/internal/data/db"
	"github.com/yungbote/notequiz-backend/internal/observability"
	"github.com/yungbote/notequiz-backend/internal/platform/envutil"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/platform/objectstore"
	"github.com/yungbote/notequiz-backend/internal/platform/openai"
)

const (
	StorageProviderSupabase = "supabase"
	StorageProviderGCS      = "gcs"
)

type StorageConfig struct {
	Provider           string
	Bucket             string
	SupabaseURL        string
	SupabaseServiceKey string
	GCSBucket          string
	GCSCredentials     string
}

type Config struct {
	Port           string
	ServiceName    string
	DB             db.Config
	OpenAI         openai.Config
	Storage        StorageConfig
	JWTSecret      string
	JWTIssuer      string
	TokenTTL       time.Duration
	MaxUploadBytes int64
	AllowedOrigins []string
	ReconcileEvery time.Duration
	ReconcileGrace time.Duration
	Otel           observability.OtelConfig
}

// LoadConfig reads the environment. Every missing required variable is
// reported in a single error.
func LoadConfig(log *logger.Logger) (Config, error) {
	provider := strings.ToLower(envutil.String("OBJECT_STORAGE_PROVIDER", StorageProviderSupabase))
	required := []string{"DATABASE_URL", "OPENAI_API_KEY", "AUTH_JWT_SECRET"}
	switch provider {
	case StorageProviderGCS:
		required = append(required, "GCS_BUCKET_NAME")
	default:
		provider = StorageProviderSupabase
		required = append(required, "SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY")
	}
	if err := envutil.Require(required...); err != nil {
		return Config{}, err
	}

	oa, err := openai.ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}

	serviceName := envutil.String("OTEL_SERVICE_NAME", "notequiz-backend")
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		ServiceName: serviceName,
		DB: db.Config{
			Driver:       envutil.String("DB_DRIVER", db.DriverPostgres),
			DSN:          envutil.String("DATABASE_URL", ""),
			MaxOpenConns: envutil.Int("DB_MAX_OPEN_CONNS", 20),
		},
		OpenAI: oa,
		Storage: StorageConfig{
			Provider:           provider,
			Bucket:             envutil.String("STORAGE_BUCKET", "study-materials"),
			SupabaseURL:        envutil.String("SUPABASE_URL", ""),
			SupabaseServiceKey: envutil.String("SUPABASE_SERVICE_ROLE_KEY", ""),
			GCSBucket:          envutil.String("GCS_BUCKET_NAME", ""),
		},
		JWTSecret:      envutil.String("AUTH_JWT_SECRET", ""),
		JWTIssuer:      envutil.String("AUTH_JWT_ISSUER", ""),
		TokenTTL:       envutil.Seconds("AUTH_TOKEN_TTL_SECONDS", time.Hour),
		MaxUploadBytes: envutil.Int64("MAX_UPLOAD_BYTES", 32<<20),
		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil),
		ReconcileEvery: envutil.Seconds("RECONCILE_INTERVAL_SECONDS", 5*time.Minute),
		ReconcileGrace: envutil.Seconds("RECONCILE_GRACE_SECONDS", 10*time.Minute),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: serviceName,
			Environment: envutil.String("APP_ENV", "development"),
			Version:     envutil.String("APP_VERSION", ""),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 1),
		},
	}
	if provider == StorageProviderGCS {
		cfg.Storage.GCSCredentials = objectstore.CredentialsFromEnv()
	}

	log.Info("Configuration loaded",
		"port", cfg.Port,
		"db_driver", cfg.DB.Driver,
		"storage_provider", provider,
		"storage_bucket", cfg.Storage.Bucket,
		"model", cfg.OpenAI.Model,
		"max_upload_bytes", cfg.MaxUploadBytes,
		"otel_enabled", cfg.Otel.Enabled,
	)
	return cfg, nil
}
