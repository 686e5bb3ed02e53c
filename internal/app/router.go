package app

import (
	apphttp "github.com/yungbote/notequiz-backend/internal/http"
	"github.com/yungbote/notequiz-backend/internal/observability"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *apphttp.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.ServiceName
	}
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    serviceName,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AuthMiddleware: middleware.Auth,
		QuizHandler:    handlers.Quiz,
		HistoryHandler: handlers.History,
		IngestHandler:  handlers.Ingest,
		NotesHandler:   handlers.Notes,
		HealthHandler:  handlers.Health,
	})
}
