package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/notequiz-backend/internal/http/handlers"
	httpMW "github.com/yungbote/notequiz-backend/internal/http/middleware"
	"github.com/yungbote/notequiz-backend/internal/observability"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string
	MaxUploadBytes int64

	AuthMiddleware *httpMW.AuthMiddleware

	QuizHandler    *httpH.QuizHandler
	HistoryHandler *httpH.HistoryHandler
	IngestHandler  *httpH.IngestHandler
	NotesHandler   *httpH.NotesHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.LimitRequestBody(cfg.MaxUploadBytes))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.RequireAuth())
	}
	{
		// Quiz
		if cfg.QuizHandler != nil {
			api.POST("/generate", cfg.QuizHandler.Generate)
			api.PUT("/generate", cfg.QuizHandler.Submit)
		}

		// History
		if cfg.HistoryHandler != nil {
			api.GET("/history", cfg.HistoryHandler.List)
			api.DELETE("/history", cfg.HistoryHandler.Delete)
		}

		// Study materials
		if cfg.IngestHandler != nil {
			api.POST("/ingest", cfg.IngestHandler.Upload)
			api.GET("/ingest", cfg.IngestHandler.List)
			api.POST("/ingest/:id/extract", cfg.IngestHandler.Extract)
		}
		if cfg.NotesHandler != nil {
			api.POST("/upload-notes", cfg.NotesHandler.Upload)
		}
	}

	return r
}
