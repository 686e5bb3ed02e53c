package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/notequiz-backend/internal/observability"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	QuizGeneration services.QuizGenerationService
	QuizScoring    services.QuizScoringService
	History        services.HistoryService
	Ingestion      services.IngestionService
	Notes          services.NotesService
	Reconciler     *services.BlobReconciler
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	auth, err := services.NewAuthService(log, services.AuthConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		TokenTTL: cfg.TokenTTL,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}

	return Services{
		Auth:           auth,
		QuizGeneration: services.NewQuizGenerationService(log, repos.QuizAttempt, repos.UserFile, clients.LLM, metrics),
		QuizScoring:    services.NewQuizScoringService(log, repos.QuizAttempt, metrics),
		History:        services.NewHistoryService(log, repos.QuizAttempt),
		Ingestion:      services.NewIngestionService(db, log, repos.UserFile, repos.PendingBlob, clients.Store, metrics),
		Notes:          services.NewNotesService(log),
		Reconciler: services.NewBlobReconciler(log, repos.PendingBlob, clients.Store, metrics, services.ReconcilerConfig{
			Interval: cfg.ReconcileEvery,
			Grace:    cfg.ReconcileGrace,
		}),
	}, nil
}
