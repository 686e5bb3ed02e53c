package app

import (
	httpH "github.com/yungbote/notequiz-backend/internal/http/handlers"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Quiz    *httpH.QuizHandler
	History *httpH.HistoryHandler
	Ingest  *httpH.IngestHandler
	Notes   *httpH.NotesHandler
}

func wireHandlers(log *logger.Logger, services Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(db),
		Quiz:    httpH.NewQuizHandler(log, services.QuizGeneration, services.QuizScoring),
		History: httpH.NewHistoryHandler(log, services.History),
		Ingest:  httpH.NewIngestHandler(log, services.Ingestion),
		Notes:   httpH.NewNotesHandler(log, services.Notes),
	}
}
