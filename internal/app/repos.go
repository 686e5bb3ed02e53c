package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/notequiz-backend/internal/data/repos"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

type Repos struct {
	QuizAttempt repos.QuizAttemptRepo
	UserFile    repos.UserFileRepo
	PendingBlob repos.PendingBlobRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		QuizAttempt: repos.NewQuizAttemptRepo(db, log),
		UserFile:    repos.NewUserFileRepo(db, log),
		PendingBlob: repos.NewPendingBlobRepo(db, log),
	}
}
