package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/notequiz-backend/internal/data/repos/materials"
	"github.com/yungbote/notequiz-backend/internal/data/repos/quizzes"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

type QuizAttemptRepo = quizzes.QuizAttemptRepo

type UserFileRepo = materials.UserFileRepo
type PendingBlobRepo = materials.PendingBlobRepo

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	return quizzes.NewQuizAttemptRepo(db, baseLog)
}

func NewUserFileRepo(db *gorm.DB, baseLog *logger.Logger) UserFileRepo {
	return materials.NewUserFileRepo(db, baseLog)
}

func NewPendingBlobRepo(db *gorm.DB, baseLog *logger.Logger) PendingBlobRepo {
	return materials.NewPendingBlobRepo(db, baseLog)
}
