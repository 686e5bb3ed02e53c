package domain

import (
	"github.com/yungbote/notequiz-backend/internal/domain/files"
	"github.com/yungbote/notequiz-backend/internal/domain/quiz"
)

const (
	QuestionsPerQuiz   = quiz.QuestionsPerQuiz
	OptionsPerQuestion = quiz.OptionsPerQuestion
)

type Question = quiz.Question
type QuizAttempt = quiz.QuizAttempt

type UserFile = files.UserFile
type PendingBlob = files.PendingBlob

var EncodeQuestions = quiz.EncodeQuestions

// Models lists every persisted type, in migration order.
func Models() []interface{} {
	return []interface{}{
		&QuizAttempt{},
		&UserFile{},
		&PendingBlob{},
	}
}
