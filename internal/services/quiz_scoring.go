package services

import (
	"context"
	"strings"

	types "github.com/yungbote/notequiz-backend/internal/domain"
	"github.com/yungbote/notequiz-backend/internal/data/repos"
	"github.com/yungbote/notequiz-backend/internal/observability"
	"github.com/yungbote/notequiz-backend/internal/platform/apierr"
	"github.com/yungbote/notequiz-backend/internal/platform/dbctx"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

type SubmitAnswersInput struct {
	QuizID int64
	UserID string
	// Answers maps question ordinal to the selected option index.
	Answers map[int]int
}

type QuestionResult struct {
	ID            int  `json:"id"`
	Selected      *int `json:"selected"`
	CorrectAnswer int  `json:"correctAnswer"`
	Correct       bool `json:"correct"`
}

type ScoredQuiz struct {
	Quiz           *types.QuizAttempt `json:"quiz"`
	Score          int                `json:"score"`
	TotalQuestions int                `json:"totalQuestions"`
	Results        []QuestionResult   `json:"results"`
}

type QuizScoringService interface {
	Submit(ctx context.Context, in SubmitAnswersInput) (*ScoredQuiz, error)
}

type quizScoringService struct {
	log      *logger.Logger
	attempts repos.QuizAttemptRepo
	metrics  *observability.Metrics
}

func NewQuizScoringService(log *logger.Logger, attempts repos.QuizAttemptRepo, metrics *observability.Metrics) QuizScoringService {
	serviceLog := log.With("service", "QuizScoringService")
	return &quizScoringService{log: serviceLog, attempts: attempts, metrics: metrics}
}

func (s *quizScoringService) Submit(ctx context.Context, in SubmitAnswersInput) (*ScoredQuiz, error) {
	if in.QuizID <= 0 {
		return nil, apierr.BadRequest("missing_quiz_id", "Quiz ID is required")
	}
	if strings.TrimSpace(in.UserID) == "" {
		return nil, apierr.BadRequest("missing_user", "User is required")
	}
	dbc := dbctx.Background(ctx)

	attempt, err := s.attempts.GetByIDForUser(dbc, in.QuizID, in.UserID)
	if err != nil {
		return nil, apierr.Upstream("quiz_load_failed", "Failed to load quiz", err)
	}
	if attempt == nil {
		return nil, apierr.NotFound("quiz_not_found", "Quiz not found")
	}
	questions, err := attempt.QuestionList()
	if err != nil {
		return nil, apierr.Upstream("quiz_load_failed", "Failed to load quiz", err)
	}

	score, results := ScoreAnswers(questions, in.Answers)

	n, err := s.attempts.UpdateScoreForUser(dbc, in.QuizID, in.UserID, score)
	if err != nil {
		s.log.Error("Failed to update quiz score", "quiz_id", in.QuizID, "user_id", in.UserID, "error", err)
		return nil, apierr.Upstream("quiz_update_failed", "Failed to update score", err)
	}
	if n == 0 {
		// deleted between load and update
		return nil, apierr.NotFound("quiz_not_found", "Quiz not found")
	}
	attempt.Score = score

	s.metrics.IncQuizScored()
	s.log.Info("Quiz scored", "quiz_id", in.QuizID, "user_id", in.UserID, "score", score, "total", len(questions))
	return &ScoredQuiz{
		Quiz:           attempt,
		Score:          score,
		TotalQuestions: attempt.TotalQuestions,
		Results:        results,
	}, nil
}

// ScoreAnswers counts answers matching the stored correct index. Missing or
// out-of-range answers are wrong; answers for unknown ordinals are ignored.
func ScoreAnswers(questions []types.Question, answers map[int]int) (int, []QuestionResult) {
	score := 0
	results := make([]QuestionResult, 0, len(questions))
	for _, q := range questions {
		r := QuestionResult{ID: q.ID, CorrectAnswer: q.CorrectAnswer}
		if sel, ok := answers[q.ID]; ok {
			sel := sel
			r.Selected = &sel
			r.Correct = sel >= 0 && sel < len(q.Options) && sel == q.CorrectAnswer
		}
		if r.Correct {
			score++
		}
		results = append(results, r)
	}
	return score, results
}
