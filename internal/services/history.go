package services

import (
	"context"
	"strings"

	types "github.com/yungbote/notequiz-backend/internal/domain"
	"github.com/yungbote/notequiz-backend/internal/data/repos"
	"github.com/yungbote/notequiz-backend/internal/platform/apierr"
	"github.com/yungbote/notequiz-backend/internal/platform/dbctx"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

type HistoryStats struct {
	TotalQuizzes   int `json:"totalQuizzes"`
	TotalScore     int `json:"totalScore"`
	TotalQuestions int `json:"totalQuestions"`
	AverageScore   int `json:"averageScore"`
}

type History struct {
	Quizzes []*types.QuizAttempt `json:"quizzes"`
	Stats   HistoryStats         `json:"stats"`
}

type HistoryService interface {
	History(ctx context.Context, userID string) (*History, error)
	Delete(ctx context.Context, quizID int64, userID string) (int64, error)
}

type historyService struct {
	log      *logger.Logger
	attempts repos.QuizAttemptRepo
}

func NewHistoryService(log *logger.Logger, attempts repos.QuizAttemptRepo) HistoryService {
	serviceLog := log.With("service", "HistoryService")
	return &historyService{log: serviceLog, attempts: attempts}
}

func (s *historyService) History(ctx context.Context, userID string) (*History, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apierr.BadRequest("missing_user", "User ID is required")
	}
	rows, err := s.attempts.ListByUserID(dbctx.Background(ctx), userID)
	if err != nil {
		s.log.Error("Failed to list quiz history", "user_id", userID, "error", err)
		return nil, apierr.Upstream("history_load_failed", "Failed to fetch history", err)
	}
	if rows == nil {
		rows = []*types.QuizAttempt{}
	}
	return &History{Quizzes: rows, Stats: ComputeStats(rows)}, nil
}

// Delete removes an attempt owned by userID and reports how many rows went.
// Zero is not an error.
func (s *historyService) Delete(ctx context.Context, quizID int64, userID string) (int64, error) {
	if quizID <= 0 {
		return 0, apierr.BadRequest("missing_quiz_id", "Quiz ID is required")
	}
	if strings.TrimSpace(userID) == "" {
		return 0, apierr.BadRequest("missing_user", "User ID is required")
	}
	n, err := s.attempts.DeleteForUser(dbctx.Background(ctx), quizID, userID)
	if err != nil {
		s.log.Error("Failed to delete quiz", "quiz_id", quizID, "user_id", userID, "error", err)
		return 0, apierr.Upstream("history_delete_failed", "Failed to delete quiz", err)
	}
	s.log.Info("Quiz delete", "quiz_id", quizID, "user_id", userID, "deleted", n)
	return n, nil
}

// ComputeStats aggregates attempts. AverageScore is the percentage of correct
// answers rounded half up.
func ComputeStats(rows []*types.QuizAttempt) HistoryStats {
	var st HistoryStats
	for _, r := range rows {
		if r == nil {
			continue
		}
		st.TotalQuizzes++
		st.TotalScore += r.Score
		st.TotalQuestions += r.TotalQuestions
	}
	if st.TotalQuestions > 0 {
		st.AverageScore = (200*st.TotalScore + st.TotalQuestions) / (2 * st.TotalQuestions)
	}
	return st
}
