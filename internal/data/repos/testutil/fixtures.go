package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/notequiz-backend/internal/domain"
)

// Questions builds n well-formed questions whose correct answer cycles 0..3.
func Questions(n int) []types.Question {
	out := make([]types.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.Question{
			ID:            i + 1,
			Question:      fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: i % 4,
			Explanation:   fmt.Sprintf("Because %d.", i+1),
		})
	}
	return out
}

func SeedQuizAttempt(tb testing.TB, ctx context.Context, tx *gorm.DB, userID string, score int, createdAt time.Time) *types.QuizAttempt {
	tb.Helper()
	qs, err := types.EncodeQuestions(Questions(types.QuestionsPerQuiz))
	if err != nil {
		tb.Fatalf("encode questions: %v", err)
	}
	a := &types.QuizAttempt{
		UserID:         userID,
		Topic:          "Cell biology",
		Questions:      qs,
		Score:          score,
		TotalQuestions: types.QuestionsPerQuiz,
		CreatedAt:      createdAt,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed quiz attempt: %v", err)
	}
	return a
}

func SeedUserFile(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, name string, uploadedAt time.Time) *types.UserFile {
	tb.Helper()
	key := fmt.Sprintf("%s/%d_%s", userID, uploadedAt.UnixNano(), name)
	f := &types.UserFile{
		UserID:      userID,
		FileName:    name,
		FileURL:     "https://blob.example/" + key,
		StorageKey:  key,
		ContentType: "text/plain",
		UploadedAt:  uploadedAt,
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed user file: %v", err)
	}
	return f
}
