package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	types "github.com/yungbote/notequiz-backend/internal/domain"
	"github.com/yungbote/notequiz-backend/internal/data/repos"
	"github.com/yungbote/notequiz-backend/internal/data/repos/testutil"
	"github.com/yungbote/notequiz-backend/internal/platform/apierr"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

func allCorrect() map[int]int {
	answers := map[int]int{}
	for _, q := range testutil.Questions(types.QuestionsPerQuiz) {
		answers[q.ID] = q.CorrectAnswer
	}
	return answers
}

func TestSubmitRecomputesScore(t *testing.T) {
	log := logger.Nop()
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewQuizScoringService(log, repos.NewQuizAttemptRepo(db, log), nil)
	attempt := testutil.SeedQuizAttempt(t, ctx, db, "u1", 0, time.Now())

	answers := allCorrect()
	answers[1] = (answers[1] + 1) % 4 // wrong
	answers[2] = 9                    // out of range
	delete(answers, 3)                // unanswered
	answers[42] = 0                   // unknown ordinal

	out, err := svc.Submit(ctx, SubmitAnswersInput{QuizID: attempt.ID, UserID: "u1", Answers: answers})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Score != 7 || out.TotalQuestions != 10 || out.Quiz.Score != 7 {
		t.Fatalf("score: want=7 got=%d (quiz=%d total=%d)", out.Score, out.Quiz.Score, out.TotalQuestions)
	}
	if len(out.Results) != 10 {
		t.Fatalf("results: want=10 got=%d", len(out.Results))
	}
	if out.Results[2].Selected != nil || out.Results[2].Correct {
		t.Fatalf("unanswered question should have no selection: %+v", out.Results[2])
	}

	var stored types.QuizAttempt
	if err := db.First(&stored, attempt.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Score != 7 {
		t.Fatalf("stored score: want=7 got=%d", stored.Score)
	}
}

func TestSubmitLastWriteWins(t *testing.T) {
	log := logger.Nop()
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewQuizScoringService(log, repos.NewQuizAttemptRepo(db, log), nil)
	attempt := testutil.SeedQuizAttempt(t, ctx, db, "u1", 0, time.Now())

	if _, err := svc.Submit(ctx, SubmitAnswersInput{QuizID: attempt.ID, UserID: "u1", Answers: allCorrect()}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(ctx, SubmitAnswersInput{QuizID: attempt.ID, UserID: "u1", Answers: map[int]int{}}); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	var stored types.QuizAttempt
	if err := db.First(&stored, attempt.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Score != 0 {
		t.Fatalf("last write should win: got=%d", stored.Score)
	}
}

func TestSubmitOtherUsersQuiz(t *testing.T) {
	log := logger.Nop()
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewQuizScoringService(log, repos.NewQuizAttemptRepo(db, log), nil)
	attempt := testutil.SeedQuizAttempt(t, ctx, db, "owner", 3, time.Now())

	_, err := svc.Submit(ctx, SubmitAnswersInput{QuizID: attempt.ID, UserID: "intruder", Answers: allCorrect()})
	if ae := apierr.From(err); ae == nil || ae.Status != http.StatusNotFound || ae.Code != "quiz_not_found" {
		t.Fatalf("expected 404 quiz_not_found, got %v", err)
	}
	var stored types.QuizAttempt
	if err := db.First(&stored, attempt.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Score != 3 {
		t.Fatalf("score changed by non-owner: %d", stored.Score)
	}
}

func TestScoreAnswers(t *testing.T) {
	qs := testutil.Questions(4)
	score, results := ScoreAnswers(qs, map[int]int{1: 0, 2: 1, 3: 0, 4: -1})
	if score != 2 {
		t.Fatalf("score: want=2 got=%d", score)
	}
	if !results[0].Correct || !results[1].Correct || results[2].Correct || results[3].Correct {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestHistoryStatsAndOrder(t *testing.T) {
	log := logger.Nop()
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewHistoryService(log, repos.NewQuizAttemptRepo(db, log))

	base := time.Now().Add(-time.Hour)
	older := testutil.SeedQuizAttempt(t, ctx, db, "u1", 7, base)
	newer := testutil.SeedQuizAttempt(t, ctx, db, "u1", 9, base.Add(time.Minute))
	testutil.SeedQuizAttempt(t, ctx, db, "u2", 1, base)

	h, err := svc.History(ctx, "u1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(h.Quizzes) != 2 || h.Quizzes[0].ID != newer.ID || h.Quizzes[1].ID != older.ID {
		t.Fatalf("unexpected order: %+v", h.Quizzes)
	}
	want := HistoryStats{TotalQuizzes: 2, TotalScore: 16, TotalQuestions: 20, AverageScore: 80}
	if h.Stats != want {
		t.Fatalf("stats: want=%+v got=%+v", want, h.Stats)
	}
}

func TestHistoryEmpty(t *testing.T) {
	log := logger.Nop()
	db := testutil.DB(t)
	svc := NewHistoryService(log, repos.NewQuizAttemptRepo(db, log))
	h, err := svc.History(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if h.Quizzes == nil || len(h.Quizzes) != 0 || h.Stats != (HistoryStats{}) {
		t.Fatalf("unexpected empty history: %+v", h)
	}
}

func TestComputeStatsRoundsHalfUp(t *testing.T) {
	rows := []*types.QuizAttempt{
		{Score: 1, TotalQuestions: 8},
	}
	// 12.5 -> 13
	if got := ComputeStats(rows).AverageScore; got != 13 {
		t.Fatalf("average: want=13 got=%d", got)
	}
	rows = []*types.QuizAttempt{{Score: 2, TotalQuestions: 3}}
	// 66.67 -> 67
	if got := ComputeStats(rows).AverageScore; got != 67 {
		t.Fatalf("average: want=67 got=%d", got)
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	log := logger.Nop()
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewHistoryService(log, repos.NewQuizAttemptRepo(db, log))
	attempt := testutil.SeedQuizAttempt(t, ctx, db, "owner", 5, time.Now())

	n, err := svc.Delete(ctx, attempt.ID, "intruder")
	if err != nil || n != 0 {
		t.Fatalf("foreign delete: n=%d err=%v", n, err)
	}
	if got := countAttempts(t, db); got != 1 {
		t.Fatalf("attempt removed by non-owner")
	}
	n, err = svc.Delete(ctx, attempt.ID, "owner")
	if err != nil || n != 1 {
		t.Fatalf("owner delete: n=%d err=%v", n, err)
	}
	if got := countAttempts(t, db); got != 0 {
		t.Fatalf("attempt not removed")
	}
}
