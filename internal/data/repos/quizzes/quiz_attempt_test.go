package quizzes

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/notequiz-backend/internal/data/repos/testutil"
	types "github.com/yungbote/notequiz-backend/internal/domain"
	"github.com/yungbote/notequiz-backend/internal/platform/dbctx"
)

func TestQuizAttemptRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewQuizAttemptRepo(db, testutil.Logger(t))

	qs, err := types.EncodeQuestions(testutil.Questions(types.QuestionsPerQuiz))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	created, err := repo.Create(dbc, &types.QuizAttempt{
		UserID:         "owner-a",
		Topic:          "Krebs cycle",
		Questions:      qs,
		TotalQuestions: types.QuestionsPerQuiz,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("Create did not assign an id")
	}

	got, err := repo.GetByIDForUser(dbc, created.ID, "owner-a")
	if err != nil || got == nil {
		t.Fatalf("GetByIDForUser: got=%v err=%v", got, err)
	}
	list, err := got.QuestionList()
	if err != nil || len(list) != types.QuestionsPerQuiz {
		t.Fatalf("QuestionList: len=%d err=%v", len(list), err)
	}

	if other, err := repo.GetByIDForUser(dbc, created.ID, "owner-b"); err != nil || other != nil {
		t.Fatalf("GetByIDForUser other owner: got=%v err=%v", other, err)
	}

	n, err := repo.UpdateScoreForUser(dbc, created.ID, "owner-b", 9)
	if err != nil || n != 0 {
		t.Fatalf("UpdateScoreForUser mismatched owner: n=%d err=%v", n, err)
	}
	if n, err := repo.UpdateScoreForUser(dbc, created.ID, "owner-a", 6); err != nil || n != 1 {
		t.Fatalf("UpdateScoreForUser: n=%d err=%v", n, err)
	}
	if n, err := repo.UpdateScoreForUser(dbc, created.ID, "owner-a", 4); err != nil || n != 1 {
		t.Fatalf("UpdateScoreForUser second: n=%d err=%v", n, err)
	}
	got, _ = repo.GetByIDForUser(dbc, created.ID, "owner-a")
	if got.Score != 4 {
		t.Fatalf("expected last write to win, score=%d", got.Score)
	}

	if n, err := repo.DeleteForUser(dbc, created.ID, "owner-b"); err != nil || n != 0 {
		t.Fatalf("DeleteForUser other owner: n=%d err=%v", n, err)
	}
	if rows, _ := repo.ListByUserID(dbc, "owner-a"); len(rows) != 1 {
		t.Fatalf("rows after foreign delete = %d", len(rows))
	}
	if n, err := repo.DeleteForUser(dbc, created.ID, "owner-a"); err != nil || n != 1 {
		t.Fatalf("DeleteForUser: n=%d err=%v", n, err)
	}
}

func TestQuizAttemptRepoListOrdersNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewQuizAttemptRepo(db, testutil.Logger(t))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := testutil.SeedQuizAttempt(t, ctx, tx, "u1", 3, base)
	newest := testutil.SeedQuizAttempt(t, ctx, tx, "u1", 5, base.Add(2*time.Hour))
	middle := testutil.SeedQuizAttempt(t, ctx, tx, "u1", 4, base.Add(time.Hour))
	testutil.SeedQuizAttempt(t, ctx, tx, "u2", 10, base.Add(3*time.Hour))

	rows, err := repo.ListByUserID(dbc, "u1")
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	want := []int64{newest.ID, middle.ID, oldest.ID}
	for i, id := range want {
		if rows[i].ID != id {
			t.Fatalf("row %d: got id %d want %d", i, rows[i].ID, id)
		}
	}
}
