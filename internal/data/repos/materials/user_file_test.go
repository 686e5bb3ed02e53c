package materials

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/notequiz-backend/internal/data/repos/testutil"
	types "github.com/yungbote/notequiz-backend/internal/domain"
	"github.com/yungbote/notequiz-backend/internal/platform/dbctx"
)

func TestUserFileRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserFileRepo(db, testutil.Logger(t))

	base := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	older := testutil.SeedUserFile(t, ctx, tx, "u1", "a.txt", base)
	newer := testutil.SeedUserFile(t, ctx, tx, "u1", "b.pdf", base.Add(time.Minute))
	foreign := testutil.SeedUserFile(t, ctx, tx, "u2", "c.txt", base.Add(2*time.Minute))

	list, err := repo.ListByUserID(dbc, "u1")
	if err != nil || len(list) != 2 {
		t.Fatalf("ListByUserID: err=%v len=%d", err, len(list))
	}
	if list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Fatalf("ListByUserID not newest first: %d, %d", list[0].ID, list[1].ID)
	}

	rows, err := repo.GetByIDsForUser(dbc, []int64{older.ID, foreign.ID}, "u1")
	if err != nil || len(rows) != 1 || rows[0].ID != older.ID {
		t.Fatalf("GetByIDsForUser leaked other owner's file: err=%v rows=%v", err, rows)
	}

	if f, err := repo.GetByIDForUser(dbc, foreign.ID, "u1"); err != nil || f != nil {
		t.Fatalf("GetByIDForUser other owner: f=%v err=%v", f, err)
	}
	if f, err := repo.GetByStorageKey(dbc, newer.StorageKey); err != nil || f == nil || f.ID != newer.ID {
		t.Fatalf("GetByStorageKey: f=%v err=%v", f, err)
	}

	created, err := repo.Create(dbc, &types.UserFile{
		UserID:     "u1",
		FileName:   "notes.docx",
		FileURL:    "https://blob.example/u1/notes.docx",
		StorageKey: "u1/1_notes.docx",
	})
	if err != nil || created.ID == 0 {
		t.Fatalf("Create: err=%v", err)
	}
	if created.UploadedAt.IsZero() {
		t.Fatalf("Create did not stamp uploaded_at")
	}
	if _, err := repo.Create(dbc, &types.UserFile{
		UserID:     "u1",
		FileName:   "dup.docx",
		FileURL:    "x",
		StorageKey: "u1/1_notes.docx",
	}); err == nil {
		t.Fatalf("expected unique storage_key violation")
	}
}
