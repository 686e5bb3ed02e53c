package materials

import (
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/notequiz-backend/internal/domain"
	"github.com/yungbote/notequiz-backend/internal/platform/dbctx"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

// PendingBlobRepo is the upload outbox.
type PendingBlobRepo interface {
	Create(dbc dbctx.Context, row *types.PendingBlob) (*types.PendingBlob, error)
	DeleteByStorageKey(dbc dbctx.Context, key string) (int64, error)
	DeleteByID(dbc dbctx.Context, id int64) error
	ListCreatedBefore(dbc dbctx.Context, cutoff time.Time, limit int) ([]*types.PendingBlob, error)
	RecordFailure(dbc dbctx.Context, id int64, msg string) error
}

type pendingBlobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPendingBlobRepo(db *gorm.DB, baseLog *logger.Logger) PendingBlobRepo {
	repoLog := baseLog.With("repo", "PendingBlobRepo")
	return &pendingBlobRepo{db: db, log: repoLog}
}

func (r *pendingBlobRepo) Create(dbc dbctx.Context, row *types.PendingBlob) (*types.PendingBlob, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *pendingBlobRepo) DeleteByStorageKey(dbc dbctx.Context, key string) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("storage_key = ?", key).
		Delete(&types.PendingBlob{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *pendingBlobRepo) DeleteByID(dbc dbctx.Context, id int64) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.PendingBlob{}).Error
}

// ListCreatedBefore returns the oldest rows first.
func (r *pendingBlobRepo) ListCreatedBefore(dbc dbctx.Context, cutoff time.Time, limit int) ([]*types.PendingBlob, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PendingBlob
	q := transaction.WithContext(dbc.Ctx).
		Where("created_at < ?", cutoff).
		Order("created_at ASC").
		Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pendingBlobRepo) RecordFailure(dbc dbctx.Context, id int64, msg string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.PendingBlob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": msg,
			"updated_at": time.Now().UTC(),
		}).Error
}
