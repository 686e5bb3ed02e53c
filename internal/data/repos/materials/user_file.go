package materials

import (
	"gorm.io/gorm"

	types "github.com/yungbote/notequiz-backend/internal/domain"
	"github.com/yungbote/notequiz-backend/internal/platform/dbctx"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

type UserFileRepo interface {
	Create(dbc dbctx.Context, file *types.UserFile) (*types.UserFile, error)
	GetByIDForUser(dbc dbctx.Context, id int64, userID string) (*types.UserFile, error)
	GetByIDsForUser(dbc dbctx.Context, ids []int64, userID string) ([]*types.UserFile, error)
	ListByUserID(dbc dbctx.Context, userID string) ([]*types.UserFile, error)
	GetByStorageKey(dbc dbctx.Context, key string) (*types.UserFile, error)
}

type userFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserFileRepo(db *gorm.DB, baseLog *logger.Logger) UserFileRepo {
	repoLog := baseLog.With("repo", "UserFileRepo")
	return &userFileRepo{db: db, log: repoLog}
}

func (r *userFileRepo) Create(dbc dbctx.Context, file *types.UserFile) (*types.UserFile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(dbc.Ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

func (r *userFileRepo) GetByIDForUser(dbc dbctx.Context, id int64, userID string) (*types.UserFile, error) {
	rows, err := r.GetByIDsForUser(dbc, []int64{id}, userID)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *userFileRepo) GetByIDsForUser(dbc dbctx.Context, ids []int64, userID string) ([]*types.UserFile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserFile
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userFileRepo) ListByUserID(dbc dbctx.Context, userID string) ([]*types.UserFile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserFile
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userFileRepo) GetByStorageKey(dbc dbctx.Context, key string) (*types.UserFile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserFile
	if err := transaction.WithContext(dbc.Ctx).
		Where("storage_key = ?", key).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
