package quizzes

import (
	"gorm.io/gorm"

	types "github.com/yungbote/notequiz-backend/internal/domain"
	"github.com/yungbote/notequiz-backend/internal/platform/dbctx"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

// QuizAttemptRepo reads and writes quiz_attempts. Every method except Create
// filters by owner.
type QuizAttemptRepo interface {
	Create(dbc dbctx.Context, attempt *types.QuizAttempt) (*types.QuizAttempt, error)
	GetByIDForUser(dbc dbctx.Context, id int64, userID string) (*types.QuizAttempt, error)
	ListByUserID(dbc dbctx.Context, userID string) ([]*types.QuizAttempt, error)
	UpdateScoreForUser(dbc dbctx.Context, id int64, userID string, score int) (int64, error)
	DeleteForUser(dbc dbctx.Context, id int64, userID string) (int64, error)
}

type quizAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	repoLog := baseLog.With("repo", "QuizAttemptRepo")
	return &quizAttemptRepo{db: db, log: repoLog}
}

func (r *quizAttemptRepo) Create(dbc dbctx.Context, attempt *types.QuizAttempt) (*types.QuizAttempt, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(dbc.Ctx).Create(attempt).Error; err != nil {
		return nil, err
	}
	return attempt, nil
}

// GetByIDForUser returns nil, nil when no attempt matches both id and owner.
func (r *quizAttemptRepo) GetByIDForUser(dbc dbctx.Context, id int64, userID string) (*types.QuizAttempt, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizAttempt
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *quizAttemptRepo) ListByUserID(dbc dbctx.Context, userID string) ([]*types.QuizAttempt, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizAttempt
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateScoreForUser sets the score of one attempt and reports rows affected.
// Zero means the attempt does not exist for that owner.
func (r *quizAttemptRepo) UpdateScoreForUser(dbc dbctx.Context, id int64, userID string, score int) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Model(&types.QuizAttempt{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("score", score)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *quizAttemptRepo) DeleteForUser(dbc dbctx.Context, id int64, userID string) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.QuizAttempt{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
