package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

type LearningSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*types.LearningSession) ([]*types.LearningSession, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LearningSession, error)
	GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, limit int) ([]*types.LearningSession, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type learningSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningSessionRepo(db *gorm.DB, baseLog *logger.Logger) LearningSessionRepo {
	repoLog := baseLog.With("repo", "LearningSessionRepo")
	return &learningSessionRepo{db: db, log: repoLog}
}

func (r *learningSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.LearningSession) ([]*types.LearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(sessions) == 0 {
		return []*types.LearningSession{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *learningSessionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningSession
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningSessionRepo) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, limit int) ([]*types.LearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningSession
	if studentID == uuid.Nil {
		return results, nil
	}

	q := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningSessionRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.LearningSession{}).Error
}
