package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

type SessionAnalyticsRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.SessionAnalytics) ([]*types.SessionAnalytics, error)
	GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.SessionAnalytics, error)
	GetByEventType(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, eventType string) ([]*types.SessionAnalytics, error)
}

type sessionAnalyticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionAnalyticsRepo(db *gorm.DB, baseLog *logger.Logger) SessionAnalyticsRepo {
	repoLog := baseLog.With("repo", "SessionAnalyticsRepo")
	return &sessionAnalyticsRepo{db: db, log: repoLog}
}

func (r *sessionAnalyticsRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.SessionAnalytics) ([]*types.SessionAnalytics, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(events) == 0 {
		return []*types.SessionAnalytics{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *sessionAnalyticsRepo) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.SessionAnalytics, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SessionAnalytics
	if sessionID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sessionAnalyticsRepo) GetByEventType(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, eventType string) ([]*types.SessionAnalytics, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SessionAnalytics
	if sessionID == uuid.Nil || eventType == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("session_id = ? AND event_type = ?", sessionID, eventType).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
