package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/repos"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// SessionService persists finished generations as learning sessions with
// analytics events attached.
type SessionService interface {
	RecordGeneration(ctx context.Context, req types.StudentRequest, result types.AllContainers) (*types.LearningSession, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, limit int) ([]*types.LearningSession, error)
	DeleteSessions(ctx context.Context, studentID uuid.UUID, ids []uuid.UUID) (int, error)
}

type sessionService struct {
	db  *gorm.DB
	log *logger.Logger

	sessionRepo   repos.LearningSessionRepo
	analyticsRepo repos.SessionAnalyticsRepo
}

func NewSessionService(db *gorm.DB, baseLog *logger.Logger, sessionRepo repos.LearningSessionRepo, analyticsRepo repos.SessionAnalyticsRepo) SessionService {
	return &sessionService{
		db:            db,
		log:           baseLog.With("service", "SessionService"),
		sessionRepo:   sessionRepo,
		analyticsRepo: analyticsRepo,
	}
}

func (s *sessionService) RecordGeneration(ctx context.Context, req types.StudentRequest, result types.AllContainers) (*types.LearningSession, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal containers: %w", err)
	}

	now := time.Now()
	session := &types.LearningSession{
		ID:           uuid.New(),
		StudentID:    req.StudentID,
		StudentName:  req.StudentName,
		Grade:        req.Grade,
		Career:       req.Career,
		Subject:      req.Subject,
		Skill:        req.Skill,
		Strategy:     result.Metadata.Strategy,
		CacheHit:     result.Metadata.CacheHit,
		GenerationMs: result.Metadata.GenerationMs,
		CostEstimate: result.Metadata.CostEstimate,
		Containers:   datatypes.JSON(payload),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, txErr := s.sessionRepo.Create(ctx, tx, []*types.LearningSession{session}); txErr != nil {
			return fmt.Errorf("create session: %w", txErr)
		}

		eventPayload, _ := json.Marshal(map[string]any{
			"strategy":  result.Metadata.Strategy,
			"cache_hit": result.Metadata.CacheHit,
		})
		event := &types.SessionAnalytics{
			ID:        uuid.New(),
			SessionID: session.ID,
			EventType: "experience_generated",
			Payload:   datatypes.JSON(eventPayload),
			CreatedAt: now,
		}
		if _, txErr := s.analyticsRepo.Create(ctx, tx, []*types.SessionAnalytics{event}); txErr != nil {
			return fmt.Errorf("create analytics event: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) ListByStudent(ctx context.Context, studentID uuid.UUID, limit int) ([]*types.LearningSession, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("studentID required")
	}
	return s.sessionRepo.GetByStudentID(ctx, nil, studentID, limit)
}

// DeleteSessions soft-deletes the student's own sessions from the given
// set and reports how many were removed. IDs belonging to other students
// are silently skipped.
func (s *sessionService) DeleteSessions(ctx context.Context, studentID uuid.UUID, ids []uuid.UUID) (int, error) {
	if studentID == uuid.Nil {
		return 0, fmt.Errorf("studentID required")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	sessions, err := s.sessionRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return 0, fmt.Errorf("load sessions: %w", err)
	}

	owned := make([]uuid.UUID, 0, len(sessions))
	for _, session := range sessions {
		if session.StudentID == studentID {
			owned = append(owned, session.ID)
		}
	}
	if len(owned) == 0 {
		return 0, nil
	}

	if err := s.sessionRepo.SoftDeleteByIDs(ctx, nil, owned); err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return len(owned), nil
}
