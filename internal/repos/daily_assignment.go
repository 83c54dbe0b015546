package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

type DailyAssignmentRepo interface {
	UpsertByStudentDay(ctx context.Context, tx *gorm.DB, assignments []*types.DailyAssignment) error
	GetByStudentAndDate(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, date string) ([]*types.DailyAssignment, error)
	MarkStatus(ctx context.Context, tx *gorm.DB, studentID, id uuid.UUID, status string, at time.Time) (int64, error)
}

type dailyAssignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) DailyAssignmentRepo {
	repoLog := baseLog.With("repo", "DailyAssignmentRepo")
	return &dailyAssignmentRepo{db: db, log: repoLog}
}

func (r *dailyAssignmentRepo) UpsertByStudentDay(ctx context.Context, tx *gorm.DB, assignments []*types.DailyAssignment) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(assignments) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "assigned_date"}, {Name: "subject"}},
			DoUpdates: clause.AssignmentColumns([]string{"skill", "career", "updated_at"}),
		}).
		Create(&assignments).Error
}

func (r *dailyAssignmentRepo) GetByStudentAndDate(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, date string) ([]*types.DailyAssignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DailyAssignment
	if studentID == uuid.Nil || date == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("student_id = ? AND assigned_date = ?", studentID, date).
		Order("subject ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// MarkStatus updates a single assignment, scoped to its owner. The
// returned count is zero when the assignment does not exist or belongs
// to a different student.
func (r *dailyAssignmentRepo) MarkStatus(ctx context.Context, tx *gorm.DB, studentID, id uuid.UUID, status string, at time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	updates := map[string]any{"status": status, "updated_at": at}
	switch status {
	case types.AssignmentStatusStarted:
		updates["started_at"] = at
	case types.AssignmentStatusCompleted:
		updates["completed_at"] = at
	}

	res := transaction.WithContext(ctx).
		Model(&types.DailyAssignment{}).
		Where("id = ? AND student_id = ?", id, studentID).
		Updates(updates)
	return res.RowsAffected, res.Error
}
