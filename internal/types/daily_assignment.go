package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AssignmentStatusAssigned  = "assigned"
	AssignmentStatusStarted   = "started"
	AssignmentStatusCompleted = "completed"
)

type DailyAssignment struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_assignment_student_day_subject" json:"student_id"`
	AssignedDate string         `gorm:"column:assigned_date;not null;uniqueIndex:uq_assignment_student_day_subject" json:"assigned_date"`
	Subject      string         `gorm:"column:subject;not null;uniqueIndex:uq_assignment_student_day_subject" json:"subject"`
	Skill        string         `gorm:"column:skill;not null" json:"skill"`
	Career       string         `gorm:"column:career" json:"career"`
	Status       string         `gorm:"column:status;not null;default:assigned" json:"status"`
	EstimatedMin int            `gorm:"column:estimated_min;not null;default:15" json:"estimated_min"`
	Metadata     datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	StartedAt    *time.Time     `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt  *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DailyAssignment) TableName() string { return "daily_assignments" }
