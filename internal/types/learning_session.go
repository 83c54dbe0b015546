package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LearningSession struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"student_id"`
	StudentName  string         `gorm:"column:student_name" json:"student_name"`
	Grade        string         `gorm:"column:grade;not null;index" json:"grade"`
	Career       string         `gorm:"column:career;not null;index" json:"career"`
	Subject      string         `gorm:"column:subject;not null" json:"subject"`
	Skill        string         `gorm:"column:skill;not null" json:"skill"`
	Strategy     string         `gorm:"column:strategy;not null" json:"strategy"`
	CacheHit     bool           `gorm:"column:cache_hit;not null;default:false" json:"cache_hit"`
	GenerationMs int64          `gorm:"column:generation_ms;not null;default:0" json:"generation_ms"`
	CostEstimate float64        `gorm:"column:cost_estimate;not null;default:0" json:"cost_estimate"`
	Containers   datatypes.JSON `gorm:"column:containers;type:jsonb" json:"containers"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningSession) TableName() string { return "learning_sessions" }
