package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SessionAnalytics struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID uuid.UUID        `gorm:"type:uuid;not null;index" json:"session_id"`
	Session   *LearningSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
	EventType string           `gorm:"column:event_type;not null;index" json:"event_type"`
	Payload   datatypes.JSON   `gorm:"column:payload;type:jsonb" json:"payload"`
	CreatedAt time.Time        `gorm:"not null;default:now()" json:"created_at"`
}

func (SessionAnalytics) TableName() string { return "session_analytics" }
