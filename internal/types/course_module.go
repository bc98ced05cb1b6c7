package types

import (
	"time"

	"github.com/google/uuid"
)

// CourseModule groups lessons inside a course. OrderIndex is assigned
// max(sibling)+1 when the caller omits it; gaps and ties are accepted.
type CourseModule struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID   uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course     *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Title      string    `gorm:"not null;column:title" json:"title"`
	OrderIndex int       `gorm:"not null;column:order_index" json:"order_index"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (CourseModule) TableName() string { return "modules" }
