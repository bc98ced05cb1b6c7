package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusArchived  = "archived"
)

func ValidCourseStatus(status string) bool {
	switch status {
	case CourseStatusDraft, CourseStatusPublished, CourseStatusArchived:
		return true
	}
	return false
}

type Course struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfessorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"professor_id"`
	Professor    *Professor `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProfessorID;references:ID" json:"professor,omitempty"`
	Title        string     `gorm:"not null;column:title" json:"title"`
	Description  string     `gorm:"column:description" json:"description"`
	ThumbnailURL string     `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Status       string     `gorm:"not null;default:published;column:status;index" json:"status"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (Course) TableName() string { return "courses" }
