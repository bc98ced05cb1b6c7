package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	LessonStatusDraft      = "draft"
	LessonStatusProcessing = "processing"
	LessonStatusReady      = "ready"
	LessonStatusPublished  = "published"
)

func ValidLessonStatus(status string) bool {
	switch status {
	case LessonStatusDraft, LessonStatusProcessing, LessonStatusReady, LessonStatusPublished:
		return true
	}
	return false
}

// DefaultLessonDurationMinutes is applied when the caller does not provide a
// duration.
const DefaultLessonDurationMinutes = 5

type Lesson struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Course          *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	ModuleID        *uuid.UUID     `gorm:"type:uuid;index" json:"module_id,omitempty"`
	Module          *CourseModule  `gorm:"constraint:OnDelete:SET NULL;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	Title           string         `gorm:"not null;column:title" json:"title"`
	Description     string         `gorm:"column:description" json:"description"`
	OrderIndex      int            `gorm:"not null;column:order_index" json:"order_index"`
	DurationMinutes int            `gorm:"not null;default:5;column:duration_minutes" json:"duration_minutes"`
	StorageKey      string         `gorm:"column:storage_key" json:"storage_key"`
	VideoURL        string         `gorm:"column:video_url" json:"video_url"`
	ThumbnailURL    string         `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Status          string         `gorm:"not null;default:draft;column:status;index" json:"status"`
	Metadata        datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (Lesson) TableName() string { return "lessons" }
