package types

import (
	"time"

	"github.com/google/uuid"
)

// LessonProgress marks one lesson completed under one enrollment. Upserted on
// completion; CompletedAt is refreshed even when the row already exists.
type LessonProgress struct {
	ID                     uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	EnrollmentID           uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_progress_enrollment_lesson" json:"enrollment_id"`
	Enrollment             *Enrollment `gorm:"constraint:OnDelete:CASCADE;foreignKey:EnrollmentID;references:ID" json:"enrollment,omitempty"`
	LessonID               uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_progress_enrollment_lesson" json:"lesson_id"`
	Lesson                 *Lesson     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	CompletedAt            time.Time   `gorm:"not null;column:completed_at" json:"completed_at"`
	WatchedDurationSeconds *int        `gorm:"column:watched_duration_seconds" json:"watched_duration_seconds,omitempty"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }
