package types

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment links one student to one course. The (student, course) pair is
// unique at the store level; the constraint, not the pre-check, is the
// source of truth for "already enrolled".
//
// ProgressPercentage is nil until the first recompute against a course with
// at least one ready lesson.
type Enrollment struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_student_course" json:"student_id"`
	Student            *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	CourseID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_student_course" json:"course_id"`
	Course             *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	ProgressPercentage *int      `gorm:"column:progress_percentage" json:"progress_percentage"`
	EnrolledAt         time.Time `gorm:"not null;column:enrolled_at" json:"enrolled_at"`
}

func (Enrollment) TableName() string { return "enrollments" }
