package types

import (
	"time"

	"github.com/google/uuid"
)

// Read models for the denormalized listing queries. These are scan targets
// only; they never migrate.

type AvailableCourse struct {
	ID                    uuid.UUID `gorm:"column:id" json:"id"`
	Title                 string    `gorm:"column:title" json:"title"`
	Description           string    `gorm:"column:description" json:"description"`
	ThumbnailURL          string    `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Status                string    `gorm:"column:status" json:"status"`
	CreatedAt             time.Time `gorm:"column:created_at" json:"created_at"`
	ProfessorID           uuid.UUID `gorm:"column:professor_id" json:"professor_id"`
	ProfessorUserID       uuid.UUID `gorm:"column:professor_user_id" json:"professor_user_id"`
	ProfessorName         string    `gorm:"column:professor_name" json:"professor_name"`
	LessonsCount          int64     `gorm:"column:lessons_count" json:"lessons_count"`
	ModulesCount          int64     `gorm:"column:modules_count" json:"modules_count"`
	EnrolledStudentsCount int64     `gorm:"column:enrolled_students_count" json:"enrolled_students_count"`
}

// PreviewLesson is a ready lesson as shown to a browsing (non-enrolled)
// visitor, carrying its module title/order for client-side grouping.
type PreviewLesson struct {
	ID              uuid.UUID  `gorm:"column:id" json:"id"`
	CourseID        uuid.UUID  `gorm:"column:course_id" json:"course_id"`
	ModuleID        *uuid.UUID `gorm:"column:module_id" json:"module_id,omitempty"`
	Title           string     `gorm:"column:title" json:"title"`
	Description     string     `gorm:"column:description" json:"description"`
	OrderIndex      int        `gorm:"column:order_index" json:"order_index"`
	DurationMinutes int        `gorm:"column:duration_minutes" json:"duration_minutes"`
	ThumbnailURL    string     `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Status          string     `gorm:"column:status" json:"status"`
	ModuleTitle     *string    `gorm:"column:module_title" json:"module_title,omitempty"`
	ModuleOrder     *int       `gorm:"column:module_order" json:"module_order,omitempty"`
}

type CoursePreview struct {
	ID                    uuid.UUID `gorm:"column:id" json:"id"`
	Title                 string    `gorm:"column:title" json:"title"`
	Description           string    `gorm:"column:description" json:"description"`
	ThumbnailURL          string    `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Status                string    `gorm:"column:status" json:"status"`
	CreatedAt             time.Time `gorm:"column:created_at" json:"created_at"`
	ProfessorID           uuid.UUID `gorm:"column:professor_id" json:"professor_id"`
	ProfessorUserID       uuid.UUID `gorm:"column:professor_user_id" json:"professor_user_id"`
	ProfessorName         string    `gorm:"column:professor_name" json:"professor_name"`
	ProfessorBio          string    `gorm:"column:professor_bio" json:"professor_bio"`
	Specialization        string    `gorm:"column:specialization" json:"specialization"`
	LessonsCount          int64     `gorm:"column:lessons_count" json:"lessons_count"`
	ModulesCount          int64     `gorm:"column:modules_count" json:"modules_count"`
	EnrolledStudentsCount int64     `gorm:"column:enrolled_students_count" json:"enrolled_students_count"`
	TotalDurationMinutes  int64     `gorm:"column:total_duration_minutes" json:"total_duration_minutes"`

	Lessons []PreviewLesson `gorm:"-" json:"lessons"`
}

type EnrollmentSummary struct {
	ID                 uuid.UUID `gorm:"column:id" json:"id"`
	StudentID          uuid.UUID `gorm:"column:student_id" json:"student_id"`
	CourseID           uuid.UUID `gorm:"column:course_id" json:"course_id"`
	ProgressPercentage *int      `gorm:"column:progress_percentage" json:"progress_percentage"`
	EnrolledAt         time.Time `gorm:"column:enrolled_at" json:"enrolled_at"`
	Title              string    `gorm:"column:title" json:"title"`
	Description        string    `gorm:"column:description" json:"description"`
	ThumbnailURL       string    `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Status             string    `gorm:"column:status" json:"status"`
	ProfessorUserID    uuid.UUID `gorm:"column:professor_user_id" json:"professor_user_id"`
	ProfessorName      string    `gorm:"column:professor_name" json:"professor_name"`
	TotalLessons       int64     `gorm:"column:total_lessons" json:"total_lessons"`
	CompletedLessons   int64     `gorm:"column:completed_lessons" json:"completed_lessons"`
}

// EnrolledLesson is a ready lesson annotated with the calling student's
// completion state.
type EnrolledLesson struct {
	ID                     uuid.UUID  `gorm:"column:id" json:"id"`
	CourseID               uuid.UUID  `gorm:"column:course_id" json:"course_id"`
	ModuleID               *uuid.UUID `gorm:"column:module_id" json:"module_id,omitempty"`
	Title                  string     `gorm:"column:title" json:"title"`
	Description            string     `gorm:"column:description" json:"description"`
	OrderIndex             int        `gorm:"column:order_index" json:"order_index"`
	DurationMinutes        int        `gorm:"column:duration_minutes" json:"duration_minutes"`
	StorageKey             string     `gorm:"column:storage_key" json:"storage_key"`
	VideoURL               string     `gorm:"column:video_url" json:"video_url"`
	ThumbnailURL           string     `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Status                 string     `gorm:"column:status" json:"status"`
	ModuleTitle            *string    `gorm:"column:module_title" json:"module_title,omitempty"`
	ModuleOrder            *int       `gorm:"column:module_order" json:"module_order,omitempty"`
	IsCompleted            bool       `gorm:"column:is_completed" json:"is_completed"`
	WatchedDurationSeconds *int       `gorm:"column:watched_duration_seconds" json:"watched_duration_seconds,omitempty"`
}

type EnrolledCourse struct {
	ID                 uuid.UUID `gorm:"column:id" json:"id"`
	Title              string    `gorm:"column:title" json:"title"`
	Description        string    `gorm:"column:description" json:"description"`
	ThumbnailURL       string    `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Status             string    `gorm:"column:status" json:"status"`
	ProfessorUserID    uuid.UUID `gorm:"column:professor_user_id" json:"professor_user_id"`
	ProfessorName      string    `gorm:"column:professor_name" json:"professor_name"`
	EnrollmentID       uuid.UUID `gorm:"-" json:"enrollment_id"`
	ProgressPercentage *int      `gorm:"column:progress_percentage" json:"progress_percentage"`
	EnrolledAt         time.Time `gorm:"column:enrolled_at" json:"enrolled_at"`

	Modules []CourseModule   `gorm:"-" json:"modules"`
	Lessons []EnrolledLesson `gorm:"-" json:"lessons"`
}

type CourseWithCounts struct {
	ID               uuid.UUID `gorm:"column:id" json:"id"`
	ProfessorID      uuid.UUID `gorm:"column:professor_id" json:"professor_id"`
	Title            string    `gorm:"column:title" json:"title"`
	Description      string    `gorm:"column:description" json:"description"`
	ThumbnailURL     string    `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Status           string    `gorm:"column:status" json:"status"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	LessonsCount     int64     `gorm:"column:lessons_count" json:"lessons_count"`
	ModulesCount     int64     `gorm:"column:modules_count" json:"modules_count"`
	EnrollmentsCount int64     `gorm:"column:enrollments_count" json:"enrollments_count"`
}

// CourseDetail is a course with its modules and their ordered lessons, as
// served to authoring professors.
type CourseDetail struct {
	Course
	Modules []ModuleWithLessons `json:"modules"`
}

type ModuleWithLessons struct {
	CourseModule
	Lessons []Lesson `json:"lessons"`
}

type StudentOverview struct {
	ID               uuid.UUID  `gorm:"column:id" json:"id"`
	Email            string     `gorm:"column:email" json:"email"`
	FirstName        string     `gorm:"column:first_name" json:"first_name"`
	LastName         string     `gorm:"column:last_name" json:"last_name"`
	Banned           bool       `gorm:"column:banned" json:"banned"`
	BannedAt         *time.Time `gorm:"column:banned_at" json:"banned_at,omitempty"`
	BannedReason     *string    `gorm:"column:banned_reason" json:"banned_reason,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	TotalEnrollments int64      `gorm:"column:total_enrollments" json:"total_enrollments"`
	CompletedLessons int64      `gorm:"column:completed_lessons" json:"completed_lessons"`
}

type ProfessorOverview struct {
	ID               uuid.UUID  `gorm:"column:id" json:"id"`
	Email            string     `gorm:"column:email" json:"email"`
	FirstName        string     `gorm:"column:first_name" json:"first_name"`
	LastName         string     `gorm:"column:last_name" json:"last_name"`
	Banned           bool       `gorm:"column:banned" json:"banned"`
	BannedAt         *time.Time `gorm:"column:banned_at" json:"banned_at,omitempty"`
	BannedReason     *string    `gorm:"column:banned_reason" json:"banned_reason,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	ProfessorID      uuid.UUID  `gorm:"column:professor_id" json:"professor_id"`
	Bio              string     `gorm:"column:bio" json:"bio"`
	Specialization   string     `gorm:"column:specialization" json:"specialization"`
	TotalCourses     int64      `gorm:"column:total_courses" json:"total_courses"`
	TotalLessons     int64      `gorm:"column:total_lessons" json:"total_lessons"`
	TotalEnrollments int64      `gorm:"column:total_enrollments" json:"total_enrollments"`
}

// StudentDetails is the admin view of one student account: the user row
// plus every enrollment with its progress counts.
type StudentDetails struct {
	User        User                 `json:"user"`
	Enrollments []*EnrollmentSummary `json:"enrollments"`
}

// ProfessorDetails is the admin view of one professor account: the user
// row, the professor profile and the authored courses with counts.
type ProfessorDetails struct {
	User    User                `json:"user"`
	Profile *Professor          `json:"profile,omitempty"`
	Courses []*CourseWithCounts `json:"courses"`
}

// ProfessorProfile is the public professor record with the joined user
// identity fields.
type ProfessorProfile struct {
	ID             uuid.UUID `gorm:"column:id" json:"id"`
	UserID         uuid.UUID `gorm:"column:user_id" json:"user_id"`
	Bio            string    `gorm:"column:bio" json:"bio"`
	Specialization string    `gorm:"column:specialization" json:"specialization"`
	Email          string    `gorm:"column:email" json:"email"`
	FirstName      string    `gorm:"column:first_name" json:"first_name"`
	LastName       string    `gorm:"column:last_name" json:"last_name"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}
