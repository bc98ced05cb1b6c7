package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/apierr"
	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/repos"
	"github.com/thetarnished/academy-backend/internal/types"
)

type EnrollmentService interface {
	ListAvailableCourses(ctx context.Context) ([]*types.AvailableCourse, error)
	GetCoursePreview(ctx context.Context, courseID uuid.UUID) (*types.CoursePreview, error)
	Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*types.Enrollment, error)
	GetStudentEnrollments(ctx context.Context, studentID uuid.UUID) ([]*types.EnrollmentSummary, error)
	CheckEnrollment(ctx context.Context, studentID, courseID uuid.UUID) (*types.Enrollment, error)
	GetEnrolledCourseDetails(ctx context.Context, studentID, courseID uuid.UUID) (*types.EnrolledCourse, error)
}

type enrollmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	moduleRepo     repos.CourseModuleRepo
	lessonRepo     repos.LessonRepo
	enrollmentRepo repos.EnrollmentRepo
	videoService   VideoService
}

func NewEnrollmentService(
	db *gorm.DB,
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	moduleRepo repos.CourseModuleRepo,
	lessonRepo repos.LessonRepo,
	enrollmentRepo repos.EnrollmentRepo,
	videoService VideoService,
) EnrollmentService {
	return &enrollmentService{
		db:             db,
		log:            log.With("service", "EnrollmentService"),
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		videoService:   videoService,
	}
}

func (es *enrollmentService) ListAvailableCourses(ctx context.Context) ([]*types.AvailableCourse, error) {
	courses, err := es.courseRepo.ListAvailable(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list available courses: %w", err)
	}
	return courses, nil
}

func (es *enrollmentService) GetCoursePreview(ctx context.Context, courseID uuid.UUID) (*types.CoursePreview, error) {
	preview, err := es.courseRepo.GetPreviewHeader(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course preview: %w", err)
	}
	if preview == nil {
		return nil, apierr.NotFound("course_not_found", fmt.Errorf("course %s not found", courseID))
	}
	lessons, err := es.lessonRepo.ListReadyWithModule(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preview lessons: %w", err)
	}
	preview.Lessons = lessons
	return preview, nil
}

// Enroll creates the enrollment once. The unique (student, course) constraint
// is the source of truth; a racing duplicate surfaces as the same error as
// the pre-check.
func (es *enrollmentService) Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*types.Enrollment, error) {
	course, err := es.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", fmt.Errorf("course %s not found", courseID))
	}
	if course.Status != types.CourseStatusPublished {
		return nil, apierr.Invalid("course_not_published", errors.New("course is not open for enrollment"))
	}

	existing, err := es.enrollmentRepo.GetByStudentAndCourse(ctx, nil, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing enrollment: %w", err)
	}
	if existing != nil {
		return nil, apierr.Invalid("already_enrolled", errors.New("already enrolled in this course"))
	}

	enrollment := &types.Enrollment{
		ID:         uuid.New(),
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}
	if _, err := es.enrollmentRepo.Create(ctx, nil, enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Invalid("already_enrolled", errors.New("already enrolled in this course"))
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}
	es.log.Info("student enrolled", "student_id", studentID, "course_id", courseID)
	return enrollment, nil
}

func (es *enrollmentService) GetStudentEnrollments(ctx context.Context, studentID uuid.UUID) ([]*types.EnrollmentSummary, error) {
	enrollments, err := es.enrollmentRepo.ListByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (es *enrollmentService) CheckEnrollment(ctx context.Context, studentID, courseID uuid.UUID) (*types.Enrollment, error) {
	enrollment, err := es.enrollmentRepo.GetByStudentAndCourse(ctx, nil, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return enrollment, nil
}

// GetEnrolledCourseDetails returns the course as the enrolled student sees
// it: ready lessons only, each annotated with completion state, with video
// URLs resolved through the storage gateway.
func (es *enrollmentService) GetEnrolledCourseDetails(ctx context.Context, studentID, courseID uuid.UUID) (*types.EnrolledCourse, error) {
	enrollment, err := es.enrollmentRepo.GetByStudentAndCourse(ctx, nil, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollment: %w", err)
	}
	if enrollment == nil {
		course, err := es.courseRepo.GetByID(ctx, nil, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to load course: %w", err)
		}
		if course == nil {
			return nil, apierr.NotFound("course_not_found", fmt.Errorf("course %s not found", courseID))
		}
		return nil, apierr.Forbidden("not_enrolled", fmt.Errorf("no enrollment for course %s", courseID))
	}

	header, err := es.courseRepo.GetEnrolledHeader(ctx, nil, courseID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrolled course: %w", err)
	}
	if header == nil {
		return nil, apierr.NotFound("course_not_found", fmt.Errorf("course %s not found", courseID))
	}
	header.EnrollmentID = enrollment.ID

	modules, err := es.moduleRepo.ListByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load modules: %w", err)
	}
	header.Modules = modules

	lessons, err := es.lessonRepo.ListReadyWithProgress(ctx, nil, courseID, enrollment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}
	for i := range lessons {
		if lessons[i].StorageKey != "" {
			lessons[i].VideoURL = es.videoService.ResolveURL(lessons[i].StorageKey)
		}
	}
	header.Lessons = lessons
	return header, nil
}
