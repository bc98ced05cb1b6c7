package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/apierr"
	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/repos"
	"github.com/thetarnished/academy-backend/internal/types"
)

type CompleteLessonResult struct {
	Progress   *types.LessonProgress `json:"lesson_progress"`
	Enrollment *types.Enrollment     `json:"enrollment"`
}

type ProgressService interface {
	// CompleteLesson marks the lesson done for the enrollment and recomputes
	// the enrollment's percentage, all in one transaction. Re-completing is
	// allowed and refreshes completed_at.
	CompleteLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID, watchedDurationSeconds *int) (*CompleteLessonResult, error)
	Recompute(ctx context.Context, tx *gorm.DB, enrollment *types.Enrollment) error
}

type progressService struct {
	db             *gorm.DB
	log            *logger.Logger
	enrollmentRepo repos.EnrollmentRepo
	lessonRepo     repos.LessonRepo
	progressRepo   repos.LessonProgressRepo
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	enrollmentRepo repos.EnrollmentRepo,
	lessonRepo repos.LessonRepo,
	progressRepo repos.LessonProgressRepo,
) ProgressService {
	return &progressService{
		db:             db,
		log:            log.With("service", "ProgressService"),
		enrollmentRepo: enrollmentRepo,
		lessonRepo:     lessonRepo,
		progressRepo:   progressRepo,
	}
}

func (ps *progressService) CompleteLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID, watchedDurationSeconds *int) (*CompleteLessonResult, error) {
	var result CompleteLessonResult

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollment, err := ps.enrollmentRepo.GetByID(ctx, tx, enrollmentID)
		if err != nil {
			return fmt.Errorf("failed to load enrollment: %w", err)
		}
		if enrollment == nil {
			return apierr.NotFound("enrollment_not_found", fmt.Errorf("enrollment %s not found", enrollmentID))
		}

		lesson, err := ps.lessonRepo.GetByID(ctx, tx, lessonID)
		if err != nil {
			return fmt.Errorf("failed to load lesson: %w", err)
		}
		if lesson == nil || lesson.CourseID != enrollment.CourseID {
			return apierr.NotFound("lesson_not_found", fmt.Errorf("lesson %s not found in enrolled course", lessonID))
		}

		progress := &types.LessonProgress{
			ID:                     uuid.New(),
			EnrollmentID:           enrollment.ID,
			LessonID:               lesson.ID,
			CompletedAt:            time.Now().UTC(),
			WatchedDurationSeconds: watchedDurationSeconds,
		}
		stored, err := ps.progressRepo.Upsert(ctx, tx, progress)
		if err != nil {
			return fmt.Errorf("failed to record completion: %w", err)
		}
		result.Progress = stored

		if err := ps.Recompute(ctx, tx, enrollment); err != nil {
			return err
		}
		result.Enrollment = enrollment
		return nil
	})
	if err != nil {
		return nil, err
	}
	ps.log.Info("lesson completed",
		"enrollment_id", enrollmentID,
		"lesson_id", lessonID,
		"progress_percentage", result.Enrollment.ProgressPercentage)
	return &result, nil
}

// Recompute derives the percentage from distinct completed ready lessons
// over the course's ready lessons, and persists it on the enrollment. A
// course with no ready lessons keeps a null percentage.
func (ps *progressService) Recompute(ctx context.Context, tx *gorm.DB, enrollment *types.Enrollment) error {
	ready, err := ps.lessonRepo.CountReadyByCourse(ctx, tx, enrollment.CourseID)
	if err != nil {
		return fmt.Errorf("failed to count ready lessons: %w", err)
	}

	var percentage *int
	if ready > 0 {
		completed, err := ps.progressRepo.CountCompletedReady(ctx, tx, enrollment.ID)
		if err != nil {
			return fmt.Errorf("failed to count completed lessons: %w", err)
		}
		pct := int(math.Round(float64(completed) * 100 / float64(ready)))
		percentage = &pct
	}

	if err := ps.enrollmentRepo.UpdateProgress(ctx, tx, enrollment.ID, percentage); err != nil {
		return fmt.Errorf("failed to persist progress: %w", err)
	}
	enrollment.ProgressPercentage = percentage
	return nil
}
