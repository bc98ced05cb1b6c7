package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/types"
)

type LessonProgressRepo interface {
	// Upsert records a completion. Re-completing the same lesson refreshes
	// completed_at; watched_duration_seconds is only overwritten when the new
	// record carries a value, so a bare re-completion keeps the old duration.
	Upsert(ctx context.Context, tx *gorm.DB, progress *types.LessonProgress) (*types.LessonProgress, error)
	GetByEnrollmentAndLesson(ctx context.Context, tx *gorm.DB, enrollmentID, lessonID uuid.UUID) (*types.LessonProgress, error)
	// CountCompletedReady counts completions whose lesson is still ready.
	CountCompletedReady(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID) (int64, error)
}

type lessonProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
	return &lessonProgressRepo{db: db, log: baseLog.With("repo", "LessonProgressRepo")}
}

func (r *lessonProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, progress *types.LessonProgress) (*types.LessonProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	refresh := []string{"completed_at"}
	if progress.WatchedDurationSeconds != nil {
		refresh = append(refresh, "watched_duration_seconds")
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "enrollment_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns(refresh),
		}).
		Create(progress).Error
	if err != nil {
		return nil, err
	}
	return r.GetByEnrollmentAndLesson(ctx, transaction, progress.EnrollmentID, progress.LessonID)
}

func (r *lessonProgressRepo) GetByEnrollmentAndLesson(ctx context.Context, tx *gorm.DB, enrollmentID, lessonID uuid.UUID) (*types.LessonProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var progress types.LessonProgress
	err := transaction.WithContext(ctx).
		Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *lessonProgressRepo) CountCompletedReady(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	err := transaction.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM lesson_progress lp
		JOIN lessons l ON lp.lesson_id = l.id
		WHERE lp.enrollment_id = ? AND l.status = ?`,
		enrollmentID, types.LessonStatusReady).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
