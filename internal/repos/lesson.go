package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/types"
)

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lesson, error)
	// NextOrderIndex scopes to (course, module) when moduleID is set, else
	// to the course alone. First value is 1.
	NextOrderIndex(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, moduleID *uuid.UUID) (int, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.Lesson, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]types.Lesson, error)
	CountReadyByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int64, error)
	ListReadyWithModule(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]types.PreviewLesson, error)
	ListReadyWithProgress(ctx context.Context, tx *gorm.DB, courseID, enrollmentID uuid.UUID) ([]types.EnrolledLesson, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (r *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var lesson types.Lesson
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) NextOrderIndex(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, moduleID *uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var next int
	var err error
	if moduleID != nil {
		err = transaction.WithContext(ctx).Raw(
			`SELECT COALESCE(MAX(order_index), 0) + 1 FROM lessons WHERE course_id = ? AND module_id = ?`,
			courseID, *moduleID).Scan(&next).Error
	} else {
		err = transaction.WithContext(ctx).Raw(
			`SELECT COALESCE(MAX(order_index), 0) + 1 FROM lessons WHERE course_id = ?`,
			courseID).Scan(&next).Error
	}
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *lessonRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, transaction, id)
}

func (r *lessonRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Lesson{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *lessonRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var lessons []types.Lesson
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepo) CountReadyByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Where("course_id = ? AND status = ?", courseID, types.LessonStatusReady).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListReadyWithModule returns the course's ready lessons for the public
// preview, ordered module-first with module-less lessons last.
func (r *lessonRepo) ListReadyWithModule(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]types.PreviewLesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var lessons []types.PreviewLesson
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.course_id,
			l.module_id,
			l.title,
			l.description,
			l.order_index,
			l.duration_minutes,
			l.thumbnail_url,
			l.status,
			m.title AS module_title,
			m.order_index AS module_order
		FROM lessons l
		LEFT JOIN modules m ON l.module_id = m.id
		WHERE l.course_id = ? AND l.status = ?
		ORDER BY COALESCE(m.order_index, 999), l.order_index`,
		courseID, types.LessonStatusReady).
		Scan(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepo) ListReadyWithProgress(ctx context.Context, tx *gorm.DB, courseID, enrollmentID uuid.UUID) ([]types.EnrolledLesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var lessons []types.EnrolledLesson
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.course_id,
			l.module_id,
			l.title,
			l.description,
			l.order_index,
			l.duration_minutes,
			l.storage_key,
			l.video_url,
			l.thumbnail_url,
			l.status,
			m.title AS module_title,
			m.order_index AS module_order,
			lp.completed_at IS NOT NULL AS is_completed,
			lp.watched_duration_seconds
		FROM lessons l
		LEFT JOIN modules m ON l.module_id = m.id
		LEFT JOIN lesson_progress lp ON lp.enrollment_id = ? AND lp.lesson_id = l.id
		WHERE l.course_id = ? AND l.status = ?
		ORDER BY COALESCE(m.order_index, 999), l.order_index`,
		enrollmentID, courseID, types.LessonStatusReady).
		Scan(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}
