package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/types"
)

type EnrollmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, enrollment *types.Enrollment) (*types.Enrollment, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*types.Enrollment, error)
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.EnrollmentSummary, error)
	UpdateProgress(ctx context.Context, tx *gorm.DB, id uuid.UUID, percentage *int) error
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (r *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollment *types.Enrollment) (*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(enrollment).Error; err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (r *enrollmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var enrollment types.Enrollment
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) GetByStudentAndCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var enrollment types.Enrollment
	err := transaction.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListByStudent returns the student's enrollments joined with course and
// professor details, newest enrollment first.
func (r *enrollmentRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.EnrollmentSummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EnrollmentSummary
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			e.id,
			e.student_id,
			e.course_id,
			e.progress_percentage,
			e.enrolled_at,
			c.title,
			c.description,
			c.thumbnail_url,
			c.status,
			p.user_id AS professor_user_id,
			u.first_name || ' ' || u.last_name AS professor_name,
			COUNT(DISTINCT CASE WHEN l.status = ? THEN l.id END) AS total_lessons,
			COUNT(DISTINCT lp.id) AS completed_lessons
		FROM enrollments e
		JOIN courses c ON e.course_id = c.id
		JOIN professors p ON c.professor_id = p.id
		JOIN users u ON p.user_id = u.id
		LEFT JOIN lessons l ON c.id = l.course_id
		LEFT JOIN lesson_progress lp ON e.id = lp.enrollment_id
		WHERE e.student_id = ?
		GROUP BY e.id, e.student_id, e.course_id, e.progress_percentage, e.enrolled_at, c.title, c.description, c.thumbnail_url, c.status, p.user_id, u.first_name, u.last_name
		ORDER BY e.enrolled_at DESC`, types.LessonStatusReady, studentID).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *enrollmentRepo) UpdateProgress(ctx context.Context, tx *gorm.DB, id uuid.UUID, percentage *int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("id = ?", id).
		Update("progress_percentage", percentage).Error
}
