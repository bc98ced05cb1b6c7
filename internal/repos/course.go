package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/types"
)

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, course *types.Course) (*types.Course, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error)
	// Update applies only the given column values; absent columns keep their
	// stored value. Returns nil when no row matched.
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.Course, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	ListAvailable(ctx context.Context, tx *gorm.DB) ([]*types.AvailableCourse, error)
	GetPreviewHeader(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CoursePreview, error)
	ListByProfessorWithCounts(ctx context.Context, tx *gorm.DB, professorID uuid.UUID) ([]*types.CourseWithCounts, error)
	GetEnrolledHeader(ctx context.Context, tx *gorm.DB, courseID, studentID uuid.UUID) (*types.EnrolledCourse, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, course *types.Course) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (r *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var course types.Course
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Course{}).
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

func (r *courseRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Course{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListAvailable returns published courses with denormalized counts, newest
// first. Only ready lessons count.
func (r *courseRepo) ListAvailable(ctx context.Context, tx *gorm.DB) ([]*types.AvailableCourse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AvailableCourse
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.title,
			c.description,
			c.thumbnail_url,
			c.status,
			c.created_at,
			c.professor_id,
			p.user_id AS professor_user_id,
			u.first_name || ' ' || u.last_name AS professor_name,
			COUNT(DISTINCT l.id) AS lessons_count,
			COUNT(DISTINCT m.id) AS modules_count,
			COUNT(DISTINCT e.id) AS enrolled_students_count
		FROM courses c
		JOIN professors p ON c.professor_id = p.id
		JOIN users u ON p.user_id = u.id
		LEFT JOIN modules m ON c.id = m.course_id
		LEFT JOIN lessons l ON c.id = l.course_id AND l.status = ?
		LEFT JOIN enrollments e ON c.id = e.course_id
		WHERE c.status = ?
		GROUP BY c.id, c.title, c.description, c.thumbnail_url, c.status, c.created_at, c.professor_id, p.user_id, u.first_name, u.last_name
		ORDER BY c.created_at DESC`, types.LessonStatusReady, types.CourseStatusPublished).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetPreviewHeader loads the course header for the public preview. The
// status is deliberately not filtered here; see the catalog policy note in
// DESIGN.md.
func (r *courseRepo) GetPreviewHeader(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CoursePreview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var preview types.CoursePreview
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.title,
			c.description,
			c.thumbnail_url,
			c.status,
			c.created_at,
			c.professor_id,
			p.user_id AS professor_user_id,
			u.first_name || ' ' || u.last_name AS professor_name,
			p.bio AS professor_bio,
			p.specialization,
			COUNT(DISTINCT CASE WHEN l.status = ? THEN l.id END) AS lessons_count,
			COUNT(DISTINCT m.id) AS modules_count,
			COUNT(DISTINCT e.id) AS enrolled_students_count,
			COALESCE(SUM(l.duration_minutes), 0) AS total_duration_minutes
		FROM courses c
		JOIN professors p ON c.professor_id = p.id
		JOIN users u ON p.user_id = u.id
		LEFT JOIN modules m ON c.id = m.course_id
		LEFT JOIN lessons l ON c.id = l.course_id
		LEFT JOIN enrollments e ON c.id = e.course_id
		WHERE c.id = ?
		GROUP BY c.id, c.title, c.description, c.thumbnail_url, c.status, c.created_at, c.professor_id, p.user_id, u.first_name, u.last_name, p.bio, p.specialization`,
		types.LessonStatusReady, id).
		Scan(&preview).Error
	if err != nil {
		return nil, err
	}
	if preview.ID == uuid.Nil {
		return nil, nil
	}
	return &preview, nil
}

func (r *courseRepo) ListByProfessorWithCounts(ctx context.Context, tx *gorm.DB, professorID uuid.UUID) ([]*types.CourseWithCounts, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseWithCounts
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.professor_id,
			c.title,
			c.description,
			c.thumbnail_url,
			c.status,
			c.created_at,
			COUNT(DISTINCT l.id) AS lessons_count,
			COUNT(DISTINCT m.id) AS modules_count,
			COUNT(DISTINCT e.id) AS enrollments_count
		FROM courses c
		LEFT JOIN modules m ON c.id = m.course_id
		LEFT JOIN lessons l ON c.id = l.course_id
		LEFT JOIN enrollments e ON c.id = e.course_id
		WHERE c.professor_id = ?
		GROUP BY c.id, c.professor_id, c.title, c.description, c.thumbnail_url, c.status, c.created_at
		ORDER BY c.created_at DESC`, professorID).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetEnrolledHeader loads the course header joined with the student's own
// enrollment. Returns nil when the course or the enrollment is missing.
func (r *courseRepo) GetEnrolledHeader(ctx context.Context, tx *gorm.DB, courseID, studentID uuid.UUID) (*types.EnrolledCourse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var header types.EnrolledCourse
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.title,
			c.description,
			c.thumbnail_url,
			c.status,
			p.user_id AS professor_user_id,
			u.first_name || ' ' || u.last_name AS professor_name,
			e.progress_percentage,
			e.enrolled_at
		FROM courses c
		JOIN professors p ON c.professor_id = p.id
		JOIN users u ON p.user_id = u.id
		JOIN enrollments e ON c.id = e.course_id
		WHERE c.id = ? AND e.student_id = ?`, courseID, studentID).
		Scan(&header).Error
	if err != nil {
		return nil, err
	}
	if header.ID == uuid.Nil {
		return nil, nil
	}
	return &header, nil
}
