package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	GetByIDAndRole(ctx context.Context, tx *gorm.DB, id uuid.UUID, role string) (*types.User, error)
	SetBanned(ctx context.Context, tx *gorm.DB, id uuid.UUID, role string, banned bool, reason *string) (*types.User, error)
	DeleteByIDAndRole(ctx context.Context, tx *gorm.DB, id uuid.UUID, role string) (bool, error)
	ListStudentOverviews(ctx context.Context, tx *gorm.DB) ([]*types.StudentOverview, error)
	ListProfessorOverviews(ctx context.Context, tx *gorm.DB) ([]*types.ProfessorOverview, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var user types.User
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var user types.User
	err := transaction.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) GetByIDAndRole(ctx context.Context, tx *gorm.DB, id uuid.UUID, role string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var user types.User
	err := transaction.WithContext(ctx).Where("id = ? AND role = ?", id, role).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetBanned flips the ban flag for a user of the given role. Banning stamps
// banned_at; unbanning clears it. Returns nil when no such user exists.
func (r *userRepo) SetBanned(ctx context.Context, tx *gorm.DB, id uuid.UUID, role string, banned bool, reason *string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"banned":        banned,
		"banned_reason": reason,
		"updated_at":    now,
	}
	if banned {
		updates["banned_at"] = now
	} else {
		updates["banned_at"] = nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ? AND role = ?", id, role).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, transaction, id)
}

func (r *userRepo) DeleteByIDAndRole(ctx context.Context, tx *gorm.DB, id uuid.UUID, role string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ? AND role = ?", id, role).
		Delete(&types.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepo) ListStudentOverviews(ctx context.Context, tx *gorm.DB) ([]*types.StudentOverview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.StudentOverview
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.email,
			u.first_name,
			u.last_name,
			u.banned,
			u.banned_at,
			u.banned_reason,
			u.created_at,
			COUNT(DISTINCT e.id) AS total_enrollments,
			COUNT(DISTINCT lp.id) AS completed_lessons
		FROM users u
		LEFT JOIN enrollments e ON u.id = e.student_id
		LEFT JOIN lesson_progress lp ON e.id = lp.enrollment_id
		WHERE u.role = ?
		GROUP BY u.id, u.email, u.first_name, u.last_name, u.banned, u.banned_at, u.banned_reason, u.created_at
		ORDER BY u.created_at DESC`, types.RoleStudent).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRepo) ListProfessorOverviews(ctx context.Context, tx *gorm.DB) ([]*types.ProfessorOverview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProfessorOverview
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.email,
			u.first_name,
			u.last_name,
			u.banned,
			u.banned_at,
			u.banned_reason,
			u.created_at,
			p.id AS professor_id,
			p.bio,
			p.specialization,
			COUNT(DISTINCT c.id) AS total_courses,
			COUNT(DISTINCT l.id) AS total_lessons,
			COUNT(DISTINCT e.id) AS total_enrollments
		FROM users u
		JOIN professors p ON u.id = p.user_id
		LEFT JOIN courses c ON p.id = c.professor_id
		LEFT JOIN lessons l ON c.id = l.course_id
		LEFT JOIN enrollments e ON c.id = e.course_id
		WHERE u.role = ?
		GROUP BY u.id, u.email, u.first_name, u.last_name, u.banned, u.banned_at, u.banned_reason, u.created_at, p.id, p.bio, p.specialization
		ORDER BY u.created_at DESC`, types.RoleProfessor).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
