package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/types"
)

type CourseModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, module *types.CourseModule) (*types.CourseModule, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseModule, error)
	// NextOrderIndex yields max(order_index)+1 among the course's modules,
	// or 1 when the course has none.
	NextOrderIndex(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.CourseModule, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]types.CourseModule, error)
}

type courseModuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseModuleRepo(db *gorm.DB, baseLog *logger.Logger) CourseModuleRepo {
	return &courseModuleRepo{db: db, log: baseLog.With("repo", "CourseModuleRepo")}
}

func (r *courseModuleRepo) Create(ctx context.Context, tx *gorm.DB, module *types.CourseModule) (*types.CourseModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(module).Error; err != nil {
		return nil, err
	}
	return module, nil
}

func (r *courseModuleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var module types.CourseModule
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&module).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *courseModuleRepo) NextOrderIndex(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var next int
	err := transaction.WithContext(ctx).Raw(
		`SELECT COALESCE(MAX(order_index), 0) + 1 FROM modules WHERE course_id = ?`, courseID).
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *courseModuleRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.CourseModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.CourseModule{}).
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

func (r *courseModuleRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.CourseModule{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *courseModuleRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]types.CourseModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var modules []types.CourseModule
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_index").
		Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}
