package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/types"
)

type ProfessorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, professor *types.Professor) (*types.Professor, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Professor, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Professor, error)
	GetProfile(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ProfessorProfile, error)
}

type professorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfessorRepo(db *gorm.DB, baseLog *logger.Logger) ProfessorRepo {
	return &professorRepo{db: db, log: baseLog.With("repo", "ProfessorRepo")}
}

func (r *professorRepo) Create(ctx context.Context, tx *gorm.DB, professor *types.Professor) (*types.Professor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(professor).Error; err != nil {
		return nil, err
	}
	return professor, nil
}

func (r *professorRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Professor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var professor types.Professor
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&professor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &professor, nil
}

func (r *professorRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Professor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var professor types.Professor
	err := transaction.WithContext(ctx).Where("user_id = ?", userID).First(&professor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &professor, nil
}

func (r *professorRepo) GetProfile(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ProfessorProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var profile types.ProfessorProfile
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.user_id,
			p.bio,
			p.specialization,
			p.created_at,
			u.email,
			u.first_name,
			u.last_name
		FROM professors p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = ?`, id).
		Scan(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.ID == uuid.Nil {
		return nil, nil
	}
	return &profile, nil
}
