package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/apierr"
	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/repos"
	"github.com/thetarnished/academy-backend/internal/types"
)

type ProfessorService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*types.ProfessorProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Professor, error)
	GetCourses(ctx context.Context, id uuid.UUID) ([]*types.CourseWithCounts, error)
}

type professorService struct {
	db            *gorm.DB
	log           *logger.Logger
	professorRepo repos.ProfessorRepo
	courseRepo    repos.CourseRepo
}

func NewProfessorService(
	db *gorm.DB,
	log *logger.Logger,
	professorRepo repos.ProfessorRepo,
	courseRepo repos.CourseRepo,
) ProfessorService {
	return &professorService{
		db:            db,
		log:           log.With("service", "ProfessorService"),
		professorRepo: professorRepo,
		courseRepo:    courseRepo,
	}
}

func (ps *professorService) GetByID(ctx context.Context, id uuid.UUID) (*types.ProfessorProfile, error) {
	profile, err := ps.professorRepo.GetProfile(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load professor: %w", err)
	}
	if profile == nil {
		return nil, apierr.NotFound("professor_not_found", fmt.Errorf("professor %s not found", id))
	}
	return profile, nil
}

func (ps *professorService) GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Professor, error) {
	professor, err := ps.professorRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load professor: %w", err)
	}
	if professor == nil {
		return nil, apierr.NotFound("professor_not_found", fmt.Errorf("no professor profile for user %s", userID))
	}
	return professor, nil
}

func (ps *professorService) GetCourses(ctx context.Context, id uuid.UUID) ([]*types.CourseWithCounts, error) {
	professor, err := ps.professorRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load professor: %w", err)
	}
	if professor == nil {
		return nil, apierr.NotFound("professor_not_found", fmt.Errorf("professor %s not found", id))
	}
	courses, err := ps.courseRepo.ListByProfessorWithCounts(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}
