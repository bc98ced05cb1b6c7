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

type AddModuleInput struct {
	CourseID   uuid.UUID
	Title      string
	OrderIndex *int
}

type UpdateModuleInput struct {
	Title      *string
	OrderIndex *int
}

type ModuleService interface {
	Add(ctx context.Context, in AddModuleInput) (*types.CourseModule, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateModuleInput) (*types.CourseModule, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]types.CourseModule, error)
}

type moduleService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
	moduleRepo repos.CourseModuleRepo
}

func NewModuleService(
	db *gorm.DB,
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	moduleRepo repos.CourseModuleRepo,
) ModuleService {
	return &moduleService{
		db:         db,
		log:        log.With("service", "ModuleService"),
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
	}
}

// Add appends the module to the course; an omitted order index becomes
// max(sibling)+1, computed in the same transaction as the insert.
func (ms *moduleService) Add(ctx context.Context, in AddModuleInput) (*types.CourseModule, error) {
	if in.Title == "" {
		return nil, apierr.Invalid("missing_title", fmt.Errorf("module title is required"))
	}
	course, err := ms.courseRepo.GetByID(ctx, nil, in.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", fmt.Errorf("course %s not found", in.CourseID))
	}

	module := &types.CourseModule{
		ID:       uuid.New(),
		CourseID: in.CourseID,
		Title:    in.Title,
	}
	err = ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.OrderIndex != nil {
			module.OrderIndex = *in.OrderIndex
		} else {
			next, nErr := ms.moduleRepo.NextOrderIndex(ctx, tx, in.CourseID)
			if nErr != nil {
				return fmt.Errorf("failed to compute order index: %w", nErr)
			}
			module.OrderIndex = next
		}
		if _, cErr := ms.moduleRepo.Create(ctx, tx, module); cErr != nil {
			return fmt.Errorf("failed to create module: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return module, nil
}

func (ms *moduleService) Update(ctx context.Context, id uuid.UUID, in UpdateModuleInput) (*types.CourseModule, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.OrderIndex != nil {
		updates["order_index"] = *in.OrderIndex
	}
	if len(updates) == 0 {
		module, err := ms.moduleRepo.GetByID(ctx, nil, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load module: %w", err)
		}
		if module == nil {
			return nil, apierr.NotFound("module_not_found", fmt.Errorf("module %s not found", id))
		}
		return module, nil
	}

	module, err := ms.moduleRepo.Update(ctx, nil, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update module: %w", err)
	}
	if module == nil {
		return nil, apierr.NotFound("module_not_found", fmt.Errorf("module %s not found", id))
	}
	return module, nil
}

// Delete removes the module; its lessons survive with module_id nulled by
// the store.
func (ms *moduleService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := ms.moduleRepo.Delete(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to delete module: %w", err)
	}
	if !deleted {
		return apierr.NotFound("module_not_found", fmt.Errorf("module %s not found", id))
	}
	return nil
}

func (ms *moduleService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]types.CourseModule, error) {
	modules, err := ms.moduleRepo.ListByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return modules, nil
}
