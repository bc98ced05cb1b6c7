package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/apierr"
	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/repos"
	"github.com/thetarnished/academy-backend/internal/types"
)

type CreateLessonInput struct {
	CourseID        uuid.UUID
	ModuleID        *uuid.UUID
	Title           string
	Description     string
	OrderIndex      *int
	DurationMinutes *int
	StorageKey      string
	VideoURL        string
	ThumbnailURL    string
	Status          string
	Metadata        datatypes.JSON
}

type UpdateLessonInput struct {
	ModuleID        *uuid.UUID
	Title           *string
	Description     *string
	OrderIndex      *int
	DurationMinutes *int
	StorageKey      *string
	VideoURL        *string
	ThumbnailURL    *string
	Status          *string
	Metadata        datatypes.JSON
}

type LessonService interface {
	Create(ctx context.Context, in CreateLessonInput) (*types.Lesson, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Lesson, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateLessonInput) (*types.Lesson, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]types.Lesson, error)
}

type lessonService struct {
	db           *gorm.DB
	log          *logger.Logger
	courseRepo   repos.CourseRepo
	moduleRepo   repos.CourseModuleRepo
	lessonRepo   repos.LessonRepo
	videoService VideoService
}

func NewLessonService(
	db *gorm.DB,
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	moduleRepo repos.CourseModuleRepo,
	lessonRepo repos.LessonRepo,
	videoService VideoService,
) LessonService {
	return &lessonService{
		db:           db,
		log:          log.With("service", "LessonService"),
		courseRepo:   courseRepo,
		moduleRepo:   moduleRepo,
		lessonRepo:   lessonRepo,
		videoService: videoService,
	}
}

// Create appends the lesson to its course. The order index scopes to the
// module when one is given, otherwise to the whole course.
func (ls *lessonService) Create(ctx context.Context, in CreateLessonInput) (*types.Lesson, error) {
	if in.Title == "" {
		return nil, apierr.Invalid("missing_title", fmt.Errorf("lesson title is required"))
	}
	course, err := ls.courseRepo.GetByID(ctx, nil, in.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", fmt.Errorf("course %s not found", in.CourseID))
	}
	if in.ModuleID != nil {
		module, mErr := ls.moduleRepo.GetByID(ctx, nil, *in.ModuleID)
		if mErr != nil {
			return nil, fmt.Errorf("failed to load module: %w", mErr)
		}
		if module == nil || module.CourseID != in.CourseID {
			return nil, apierr.NotFound("module_not_found", fmt.Errorf("module %s not found in course", *in.ModuleID))
		}
	}

	status := in.Status
	if status == "" {
		status = types.LessonStatusDraft
	}
	if !types.ValidLessonStatus(status) {
		return nil, apierr.Invalid("invalid_status", fmt.Errorf("unknown lesson status %q", status))
	}

	duration := types.DefaultLessonDurationMinutes
	if in.DurationMinutes != nil {
		duration = *in.DurationMinutes
	}

	lesson := &types.Lesson{
		ID:              uuid.New(),
		CourseID:        in.CourseID,
		ModuleID:        in.ModuleID,
		Title:           in.Title,
		Description:     in.Description,
		DurationMinutes: duration,
		StorageKey:      in.StorageKey,
		VideoURL:        in.VideoURL,
		ThumbnailURL:    in.ThumbnailURL,
		Status:          status,
		Metadata:        in.Metadata,
	}
	err = ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.OrderIndex != nil {
			lesson.OrderIndex = *in.OrderIndex
		} else {
			next, nErr := ls.lessonRepo.NextOrderIndex(ctx, tx, in.CourseID, in.ModuleID)
			if nErr != nil {
				return fmt.Errorf("failed to compute order index: %w", nErr)
			}
			lesson.OrderIndex = next
		}
		if _, cErr := ls.lessonRepo.Create(ctx, tx, lesson); cErr != nil {
			return fmt.Errorf("failed to create lesson: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ls.log.Info("lesson created", "lesson_id", lesson.ID, "course_id", in.CourseID)
	return lesson, nil
}

func (ls *lessonService) GetByID(ctx context.Context, id uuid.UUID) (*types.Lesson, error) {
	lesson, err := ls.lessonRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	if lesson == nil {
		return nil, apierr.NotFound("lesson_not_found", fmt.Errorf("lesson %s not found", id))
	}
	return lesson, nil
}

func (ls *lessonService) Update(ctx context.Context, id uuid.UUID, in UpdateLessonInput) (*types.Lesson, error) {
	updates := map[string]interface{}{}
	if in.ModuleID != nil {
		updates["module_id"] = *in.ModuleID
	}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.OrderIndex != nil {
		updates["order_index"] = *in.OrderIndex
	}
	if in.DurationMinutes != nil {
		updates["duration_minutes"] = *in.DurationMinutes
	}
	if in.StorageKey != nil {
		updates["storage_key"] = *in.StorageKey
	}
	if in.VideoURL != nil {
		updates["video_url"] = *in.VideoURL
	}
	if in.ThumbnailURL != nil {
		updates["thumbnail_url"] = *in.ThumbnailURL
	}
	if in.Status != nil {
		if !types.ValidLessonStatus(*in.Status) {
			return nil, apierr.Invalid("invalid_status", fmt.Errorf("unknown lesson status %q", *in.Status))
		}
		updates["status"] = *in.Status
	}
	if in.Metadata != nil {
		updates["metadata"] = in.Metadata
	}
	if len(updates) == 0 {
		return ls.GetByID(ctx, id)
	}

	lesson, err := ls.lessonRepo.Update(ctx, nil, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}
	if lesson == nil {
		return nil, apierr.NotFound("lesson_not_found", fmt.Errorf("lesson %s not found", id))
	}
	return lesson, nil
}

// Delete removes the row and then best-effort deletes the stored video; a
// storage failure never undoes the database delete.
func (ls *lessonService) Delete(ctx context.Context, id uuid.UUID) error {
	lesson, err := ls.lessonRepo.GetByID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to load lesson: %w", err)
	}
	if lesson == nil {
		return apierr.NotFound("lesson_not_found", fmt.Errorf("lesson %s not found", id))
	}

	if _, err := ls.lessonRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	if lesson.StorageKey != "" {
		if dErr := ls.videoService.Delete(ctx, lesson.StorageKey); dErr != nil {
			ls.log.Warn("failed to delete lesson video", "key", lesson.StorageKey, "error", dErr)
		}
	}
	return nil
}

func (ls *lessonService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]types.Lesson, error) {
	lessons, err := ls.lessonRepo.ListByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}
