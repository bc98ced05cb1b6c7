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

type CreateCourseInput struct {
	ProfessorID  uuid.UUID
	Title        string
	Description  string
	ThumbnailURL string
	Status       string
}

// UpdateCourseInput merges: nil fields keep their stored value.
type UpdateCourseInput struct {
	Title        *string
	Description  *string
	ThumbnailURL *string
	Status       *string
}

type CourseService interface {
	Create(ctx context.Context, in CreateCourseInput) (*types.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.CourseDetail, error)
	GetByProfessor(ctx context.Context, professorID uuid.UUID) ([]*types.CourseWithCounts, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateCourseInput) (*types.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseService struct {
	db            *gorm.DB
	log           *logger.Logger
	courseRepo    repos.CourseRepo
	moduleRepo    repos.CourseModuleRepo
	lessonRepo    repos.LessonRepo
	professorRepo repos.ProfessorRepo
}

func NewCourseService(
	db *gorm.DB,
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	moduleRepo repos.CourseModuleRepo,
	lessonRepo repos.LessonRepo,
	professorRepo repos.ProfessorRepo,
) CourseService {
	return &courseService{
		db:            db,
		log:           log.With("service", "CourseService"),
		courseRepo:    courseRepo,
		moduleRepo:    moduleRepo,
		lessonRepo:    lessonRepo,
		professorRepo: professorRepo,
	}
}

func (cs *courseService) Create(ctx context.Context, in CreateCourseInput) (*types.Course, error) {
	if in.Title == "" {
		return nil, apierr.Invalid("missing_title", fmt.Errorf("course title is required"))
	}
	professor, err := cs.professorRepo.GetByID(ctx, nil, in.ProfessorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load professor: %w", err)
	}
	if professor == nil {
		return nil, apierr.NotFound("professor_not_found", fmt.Errorf("professor %s not found", in.ProfessorID))
	}

	status := in.Status
	if status == "" {
		status = types.CourseStatusPublished
	}
	if !types.ValidCourseStatus(status) {
		return nil, apierr.Invalid("invalid_status", fmt.Errorf("unknown course status %q", status))
	}

	course := &types.Course{
		ID:           uuid.New(),
		ProfessorID:  in.ProfessorID,
		Title:        in.Title,
		Description:  in.Description,
		ThumbnailURL: in.ThumbnailURL,
		Status:       status,
	}
	if _, err := cs.courseRepo.Create(ctx, nil, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	cs.log.Info("course created", "course_id", course.ID, "professor_id", in.ProfessorID)
	return course, nil
}

// GetByID returns the course with its modules and each module's ordered
// lessons; module-less lessons land under a nil-ID pseudo group at the end.
func (cs *courseService) GetByID(ctx context.Context, id uuid.UUID) (*types.CourseDetail, error) {
	course, err := cs.courseRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", fmt.Errorf("course %s not found", id))
	}

	modules, err := cs.moduleRepo.ListByCourse(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load modules: %w", err)
	}
	lessons, err := cs.lessonRepo.ListByCourse(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}

	byModule := make(map[uuid.UUID][]types.Lesson)
	var unassigned []types.Lesson
	for _, lesson := range lessons {
		if lesson.ModuleID == nil {
			unassigned = append(unassigned, lesson)
			continue
		}
		byModule[*lesson.ModuleID] = append(byModule[*lesson.ModuleID], lesson)
	}

	detail := &types.CourseDetail{Course: *course}
	for _, module := range modules {
		detail.Modules = append(detail.Modules, types.ModuleWithLessons{
			CourseModule: module,
			Lessons:      byModule[module.ID],
		})
	}
	if len(unassigned) > 0 {
		detail.Modules = append(detail.Modules, types.ModuleWithLessons{
			CourseModule: types.CourseModule{CourseID: id},
			Lessons:      unassigned,
		})
	}
	return detail, nil
}

func (cs *courseService) GetByProfessor(ctx context.Context, professorID uuid.UUID) ([]*types.CourseWithCounts, error) {
	courses, err := cs.courseRepo.ListByProfessorWithCounts(ctx, nil, professorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list professor courses: %w", err)
	}
	return courses, nil
}

func (cs *courseService) Update(ctx context.Context, id uuid.UUID, in UpdateCourseInput) (*types.Course, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.ThumbnailURL != nil {
		updates["thumbnail_url"] = *in.ThumbnailURL
	}
	if in.Status != nil {
		if !types.ValidCourseStatus(*in.Status) {
			return nil, apierr.Invalid("invalid_status", fmt.Errorf("unknown course status %q", *in.Status))
		}
		updates["status"] = *in.Status
	}
	if len(updates) == 0 {
		return cs.mustGet(ctx, id)
	}

	course, err := cs.courseRepo.Update(ctx, nil, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", fmt.Errorf("course %s not found", id))
	}
	return course, nil
}

func (cs *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := cs.courseRepo.Delete(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if !deleted {
		return apierr.NotFound("course_not_found", fmt.Errorf("course %s not found", id))
	}
	cs.log.Info("course deleted", "course_id", id)
	return nil
}

func (cs *courseService) mustGet(ctx context.Context, id uuid.UUID) (*types.Course, error) {
	course, err := cs.courseRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", fmt.Errorf("course %s not found", id))
	}
	return course, nil
}
