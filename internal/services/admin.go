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

// AccountKind selects which role an admin operation targets. Operations 404
// when the id exists under a different role.
type AccountKind string

const (
	AccountStudent   AccountKind = "student"
	AccountProfessor AccountKind = "professor"
)

func (k AccountKind) role() (string, error) {
	switch k {
	case AccountStudent:
		return types.RoleStudent, nil
	case AccountProfessor:
		return types.RoleProfessor, nil
	}
	return "", apierr.Invalid("invalid_account_kind", fmt.Errorf("unknown account kind %q", k))
}

type AdminService interface {
	ListStudents(ctx context.Context) ([]*types.StudentOverview, error)
	ListProfessors(ctx context.Context) ([]*types.ProfessorOverview, error)
	GetUser(ctx context.Context, kind AccountKind, id uuid.UUID) (*types.User, error)
	GetStudentDetails(ctx context.Context, id uuid.UUID) (*types.StudentDetails, error)
	GetProfessorDetails(ctx context.Context, id uuid.UUID) (*types.ProfessorDetails, error)
	SetBanned(ctx context.Context, kind AccountKind, id uuid.UUID, banned bool, reason *string) (*types.User, error)
	Delete(ctx context.Context, kind AccountKind, id uuid.UUID) error
}

type adminService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	professorRepo  repos.ProfessorRepo
	courseRepo     repos.CourseRepo
	enrollmentRepo repos.EnrollmentRepo
}

func NewAdminService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	professorRepo repos.ProfessorRepo,
	courseRepo repos.CourseRepo,
	enrollmentRepo repos.EnrollmentRepo,
) AdminService {
	return &adminService{
		db:             db,
		log:            log.With("service", "AdminService"),
		userRepo:       userRepo,
		professorRepo:  professorRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (as *adminService) ListStudents(ctx context.Context) ([]*types.StudentOverview, error) {
	students, err := as.userRepo.ListStudentOverviews(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (as *adminService) ListProfessors(ctx context.Context) ([]*types.ProfessorOverview, error) {
	professors, err := as.userRepo.ListProfessorOverviews(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list professors: %w", err)
	}
	return professors, nil
}

func (as *adminService) GetUser(ctx context.Context, kind AccountKind, id uuid.UUID) (*types.User, error) {
	role, err := kind.role()
	if err != nil {
		return nil, err
	}
	user, err := as.userRepo.GetByIDAndRole(ctx, nil, id, role)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("%s %s not found", role, id))
	}
	return user, nil
}

func (as *adminService) GetStudentDetails(ctx context.Context, id uuid.UUID) (*types.StudentDetails, error) {
	user, err := as.GetUser(ctx, AccountStudent, id)
	if err != nil {
		return nil, err
	}
	enrollments, err := as.enrollmentRepo.ListByStudent(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load student enrollments: %w", err)
	}
	return &types.StudentDetails{User: *user, Enrollments: enrollments}, nil
}

func (as *adminService) GetProfessorDetails(ctx context.Context, id uuid.UUID) (*types.ProfessorDetails, error) {
	user, err := as.GetUser(ctx, AccountProfessor, id)
	if err != nil {
		return nil, err
	}
	details := &types.ProfessorDetails{User: *user, Courses: []*types.CourseWithCounts{}}

	professor, err := as.professorRepo.GetByUserID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load professor profile: %w", err)
	}
	if professor != nil {
		details.Profile = professor
		courses, err := as.courseRepo.ListByProfessorWithCounts(ctx, nil, professor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load professor courses: %w", err)
		}
		details.Courses = courses
	}
	return details, nil
}

// SetBanned is idempotent: re-banning refreshes the reason and timestamp,
// re-unbanning is a no-op.
func (as *adminService) SetBanned(ctx context.Context, kind AccountKind, id uuid.UUID, banned bool, reason *string) (*types.User, error) {
	role, err := kind.role()
	if err != nil {
		return nil, err
	}
	user, err := as.userRepo.SetBanned(ctx, nil, id, role, banned, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to update ban state: %w", err)
	}
	if user == nil {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("%s %s not found", role, id))
	}
	as.log.Info("ban state changed", "user_id", id, "role", role, "banned", banned)
	return user, nil
}

// Delete removes the root user row; enrollments, professor profile, courses
// and progress go with it through the store's cascades.
func (as *adminService) Delete(ctx context.Context, kind AccountKind, id uuid.UUID) error {
	role, err := kind.role()
	if err != nil {
		return err
	}
	deleted, err := as.userRepo.DeleteByIDAndRole(ctx, nil, id, role)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return apierr.NotFound("user_not_found", fmt.Errorf("%s %s not found", role, id))
	}
	as.log.Info("account deleted", "user_id", id, "role", role)
	return nil
}
