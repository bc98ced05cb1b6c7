package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/repos"
	"github.com/thetarnished/academy-backend/internal/types"
)

type testEnv struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	professorRepo  repos.ProfessorRepo
	courseRepo     repos.CourseRepo
	moduleRepo     repos.CourseModuleRepo
	lessonRepo     repos.LessonRepo
	enrollmentRepo repos.EnrollmentRepo
	progressRepo   repos.LessonProgressRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&types.User{},
		&types.Professor{},
		&types.Course{},
		&types.CourseModule{},
		&types.Lesson{},
		&types.Enrollment{},
		&types.LessonProgress{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := logger.NewNop()
	return &testEnv{
		db:             db,
		log:            log,
		userRepo:       repos.NewUserRepo(db, log),
		professorRepo:  repos.NewProfessorRepo(db, log),
		courseRepo:     repos.NewCourseRepo(db, log),
		moduleRepo:     repos.NewCourseModuleRepo(db, log),
		lessonRepo:     repos.NewLessonRepo(db, log),
		enrollmentRepo: repos.NewEnrollmentRepo(db, log),
		progressRepo:   repos.NewLessonProgressRepo(db, log),
	}
}

func (te *testEnv) authService() AuthService {
	return NewAuthService(te.db, te.log, te.userRepo, te.professorRepo, "test-secret", time.Hour)
}

func (te *testEnv) courseService() CourseService {
	return NewCourseService(te.db, te.log, te.courseRepo, te.moduleRepo, te.lessonRepo, te.professorRepo)
}

func (te *testEnv) moduleService() ModuleService {
	return NewModuleService(te.db, te.log, te.courseRepo, te.moduleRepo)
}

func (te *testEnv) lessonService(video VideoService) LessonService {
	if video == nil {
		video = NewVideoService(te.log, &fakeBucket{})
	}
	return NewLessonService(te.db, te.log, te.courseRepo, te.moduleRepo, te.lessonRepo, video)
}

func (te *testEnv) enrollmentService() EnrollmentService {
	video := NewVideoService(te.log, &fakeBucket{})
	return NewEnrollmentService(te.db, te.log, te.courseRepo, te.moduleRepo, te.lessonRepo, te.enrollmentRepo, video)
}

func (te *testEnv) progressService() ProgressService {
	return NewProgressService(te.db, te.log, te.enrollmentRepo, te.lessonRepo, te.progressRepo)
}

func (te *testEnv) adminService() AdminService {
	return NewAdminService(te.db, te.log, te.userRepo, te.professorRepo, te.courseRepo, te.enrollmentRepo)
}

func (te *testEnv) seedUser(t *testing.T, email, role string) *types.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &types.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    "Test",
		LastName:     "User",
	}
	if _, err := te.userRepo.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (te *testEnv) seedProfessor(t *testing.T, email string) (*types.User, *types.Professor) {
	t.Helper()
	user := te.seedUser(t, email, types.RoleProfessor)
	professor := &types.Professor{
		ID:             uuid.New(),
		UserID:         user.ID,
		Bio:            "teaches things",
		Specialization: "testing",
	}
	if _, err := te.professorRepo.Create(context.Background(), nil, professor); err != nil {
		t.Fatalf("seed professor: %v", err)
	}
	return user, professor
}

func (te *testEnv) seedCourse(t *testing.T, professorID uuid.UUID, status string) *types.Course {
	t.Helper()
	course := &types.Course{
		ID:          uuid.New(),
		ProfessorID: professorID,
		Title:       "Course " + uuid.NewString()[:8],
		Status:      status,
	}
	if _, err := te.courseRepo.Create(context.Background(), nil, course); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func (te *testEnv) seedLesson(t *testing.T, courseID uuid.UUID, moduleID *uuid.UUID, orderIndex int, status string) *types.Lesson {
	t.Helper()
	lesson := &types.Lesson{
		ID:              uuid.New(),
		CourseID:        courseID,
		ModuleID:        moduleID,
		Title:           "Lesson " + uuid.NewString()[:8],
		OrderIndex:      orderIndex,
		DurationMinutes: types.DefaultLessonDurationMinutes,
		Status:          status,
	}
	if _, err := te.lessonRepo.Create(context.Background(), nil, lesson); err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	return lesson
}

func (te *testEnv) seedEnrollment(t *testing.T, studentID, courseID uuid.UUID) *types.Enrollment {
	t.Helper()
	enrollment := &types.Enrollment{
		ID:         uuid.New(),
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}
	if _, err := te.enrollmentRepo.Create(context.Background(), nil, enrollment); err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return enrollment
}

// fakeBucket records calls and can be told to fail signing, which the video
// service must survive by degrading to the public URL.
type fakeBucket struct {
	failSigning bool
	uploaded    map[string][]byte
	deleted     []string
}

func (fb *fakeBucket) UploadFile(ctx context.Context, key, contentType string, file io.Reader) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	if fb.uploaded == nil {
		fb.uploaded = map[string][]byte{}
	}
	fb.uploaded[key] = data
	return nil
}

func (fb *fakeBucket) DeleteFile(ctx context.Context, key string) error {
	fb.deleted = append(fb.deleted, key)
	return nil
}

func (fb *fakeBucket) SignedURL(key string, ttl time.Duration) (string, error) {
	if fb.failSigning {
		return "", errors.New("signer unavailable")
	}
	return "https://signed.example.com/" + key, nil
}

func (fb *fakeBucket) GetPublicURL(key string) string {
	return "https://public.example.com/" + key
}
