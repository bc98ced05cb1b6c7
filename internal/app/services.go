package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Bucket     services.BucketService
	Video      services.VideoService
	Course     services.CourseService
	Module     services.ModuleService
	Lesson     services.LessonService
	Professor  services.ProfessorService
	Enrollment services.EnrollmentService
	Progress   services.ProgressService
	Admin      services.AdminService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	bucket, err := services.NewBucketService(log)
	if err != nil {
		return Services{}, fmt.Errorf("init bucket service: %w", err)
	}
	video := services.NewVideoService(log, bucket)

	return Services{
		Auth:       services.NewAuthService(db, log, r.User, r.Professor, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Bucket:     bucket,
		Video:      video,
		Course:     services.NewCourseService(db, log, r.Course, r.CourseModule, r.Lesson, r.Professor),
		Module:     services.NewModuleService(db, log, r.Course, r.CourseModule),
		Lesson:     services.NewLessonService(db, log, r.Course, r.CourseModule, r.Lesson, video),
		Professor:  services.NewProfessorService(db, log, r.Professor, r.Course),
		Enrollment: services.NewEnrollmentService(db, log, r.Course, r.CourseModule, r.Lesson, r.Enrollment, video),
		Progress:   services.NewProgressService(db, log, r.Enrollment, r.Lesson, r.LessonProgress),
		Admin:      services.NewAdminService(db, log, r.User, r.Professor, r.Course, r.Enrollment),
	}, nil
}
