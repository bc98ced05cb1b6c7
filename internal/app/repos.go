package app

import (
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/repos"
)

type Repos struct {
	User           repos.UserRepo
	Professor      repos.ProfessorRepo
	Course         repos.CourseRepo
	CourseModule   repos.CourseModuleRepo
	Lesson         repos.LessonRepo
	Enrollment     repos.EnrollmentRepo
	LessonProgress repos.LessonProgressRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		Professor:      repos.NewProfessorRepo(db, log),
		Course:         repos.NewCourseRepo(db, log),
		CourseModule:   repos.NewCourseModuleRepo(db, log),
		Lesson:         repos.NewLessonRepo(db, log),
		Enrollment:     repos.NewEnrollmentRepo(db, log),
		LessonProgress: repos.NewLessonProgressRepo(db, log),
	}
}
