package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/types"
	"github.com/thetarnished/academy-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	port := utils.GetEnv("POSTGRES_PORT", "5432", log)
	user := utils.GetEnv("POSTGRES_USER", "postgres", log)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	name := utils.GetEnv("POSTGRES_NAME", "academy", log)
	sslMode := utils.GetEnv("POSTGRES_SSLMODE", "disable", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslMode)

	serviceLog.Info("Connecting to Postgres...", "host", host, "database", name)
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(
		&types.User{},
		&types.Professor{},
		&types.Course{},
		&types.CourseModule{},
		&types.Lesson{},
		&types.Enrollment{},
		&types.LessonProgress{},
	); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships...")
	// AutoMigrate runs with FK generation disabled; deletes cascade through
	// these store-level rules, not application code.
	constraints := []struct {
		table, name, ddl string
	}{
		{"professors", "fk_professors_user_id",
			`FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`},
		{"courses", "fk_courses_professor_id",
			`FOREIGN KEY ("professor_id") REFERENCES "professors"("id") ON DELETE CASCADE`},
		{"modules", "fk_modules_course_id",
			`FOREIGN KEY ("course_id") REFERENCES "courses"("id") ON DELETE CASCADE`},
		{"lessons", "fk_lessons_course_id",
			`FOREIGN KEY ("course_id") REFERENCES "courses"("id") ON DELETE CASCADE`},
		{"lessons", "fk_lessons_module_id",
			`FOREIGN KEY ("module_id") REFERENCES "modules"("id") ON DELETE SET NULL`},
		{"enrollments", "fk_enrollments_student_id",
			`FOREIGN KEY ("student_id") REFERENCES "users"("id") ON DELETE CASCADE`},
		{"enrollments", "fk_enrollments_course_id",
			`FOREIGN KEY ("course_id") REFERENCES "courses"("id") ON DELETE CASCADE`},
		{"lesson_progress", "fk_lesson_progress_enrollment_id",
			`FOREIGN KEY ("enrollment_id") REFERENCES "enrollments"("id") ON DELETE CASCADE`},
		{"lesson_progress", "fk_lesson_progress_lesson_id",
			`FOREIGN KEY ("lesson_id") REFERENCES "lessons"("id") ON DELETE CASCADE`},
	}
	for _, c := range constraints {
		drop := fmt.Sprintf(`ALTER TABLE "%s" DROP CONSTRAINT IF EXISTS "%s"`, c.table, c.name)
		if err := s.db.Exec(drop).Error; err != nil {
			return fmt.Errorf("drop constraint %s: %w", c.name, err)
		}
		add := fmt.Sprintf(`ALTER TABLE "%s" ADD CONSTRAINT "%s" %s`, c.table, c.name, c.ddl)
		if err := s.db.Exec(add).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
