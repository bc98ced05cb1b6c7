package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/thetarnished/academy-backend/internal/http"
	httpH "github.com/thetarnished/academy-backend/internal/http/handlers"
	httpMW "github.com/thetarnished/academy-backend/internal/http/middleware"
	"github.com/thetarnished/academy-backend/internal/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	Enrollment *httpH.EnrollmentHandler
	Course     *httpH.CourseHandler
	Module     *httpH.ModuleHandler
	Video      *httpH.VideoHandler
	Professor  *httpH.ProfessorHandler
	Admin      *httpH.AdminHandler
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		Auth:       httpH.NewAuthHandler(log, services.Auth),
		Enrollment: httpH.NewEnrollmentHandler(log, services.Enrollment, services.Progress),
		Course:     httpH.NewCourseHandler(log, services.Course, services.Module, services.Professor),
		Module:     httpH.NewModuleHandler(log, services.Module),
		Video:      httpH.NewVideoHandler(log, services.Video, services.Lesson),
		Professor:  httpH.NewProfessorHandler(log, services.Professor),
		Admin:      httpH.NewAdminHandler(log, services.Admin),
	}
}

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		HealthHandler:     handlers.Health,
		AuthHandler:       handlers.Auth,
		AuthMiddleware:    middleware.Auth,
		EnrollmentHandler: handlers.Enrollment,
		CourseHandler:     handlers.Course,
		ModuleHandler:     handlers.Module,
		VideoHandler:      handlers.Video,
		ProfessorHandler:  handlers.Professor,
		AdminHandler:      handlers.Admin,
		AllowedOrigins:    cfg.AllowedOrigins,
	})
}
