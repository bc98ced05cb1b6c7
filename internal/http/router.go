package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/thetarnished/academy-backend/internal/http/handlers"
	httpMW "github.com/thetarnished/academy-backend/internal/http/middleware"
	"github.com/thetarnished/academy-backend/internal/types"
)

type RouterConfig struct {
	AuthHandler       *httpH.AuthHandler
	AuthMiddleware    *httpMW.AuthMiddleware
	EnrollmentHandler *httpH.EnrollmentHandler
	CourseHandler     *httpH.CourseHandler
	ModuleHandler     *httpH.ModuleHandler
	VideoHandler      *httpH.VideoHandler
	ProfessorHandler  *httpH.ProfessorHandler
	AdminHandler      *httpH.AdminHandler
	HealthHandler     *httpH.HealthHandler

	AllowedOrigins string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}

		// Public catalog
		if cfg.EnrollmentHandler != nil {
			api.GET("/enrollments/courses/available", cfg.EnrollmentHandler.ListAvailable)
			api.GET("/enrollments/courses/:courseId/preview", cfg.EnrollmentHandler.Preview)
		}
		if cfg.VideoHandler != nil {
			api.GET("/videos/url", cfg.VideoHandler.GetURL)
		}
		if cfg.ProfessorHandler != nil {
			api.GET("/professors/:id", cfg.ProfessorHandler.GetByID)
			api.GET("/professors/:id/courses", cfg.ProfessorHandler.GetCourses)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Student enrollment + progress
		if cfg.EnrollmentHandler != nil && cfg.AuthMiddleware != nil {
			protected.POST("/enrollments/enroll", cfg.EnrollmentHandler.Enroll)
			protected.POST("/enrollments/lessons/complete", cfg.EnrollmentHandler.CompleteLesson)

			selfScoped := cfg.AuthMiddleware.RequireSelfStudent("studentId")
			protected.GET("/enrollments/students/:studentId/enrollments", selfScoped, cfg.EnrollmentHandler.ListByStudent)
			protected.GET("/enrollments/students/:studentId/courses/:courseId", selfScoped, cfg.EnrollmentHandler.EnrolledCourse)
			protected.GET("/enrollments/students/:studentId/courses/:courseId/enrollment", selfScoped, cfg.EnrollmentHandler.CheckEnrollment)
		}

		// Course authoring (professor or admin)
		if cfg.CourseHandler != nil && cfg.AuthMiddleware != nil {
			authoring := cfg.AuthMiddleware.RequireRole(types.RoleProfessor, types.RoleAdmin)
			protected.POST("/courses", authoring, cfg.CourseHandler.Create)
			protected.GET("/courses/:id", cfg.CourseHandler.GetByID)
			protected.PUT("/courses/:id", authoring, cfg.CourseHandler.Update)
			protected.DELETE("/courses/:id", authoring, cfg.CourseHandler.Delete)
			protected.GET("/courses/professor/:professorId", cfg.CourseHandler.ListByProfessor)

			if cfg.ModuleHandler != nil {
				protected.POST("/courses/:id/modules", authoring, cfg.ModuleHandler.Add)
				protected.GET("/courses/:id/modules", cfg.ModuleHandler.ListByCourse)
				protected.PUT("/modules/:id", authoring, cfg.ModuleHandler.Update)
				protected.DELETE("/modules/:id", authoring, cfg.ModuleHandler.Delete)
			}
		}

		// Video + lesson authoring (professor or admin)
		if cfg.VideoHandler != nil && cfg.AuthMiddleware != nil {
			authoring := cfg.AuthMiddleware.RequireRole(types.RoleProfessor, types.RoleAdmin)
			protected.POST("/videos/upload", authoring, cfg.VideoHandler.Upload)
			protected.POST("/videos/lessons", authoring, cfg.VideoHandler.CreateLesson)
			protected.GET("/videos/lessons/:id", cfg.VideoHandler.GetLesson)
			protected.PUT("/videos/lessons/:id", authoring, cfg.VideoHandler.UpdateLesson)
			protected.DELETE("/videos/lessons/:id", authoring, cfg.VideoHandler.DeleteLesson)
			protected.GET("/videos/lessons/course/:courseId", cfg.VideoHandler.ListLessonsByCourse)
		}

		// Admin
		if cfg.AdminHandler != nil && cfg.AuthMiddleware != nil {
			admin := protected.Group("/admin", cfg.AuthMiddleware.RequireRole(types.RoleAdmin))
			admin.GET("/students", cfg.AdminHandler.ListStudents)
			admin.GET("/students/:id", cfg.AdminHandler.GetStudent)
			admin.PUT("/students/:id/ban", cfg.AdminHandler.BanStudent)
			admin.DELETE("/students/:id", cfg.AdminHandler.DeleteStudent)
			admin.GET("/professors", cfg.AdminHandler.ListProfessors)
			admin.GET("/professors/:id", cfg.AdminHandler.GetProfessor)
			admin.PUT("/professors/:id/ban", cfg.AdminHandler.BanProfessor)
			admin.DELETE("/professors/:id", cfg.AdminHandler.DeleteProfessor)
		}
	}

	return r
}
