package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thetarnished/academy-backend/internal/http/response"
	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/requestdata"
	"github.com/thetarnished/academy-backend/internal/services"
)

type EnrollmentHandler struct {
	log               *logger.Logger
	enrollmentService services.EnrollmentService
	progressService   services.ProgressService
}

func NewEnrollmentHandler(
	log *logger.Logger,
	enrollmentService services.EnrollmentService,
	progressService services.ProgressService,
) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:               log.With("handler", "EnrollmentHandler"),
		enrollmentService: enrollmentService,
		progressService:   progressService,
	}
}

func (eh *EnrollmentHandler) ListAvailable(c *gin.Context) {
	courses, err := eh.enrollmentService.ListAvailableCourses(c.Request.Context())
	if err != nil {
		response.RespondError(c, eh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": courses})
}

func (eh *EnrollmentHandler) Preview(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.RespondBadRequest(c, "invalid course id")
		return
	}
	preview, err := eh.enrollmentService.GetCoursePreview(c.Request.Context(), courseID)
	if err != nil {
		response.RespondError(c, eh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"course": preview})
}

// Enroll uses the token subject as the student id; a client-supplied
// student_id is ignored.
func (eh *EnrollmentHandler) Enroll(c *gin.Context) {
	var req struct {
		CourseID uuid.UUID `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, "invalid request body")
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	enrollment, err := eh.enrollmentService.Enroll(c.Request.Context(), rd.UserID, req.CourseID)
	if err != nil {
		response.RespondError(c, eh.log, err)
		return
	}
	response.RespondCreated(c, gin.H{"enrollment": enrollment})
}

func (eh *EnrollmentHandler) ListByStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		response.RespondBadRequest(c, "invalid student id")
		return
	}
	enrollments, err := eh.enrollmentService.GetStudentEnrollments(c.Request.Context(), studentID)
	if err != nil {
		response.RespondError(c, eh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"enrollments": enrollments})
}

func (eh *EnrollmentHandler) CheckEnrollment(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		response.RespondBadRequest(c, "invalid student id")
		return
	}
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.RespondBadRequest(c, "invalid course id")
		return
	}
	enrollment, err := eh.enrollmentService.CheckEnrollment(c.Request.Context(), studentID, courseID)
	if err != nil {
		response.RespondError(c, eh.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"enrolled":   enrollment != nil,
		"enrollment": enrollment,
	})
}

func (eh *EnrollmentHandler) EnrolledCourse(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		response.RespondBadRequest(c, "invalid student id")
		return
	}
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.RespondBadRequest(c, "invalid course id")
		return
	}
	course, err := eh.enrollmentService.GetEnrolledCourseDetails(c.Request.Context(), studentID, courseID)
	if err != nil {
		response.RespondError(c, eh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"course": course})
}

func (eh *EnrollmentHandler) CompleteLesson(c *gin.Context) {
	var req struct {
		EnrollmentID           uuid.UUID `json:"enrollment_id" binding:"required"`
		LessonID               uuid.UUID `json:"lesson_id" binding:"required"`
		WatchedDurationSeconds *int      `json:"watched_duration_seconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, "enrollment_id and lesson_id are required")
		return
	}

	result, err := eh.progressService.CompleteLesson(c.Request.Context(), req.EnrollmentID, req.LessonID, req.WatchedDurationSeconds)
	if err != nil {
		response.RespondError(c, eh.log, err)
		return
	}
	response.RespondOK(c, result)
}
