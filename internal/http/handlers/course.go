package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thetarnished/academy-backend/internal/http/response"
	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/requestdata"
	"github.com/thetarnished/academy-backend/internal/services"
	"github.com/thetarnished/academy-backend/internal/types"
)

type CourseHandler struct {
	log              *logger.Logger
	courseService    services.CourseService
	moduleService    services.ModuleService
	professorService services.ProfessorService
}

func NewCourseHandler(
	log *logger.Logger,
	courseService services.CourseService,
	moduleService services.ModuleService,
	professorService services.ProfessorService,
) *CourseHandler {
	return &CourseHandler{
		log:              log.With("handler", "CourseHandler"),
		courseService:    courseService,
		moduleService:    moduleService,
		professorService: professorService,
	}
}

// Create resolves the authoring professor from the token. Admins may create
// on behalf of another professor via professor_id.
func (ch *CourseHandler) Create(c *gin.Context) {
	var req struct {
		Title        string     `json:"title" binding:"required"`
		Description  string     `json:"description"`
		ThumbnailURL string     `json:"thumbnail_url"`
		Status       string     `json:"status"`
		ProfessorID  *uuid.UUID `json:"professor_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, "invalid request body")
		return
	}

	rd := requestdata.GetRequestData(c.Request.Context())
	var professorID uuid.UUID
	if rd.Role == types.RoleAdmin && req.ProfessorID != nil {
		professorID = *req.ProfessorID
	} else {
		professor, err := ch.professorService.GetByUserID(c.Request.Context(), rd.UserID)
		if err != nil {
			response.RespondError(c, ch.log, err)
			return
		}
		professorID = professor.ID
	}

	course, err := ch.courseService.Create(c.Request.Context(), services.CreateCourseInput{
		ProfessorID:  professorID,
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		Status:       req.Status,
	})
	if err != nil {
		response.RespondError(c, ch.log, err)
		return
	}
	response.RespondCreated(c, gin.H{"course": course})
}

func (ch *CourseHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid course id")
		return
	}
	detail, err := ch.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, ch.log, err)
		return
	}
	response.RespondOK(c, gin.H{"course": detail})
}

func (ch *CourseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid course id")
		return
	}
	var req struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		ThumbnailURL *string `json:"thumbnail_url"`
		Status       *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, "invalid request body")
		return
	}
	course, err := ch.courseService.Update(c.Request.Context(), id, services.UpdateCourseInput{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		Status:       req.Status,
	})
	if err != nil {
		response.RespondError(c, ch.log, err)
		return
	}
	response.RespondOK(c, gin.H{"course": course})
}

func (ch *CourseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid course id")
		return
	}
	if err := ch.courseService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, ch.log, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

func (ch *CourseHandler) ListByProfessor(c *gin.Context) {
	professorID, err := uuid.Parse(c.Param("professorId"))
	if err != nil {
		response.RespondBadRequest(c, "invalid professor id")
		return
	}
	courses, err := ch.courseService.GetByProfessor(c.Request.Context(), professorID)
	if err != nil {
		response.RespondError(c, ch.log, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": courses})
}
