package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thetarnished/academy-backend/internal/http/response"
	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/services"
)

type ProfessorHandler struct {
	log              *logger.Logger
	professorService services.ProfessorService
}

func NewProfessorHandler(log *logger.Logger, professorService services.ProfessorService) *ProfessorHandler {
	return &ProfessorHandler{
		log:              log.With("handler", "ProfessorHandler"),
		professorService: professorService,
	}
}

func (ph *ProfessorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid professor id")
		return
	}
	profile, err := ph.professorService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, ph.log, err)
		return
	}
	response.RespondOK(c, gin.H{"professor": profile})
}

func (ph *ProfessorHandler) GetCourses(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid professor id")
		return
	}
	courses, err := ph.professorService.GetCourses(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, ph.log, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": courses})
}
