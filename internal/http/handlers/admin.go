package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thetarnished/academy-backend/internal/http/response"
	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/services"
)

type AdminHandler struct {
	log          *logger.Logger
	adminService services.AdminService
}

func NewAdminHandler(log *logger.Logger, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		log:          log.With("handler", "AdminHandler"),
		adminService: adminService,
	}
}

func (ah *AdminHandler) ListStudents(c *gin.Context) {
	students, err := ah.adminService.ListStudents(c.Request.Context())
	if err != nil {
		response.RespondError(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{"students": students})
}

func (ah *AdminHandler) ListProfessors(c *gin.Context) {
	professors, err := ah.adminService.ListProfessors(c.Request.Context())
	if err != nil {
		response.RespondError(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{"professors": professors})
}

func (ah *AdminHandler) GetStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid user id")
		return
	}
	details, err := ah.adminService.GetStudentDetails(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{"student": details})
}

func (ah *AdminHandler) GetProfessor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid user id")
		return
	}
	details, err := ah.adminService.GetProfessorDetails(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{"professor": details})
}

func (ah *AdminHandler) BanStudent(c *gin.Context) {
	ah.setBanned(c, services.AccountStudent)
}

func (ah *AdminHandler) BanProfessor(c *gin.Context) {
	ah.setBanned(c, services.AccountProfessor)
}

func (ah *AdminHandler) setBanned(c *gin.Context, kind services.AccountKind) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid user id")
		return
	}
	var req struct {
		Banned bool    `json:"banned"`
		Reason *string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, "invalid request body")
		return
	}
	user, err := ah.adminService.SetBanned(c.Request.Context(), kind, id, req.Banned, req.Reason)
	if err != nil {
		response.RespondError(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

func (ah *AdminHandler) DeleteStudent(c *gin.Context) {
	ah.deleteUser(c, services.AccountStudent)
}

func (ah *AdminHandler) DeleteProfessor(c *gin.Context) {
	ah.deleteUser(c, services.AccountProfessor)
}

func (ah *AdminHandler) deleteUser(c *gin.Context, kind services.AccountKind) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid user id")
		return
	}
	if err := ah.adminService.Delete(c.Request.Context(), kind, id); err != nil {
		response.RespondError(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
