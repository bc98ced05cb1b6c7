package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thetarnished/academy-backend/internal/http/response"
	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/services"
)

type ModuleHandler struct {
	log           *logger.Logger
	moduleService services.ModuleService
}

func NewModuleHandler(log *logger.Logger, moduleService services.ModuleService) *ModuleHandler {
	return &ModuleHandler{
		log:           log.With("handler", "ModuleHandler"),
		moduleService: moduleService,
	}
}

func (mh *ModuleHandler) Add(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid course id")
		return
	}
	var req struct {
		Title      string `json:"title" binding:"required"`
		OrderIndex *int   `json:"order_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, "invalid request body")
		return
	}
	module, err := mh.moduleService.Add(c.Request.Context(), services.AddModuleInput{
		CourseID:   courseID,
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		response.RespondError(c, mh.log, err)
		return
	}
	response.RespondCreated(c, gin.H{"module": module})
}

func (mh *ModuleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid module id")
		return
	}
	var req struct {
		Title      *string `json:"title"`
		OrderIndex *int    `json:"order_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, "invalid request body")
		return
	}
	module, err := mh.moduleService.Update(c.Request.Context(), id, services.UpdateModuleInput{
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		response.RespondError(c, mh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"module": module})
}

func (mh *ModuleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid module id")
		return
	}
	if err := mh.moduleService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, mh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

func (mh *ModuleHandler) ListByCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid course id")
		return
	}
	modules, err := mh.moduleService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.RespondError(c, mh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"modules": modules})
}
