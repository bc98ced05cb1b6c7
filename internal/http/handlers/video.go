package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/thetarnished/academy-backend/internal/http/response"
	"github.com/thetarnished/academy-backend/internal/logger"
	"github.com/thetarnished/academy-backend/internal/services"
)

type VideoHandler struct {
	log           *logger.Logger
	videoService  services.VideoService
	lessonService services.LessonService
}

func NewVideoHandler(
	log *logger.Logger,
	videoService services.VideoService,
	lessonService services.LessonService,
) *VideoHandler {
	return &VideoHandler{
		log:           log.With("handler", "VideoHandler"),
		videoService:  videoService,
		lessonService: lessonService,
	}
}

// Upload accepts a multipart "video" file and returns its storage key plus a
// playable URL.
func (vh *VideoHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("video")
	if err != nil {
		response.RespondBadRequest(c, "missing video file")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, vh.log, err)
		return
	}
	defer file.Close()

	key, err := vh.videoService.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		response.RespondError(c, vh.log, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"storage_key": key,
		"url":         vh.videoService.ResolveURL(key),
	})
}

// GetURL resolves a storage key to a playable URL. Signing failures degrade
// to the public URL, so this never 500s on the signer.
func (vh *VideoHandler) GetURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		response.RespondBadRequest(c, "missing key")
		return
	}
	response.RespondOK(c, gin.H{"url": vh.videoService.ResolveURL(key)})
}

func (vh *VideoHandler) CreateLesson(c *gin.Context) {
	var req struct {
		CourseID        uuid.UUID      `json:"course_id" binding:"required"`
		ModuleID        *uuid.UUID     `json:"module_id"`
		Title           string         `json:"title" binding:"required"`
		Description     string         `json:"description"`
		OrderIndex      *int           `json:"order_index"`
		DurationMinutes *int           `json:"duration_minutes"`
		StorageKey      string         `json:"storage_key"`
		VideoURL        string         `json:"video_url"`
		ThumbnailURL    string         `json:"thumbnail_url"`
		Status          string         `json:"status"`
		Metadata        datatypes.JSON `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, "invalid request body")
		return
	}
	lesson, err := vh.lessonService.Create(c.Request.Context(), services.CreateLessonInput{
		CourseID:        req.CourseID,
		ModuleID:        req.ModuleID,
		Title:           req.Title,
		Description:     req.Description,
		OrderIndex:      req.OrderIndex,
		DurationMinutes: req.DurationMinutes,
		StorageKey:      req.StorageKey,
		VideoURL:        req.VideoURL,
		ThumbnailURL:    req.ThumbnailURL,
		Status:          req.Status,
		Metadata:        req.Metadata,
	})
	if err != nil {
		response.RespondError(c, vh.log, err)
		return
	}
	response.RespondCreated(c, gin.H{"lesson": lesson})
}

func (vh *VideoHandler) GetLesson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid lesson id")
		return
	}
	lesson, err := vh.lessonService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, vh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"lesson": lesson})
}

func (vh *VideoHandler) UpdateLesson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid lesson id")
		return
	}
	var req struct {
		ModuleID        *uuid.UUID     `json:"module_id"`
		Title           *string        `json:"title"`
		Description     *string        `json:"description"`
		OrderIndex      *int           `json:"order_index"`
		DurationMinutes *int           `json:"duration_minutes"`
		StorageKey      *string        `json:"storage_key"`
		VideoURL        *string        `json:"video_url"`
		ThumbnailURL    *string        `json:"thumbnail_url"`
		Status          *string        `json:"status"`
		Metadata        datatypes.JSON `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, "invalid request body")
		return
	}
	lesson, err := vh.lessonService.Update(c.Request.Context(), id, services.UpdateLessonInput{
		ModuleID:        req.ModuleID,
		Title:           req.Title,
		Description:     req.Description,
		OrderIndex:      req.OrderIndex,
		DurationMinutes: req.DurationMinutes,
		StorageKey:      req.StorageKey,
		VideoURL:        req.VideoURL,
		ThumbnailURL:    req.ThumbnailURL,
		Status:          req.Status,
		Metadata:        req.Metadata,
	})
	if err != nil {
		response.RespondError(c, vh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"lesson": lesson})
}

func (vh *VideoHandler) DeleteLesson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondBadRequest(c, "invalid lesson id")
		return
	}
	if err := vh.lessonService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, vh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

func (vh *VideoHandler) ListLessonsByCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.RespondBadRequest(c, "invalid course id")
		return
	}
	lessons, err := vh.lessonService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.RespondError(c, vh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"lessons": lessons})
}
