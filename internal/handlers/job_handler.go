package handlers

import (
	"net/http"

	"jobtrack_backend/internal/middleware"
	"jobtrack_backend/internal/services"
	"jobtrack_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.GET("", h.List)
		jobs.GET("/stats", h.Stats)
		jobs.GET("/:jobId", h.Get)
		jobs.POST("", h.Create)
		jobs.PUT("/:jobId", h.Update)
		jobs.DELETE("/:jobId", h.Delete)
	}
}

func (h *JobHandler) List(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	var q dto.ListJobsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	jobs, err := h.jobService.List(userID, role, q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(jobs),
		"jobs":    jobs,
	})
}

func (h *JobHandler) Stats(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	stats, err := h.jobService.Stats(userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

func (h *JobHandler) Get(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	job, err := h.jobService.Get(userID, role, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job":     job,
	})
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, _, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Job application created successfully",
		"job":     job,
	})
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindJSONStrict(c, &req) {
		return
	}

	job, err := h.jobService.Update(userID, role, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job application updated successfully",
		"job":     job,
	})
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, role, ok := h.Identity(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(userID, role, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job application deleted successfully",
	})
}
