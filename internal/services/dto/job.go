package dto

import (
	"time"

	"jobtrack_backend/internal/models"
)

type CreateJobRequest struct {
	Company     string           `json:"company" binding:"required"`
	Role        string           `json:"role" binding:"required"`
	Status      models.JobStatus `json:"status,omitempty" binding:"omitempty,oneof=Applied Interview Offer Rejected Accepted"`
	AppliedDate *time.Time       `json:"appliedDate,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Location    string           `json:"location,omitempty"`
	Salary      string           `json:"salary,omitempty"`
	JobURL      string           `json:"jobUrl,omitempty"`
}

// UpdateJobRequest is an explicit partial update: only the listed fields are
// mutable and only non-nil pointers are applied. Unknown JSON fields are
// rejected at bind time.
type UpdateJobRequest struct {
	Company     *string           `json:"company,omitempty"`
	Role        *string           `json:"role,omitempty"`
	Status      *models.JobStatus `json:"status,omitempty"`
	AppliedDate *time.Time        `json:"appliedDate,omitempty"`
	Notes       *string           `json:"notes,omitempty"`
	Location    *string           `json:"location,omitempty"`
	Salary      *string           `json:"salary,omitempty"`
	JobURL      *string           `json:"jobUrl,omitempty"`
}

// ListJobsQuery carries the listing filters from the query string.
type ListJobsQuery struct {
	Status string `form:"status"`
	SortBy string `form:"sortBy" binding:"omitempty,oneof=newest oldest company"`
	Search string `form:"search"`
}

type JobListResponse struct {
	Count int          `json:"count"`
	Jobs  []models.Job `json:"jobs"`
}
