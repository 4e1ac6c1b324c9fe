package services

import (
	"strings"
	"time"

	"jobtrack_backend/internal/logger"
	"jobtrack_backend/internal/models"
	"jobtrack_backend/internal/repositories"
	"jobtrack_backend/internal/services/dto"
	"jobtrack_backend/pkg/apperrors"
)

// JobService is the application mutation service: every create/update/delete
// goes through here, which is what keeps the status history ledger and the
// notification fan-out consistent with the persisted record.
type JobService interface {
	Create(userID string, req *dto.CreateJobRequest) (*models.Job, error)
	Update(userID string, role models.UserRole, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(userID string, role models.UserRole, jobID string) error
	Get(userID string, role models.UserRole, jobID string) (*models.Job, error)
	List(userID string, role models.UserRole, q dto.ListJobsQuery) ([]models.Job, error)
	Stats(userID string, role models.UserRole) (*repositories.JobStats, error)
}

type jobService struct {
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
	notifier Notifier
}

func NewJobService(jobRepo repositories.JobRepository, userRepo repositories.UserRepository, notifier Notifier) JobService {
	return &jobService{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (s *jobService) Create(userID string, req *dto.CreateJobRequest) (*models.Job, error) {
	company := strings.TrimSpace(req.Company)
	role := strings.TrimSpace(req.Role)

	var details []fieldError
	if company == "" {
		details = append(details, fieldError{Field: "company", Message: "Company name is required"})
	}
	if role == "" {
		details = append(details, fieldError{Field: "role", Message: "Job role is required"})
	}

	status := req.Status
	if status == "" {
		status = models.JobStatusApplied
	}
	if !status.Valid() {
		details = append(details, fieldError{Field: "status", Message: "Invalid status value"})
	}

	if len(details) > 0 {
		return nil, apperrors.ValidationError(details)
	}

	appliedDate := time.Now()
	if req.AppliedDate != nil {
		appliedDate = *req.AppliedDate
	}

	job := &models.Job{
		UserID:      userID,
		Company:     company,
		Role:        role,
		Status:      status,
		AppliedDate: appliedDate,
		Notes:       strings.TrimSpace(req.Notes),
		Location:    strings.TrimSpace(req.Location),
		Salary:      strings.TrimSpace(req.Salary),
		JobURL:      strings.TrimSpace(req.JobURL),
	}

	// Seed the ledger with the initial status.
	job.StatusHistory = append(job.StatusHistory, models.StatusEntry{
		Status: status,
		Date:   appliedDate,
	})

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	// The record is committed; everything past this point is best-effort.
	if user, err := s.userRepo.FindByID(userID); err == nil {
		job.User = user
		s.notifier.NotifyJobAdded(user, job)
	} else {
		logger.Warn("skipping jobAdded notification: owner lookup failed",
			"user_id", userID, "error", err.Error())
	}

	return job, nil
}

func (s *jobService) Update(userID string, role models.UserRole, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, s.mapLookupError(err)
	}

	if !canAccess(job, userID, role) {
		return nil, apperrors.NewForbiddenError("Not authorized to update this job")
	}

	oldStatus := job.Status

	var details []fieldError
	if req.Company != nil {
		company := strings.TrimSpace(*req.Company)
		if company == "" {
			details = append(details, fieldError{Field: "company", Message: "Company name is required"})
		}
		job.Company = company
	}
	if req.Role != nil {
		jobRole := strings.TrimSpace(*req.Role)
		if jobRole == "" {
			details = append(details, fieldError{Field: "role", Message: "Job role is required"})
		}
		job.Role = jobRole
	}
	if req.Status != nil && !req.Status.Valid() {
		details = append(details, fieldError{Field: "status", Message: "Invalid status value"})
	}
	if len(details) > 0 {
		return nil, apperrors.ValidationError(details)
	}

	if req.AppliedDate != nil {
		job.AppliedDate = *req.AppliedDate
	}
	if req.Notes != nil {
		job.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Location != nil {
		job.Location = strings.TrimSpace(*req.Location)
	}
	if req.Salary != nil {
		job.Salary = strings.TrimSpace(*req.Salary)
	}
	if req.JobURL != nil {
		job.JobURL = strings.TrimSpace(*req.JobURL)
	}

	// The ledger grows only on an actual transition: resubmitting the same
	// status leaves the history untouched and fans nothing out. The entry
	// carries the notes sent with this request; a status-only update gets an
	// empty-notes entry, never the record's stored notes.
	var transitionNotes string
	if req.Notes != nil {
		transitionNotes = strings.TrimSpace(*req.Notes)
	}
	statusChanged := req.Status != nil && *req.Status != oldStatus
	if statusChanged {
		job.AppendStatus(*req.Status, time.Now(), transitionNotes)
	}

	if err := s.jobRepo.Save(job); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	if statusChanged {
		if owner, err := s.userRepo.FindByID(job.UserID); err == nil {
			job.User = owner
			s.notifier.NotifyJobUpdated(owner, job, oldStatus, *req.Status, transitionNotes)
		} else {
			logger.Warn("skipping jobUpdated notification: owner lookup failed",
				"user_id", job.UserID, "error", err.Error())
		}
	} else if job.User == nil {
		if owner, err := s.userRepo.FindByID(job.UserID); err == nil {
			job.User = owner
		}
	}

	return job, nil
}

func (s *jobService) Delete(userID string, role models.UserRole, jobID string) error {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return s.mapLookupError(err)
	}

	if !canAccess(job, userID, role) {
		return apperrors.NewForbiddenError("Not authorized to delete this job")
	}

	// Hard delete, no notification for deletions.
	if err := s.jobRepo.Delete(jobID); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *jobService) Get(userID string, role models.UserRole, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByIDWithUser(jobID)
	if err != nil {
		return nil, s.mapLookupError(err)
	}

	if !canAccess(job, userID, role) {
		return nil, apperrors.NewForbiddenError("Not authorized to access this job")
	}
	return job, nil
}

func (s *jobService) List(userID string, role models.UserRole, q dto.ListJobsQuery) ([]models.Job, error) {
	if q.Status != "" && q.Status != "all" && !models.JobStatus(q.Status).Valid() {
		return nil, apperrors.ValidationError([]fieldError{
			{Field: "status", Message: "Invalid status filter"},
		})
	}

	criteria := repositories.JobCriteria{
		Status: q.Status,
		Search: q.Search,
		SortBy: q.SortBy,
	}
	if role != models.UserRoleAdmin {
		criteria.UserID = userID
	}

	jobs, err := s.jobRepo.List(criteria)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return jobs, nil
}

func (s *jobService) Stats(userID string, role models.UserRole) (*repositories.JobStats, error) {
	scope := userID
	if role == models.UserRoleAdmin {
		scope = ""
	}

	stats, err := s.jobRepo.Stats(scope)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return stats, nil
}

// canAccess is the single ownership rule for update/delete/get: admins see
// everything, others only their own records. A non-owner gets Forbidden, not
// NotFound, so record existence is not hidden.
func canAccess(job *models.Job, userID string, role models.UserRole) bool {
	return role == models.UserRoleAdmin || job.UserID == userID
}

func (s *jobService) mapLookupError(err error) error {
	if apperrors.Is(err, repositories.ErrJobNotFound) {
		return apperrors.NewNotFoundError("Job not found")
	}
	return apperrors.DatabaseError(err)
}
