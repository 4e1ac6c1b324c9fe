package repositories

import (
	"errors"
	"strings"

	"jobtrack_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

// JobCriteria narrows List and CountByStatus. An empty UserID means "all
// users" (admin view); Status "" or "all" means every status.
type JobCriteria struct {
	UserID string
	Status string
	Search string
	SortBy string // newest | oldest | company
}

// JobStats is the aggregate the stats endpoint serves.
type JobStats struct {
	Total    int64                      `json:"total"`
	ByStatus map[models.JobStatus]int64 `json:"byStatus"`
}

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	FindByIDWithUser(id string) (*models.Job, error)
	Save(job *models.Job) error
	Delete(id string) error
	List(criteria JobCriteria) ([]models.Job, error)
	Stats(userID string) (*JobStats, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *jobRepository) FindByID(id string) (*models.Job, error) {
	var job models.Job
	if err := r.db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindByIDWithUser(id string) (*models.Job, error) {
	var job models.Job
	if err := r.db.Preload("User").First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// Save persists all fields of an existing record, the status history ledger
// included. Last write wins: no version token is checked.
func (r *jobRepository) Save(job *models.Job) error {
	return r.db.Save(job).Error
}

func (r *jobRepository) Delete(id string) error {
	result := r.db.Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) List(criteria JobCriteria) ([]models.Job, error) {
	query := r.db.Model(&models.Job{}).Preload("User")

	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}

	if criteria.Status != "" && criteria.Status != "all" {
		query = query.Where("status = ?", criteria.Status)
	}

	if criteria.Search != "" {
		pattern := "%" + strings.ToLower(criteria.Search) + "%"
		query = query.Where("LOWER(company) LIKE ? OR LOWER(role) LIKE ?", pattern, pattern)
	}

	switch criteria.SortBy {
	case "oldest":
		query = query.Order("applied_date ASC")
	case "company":
		query = query.Order("company ASC")
	default: // newest
		query = query.Order("applied_date DESC")
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) Stats(userID string) (*JobStats, error) {
	query := r.db.Model(&models.Job{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var rows []struct {
		Status models.JobStatus
		Count  int64
	}
	if err := query.Select("status, COUNT(*) as count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &JobStats{
		ByStatus: make(map[models.JobStatus]int64, len(models.JobStatuses)),
	}
	for _, status := range models.JobStatuses {
		stats.ByStatus[status] = 0
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
		stats.Total += row.Count
	}
	return stats, nil
}
