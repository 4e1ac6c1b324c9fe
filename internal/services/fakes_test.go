package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"jobtrack_backend/internal/models"
	"jobtrack_backend/internal/repositories"
	"jobtrack_backend/ws"
)

// fakeJobRepository is an in-memory JobRepository for service tests.
type fakeJobRepository struct {
	mu     sync.Mutex
	jobs   map[string]*models.Job
	nextID int

	lastCriteria  repositories.JobCriteria
	lastStatsUser string
	failSave      bool
}

func newFakeJobRepository() *fakeJobRepository {
	return &fakeJobRepository{jobs: make(map[string]*models.Job)}
}

func (r *fakeJobRepository) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	job.ID = fmt.Sprintf("job-%d", r.nextID)
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt

	stored := *job
	r.jobs[job.ID] = &stored
	return nil
}

func (r *fakeJobRepository) FindByID(id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepository) FindByIDWithUser(id string) (*models.Job, error) {
	return r.FindByID(id)
}

func (r *fakeJobRepository) Save(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failSave {
		return errors.New("save failed")
	}
	if _, ok := r.jobs[job.ID]; !ok {
		return repositories.ErrJobNotFound
	}
	job.UpdatedAt = time.Now()
	stored := *job
	r.jobs[job.ID] = &stored
	return nil
}

func (r *fakeJobRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return repositories.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepository) List(criteria repositories.JobCriteria) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastCriteria = criteria

	var out []models.Job
	for _, job := range r.jobs {
		if criteria.UserID != "" && job.UserID != criteria.UserID {
			continue
		}
		if criteria.Status != "" && criteria.Status != "all" && string(job.Status) != criteria.Status {
			continue
		}
		if criteria.Search != "" {
			needle := strings.ToLower(criteria.Search)
			if !strings.Contains(strings.ToLower(job.Company), needle) &&
				!strings.Contains(strings.ToLower(job.Role), needle) {
				continue
			}
		}
		out = append(out, *job)
	}

	sort.Slice(out, func(i, j int) bool {
		switch criteria.SortBy {
		case "oldest":
			return out[i].AppliedDate.Before(out[j].AppliedDate)
		case "company":
			return out[i].Company < out[j].Company
		default: // newest
			return out[i].AppliedDate.After(out[j].AppliedDate)
		}
	})
	return out, nil
}

func (r *fakeJobRepository) Stats(userID string) (*repositories.JobStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastStatsUser = userID

	stats := &repositories.JobStats{ByStatus: make(map[models.JobStatus]int64)}
	for _, status := range models.JobStatuses {
		stats.ByStatus[status] = 0
	}
	for _, job := range r.jobs {
		if userID != "" && job.UserID != userID {
			continue
		}
		stats.ByStatus[job.Status]++
		stats.Total++
	}
	return stats, nil
}

// fakeUserRepository serves a fixed set of users.
type fakeUserRepository struct {
	users map[string]*models.User
}

func newFakeUserRepository(users ...*models.User) *fakeUserRepository {
	r := &fakeUserRepository{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepository) Create(user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) FindByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) FindByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepository) List() ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// recordedNotification captures one fan-out invocation.
type recordedNotification struct {
	kind      string
	userID    string
	jobID     string
	oldStatus models.JobStatus
	newStatus models.JobStatus
	notes     string
}

// fakeNotifier records fan-out calls instead of delivering anything.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []recordedNotification
}

func (n *fakeNotifier) NotifyJobAdded(user *models.User, job *models.Job) {
	n.record(recordedNotification{kind: ws.EventJobAdded, userID: user.ID, jobID: job.ID})
}

func (n *fakeNotifier) NotifyJobUpdated(user *models.User, job *models.Job, oldStatus, newStatus models.JobStatus, notes string) {
	n.record(recordedNotification{
		kind:      ws.EventJobUpdated,
		userID:    user.ID,
		jobID:     job.ID,
		oldStatus: oldStatus,
		newStatus: newStatus,
		notes:     notes,
	})
}

func (n *fakeNotifier) SendWelcome(user *models.User) {
	n.record(recordedNotification{kind: "welcome", userID: user.ID})
}

func (n *fakeNotifier) Wait() {}

func (n *fakeNotifier) record(call recordedNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, call)
}

func (n *fakeNotifier) recorded() []recordedNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]recordedNotification, len(n.calls))
	copy(out, n.calls)
	return out
}
