package jobclient

import (
	"strings"
	"sync"
	"time"

	"jobtrack_backend/internal/models"

	"github.com/google/uuid"
)

// Store holds the client's optimistic copy of the visible application set.
// Speculative edits land here immediately; server responses and pushed
// realtime events reconcile it back to the authoritative state. Pending
// creates are matched to their server record by correlation id, never by
// list position.
type Store struct {
	mu   sync.Mutex
	jobs []*localJob
}

type localJob struct {
	job models.Job
	// correlationID is non-empty while the record is a client-side synthesis
	// awaiting server confirmation.
	correlationID string
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps the whole collection for the server's copy. Used on initial
// load and for the wholesale refetch recovery after a failed mutation.
func (s *Store) Replace(jobs []models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = make([]*localJob, 0, len(jobs))
	for _, job := range jobs {
		j := job
		s.jobs = append(s.jobs, &localJob{job: j})
	}
}

// Jobs returns a snapshot of the local collection.
func (s *Store) Jobs() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Job, 0, len(s.jobs))
	for _, lj := range s.jobs {
		out = append(out, lj.job)
	}
	return out
}

// Stats recomputes the per-status counts from the local collection. It can
// momentarily disagree with the server aggregate; that is the accepted cost
// of optimistic updates.
func (s *Store) Stats() (total int, byStatus map[models.JobStatus]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus = make(map[models.JobStatus]int, len(models.JobStatuses))
	for _, status := range models.JobStatuses {
		byStatus[status] = 0
	}
	for _, lj := range s.jobs {
		byStatus[lj.job.Status]++
	}
	return len(s.jobs), byStatus
}

// ApplyCreate inserts a locally-synthesized record ahead of server
// confirmation and returns its correlation id.
func (s *Store) ApplyCreate(company, role string, status models.JobStatus) string {
	if status == "" {
		status = models.JobStatusApplied
	}
	corrID := uuid.NewString()
	now := time.Now()

	job := models.Job{
		Company:     strings.TrimSpace(company),
		Role:        strings.TrimSpace(role),
		Status:      status,
		AppliedDate: now,
	}
	job.ID = "pending-" + corrID
	job.CreatedAt = now
	job.UpdatedAt = now
	job.StatusHistory = append(job.StatusHistory, models.StatusEntry{Status: status, Date: now})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &localJob{job: job, correlationID: corrID})
	return corrID
}

// ConfirmCreate replaces the pending record matching corrID with the
// server-confirmed one. Returns false when no pending record matches (the
// store was resynced in the meantime), in which case the confirmed record is
// upserted instead so it is never lost.
func (s *Store) ConfirmCreate(corrID string, confirmed models.Job) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, lj := range s.jobs {
		if lj.correlationID == corrID {
			lj.job = confirmed
			lj.correlationID = ""
			return true
		}
	}
	s.upsertLocked(confirmed)
	return false
}

// DropPending removes the speculative record for a failed create.
func (s *Store) DropPending(corrID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, lj := range s.jobs {
		if lj.correlationID == corrID {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return
		}
	}
}

// ApplyUpdate mutates the local copy before the server confirms, including a
// synthesized ledger entry when the status changes.
func (s *Store) ApplyUpdate(id string, company, role *string, status *models.JobStatus, notes *string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	lj := s.findLocked(id)
	if lj == nil {
		return false
	}

	if company != nil {
		lj.job.Company = strings.TrimSpace(*company)
	}
	if role != nil {
		lj.job.Role = strings.TrimSpace(*role)
	}
	var transitionNotes string
	if notes != nil {
		transitionNotes = strings.TrimSpace(*notes)
		lj.job.Notes = transitionNotes
	}
	if status != nil && *status != lj.job.Status {
		lj.job.AppendStatus(*status, time.Now(), transitionNotes)
	}
	lj.job.UpdatedAt = time.Now()
	return true
}

// ApplyDelete removes the local entry immediately.
func (s *Store) ApplyDelete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, lj := range s.jobs {
		if lj.job.ID == id {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return true
		}
	}
	return false
}

// Upsert merges a server snapshot into the collection by record id. Realtime
// events land here, so a push received out-of-band converges the local view
// instead of only surfacing a toast.
func (s *Store) Upsert(job models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(job)
}

func (s *Store) upsertLocked(job models.Job) {
	for _, lj := range s.jobs {
		if lj.job.ID == job.ID {
			lj.job = job
			lj.correlationID = ""
			return
		}
	}
	s.jobs = append(s.jobs, &localJob{job: job})
}

// Get returns the local copy of one record.
func (s *Store) Get(id string) (models.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lj := s.findLocked(id); lj != nil {
		return lj.job, true
	}
	return models.Job{}, false
}

func (s *Store) findLocked(id string) *localJob {
	for _, lj := range s.jobs {
		if lj.job.ID == id {
			return lj
		}
	}
	return nil
}
