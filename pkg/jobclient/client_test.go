package jobclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"jobtrack_backend/internal/models"
	"jobtrack_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a minimal stand-in for the jobs endpoints. Each handler can be
// overridden per test; the default list handler serves `jobs`.
type fakeAPI struct {
	mu   sync.Mutex
	jobs []models.Job

	createStatus int
	updateStatus int
	deleteStatus int

	lastCorrelationID string
}

func (a *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/jobs", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"count":   len(a.jobs),
				"jobs":    a.jobs,
			})

		case http.MethodPost:
			a.lastCorrelationID = r.Header.Get("X-Correlation-ID")
			if a.createStatus != 0 {
				w.WriteHeader(a.createStatus)
				json.NewEncoder(w).Encode(map[string]interface{}{"success": false})
				return
			}

			var req dto.CreateJobRequest
			json.NewDecoder(r.Body).Decode(&req)

			job := models.Job{UserID: "user-1", Company: req.Company, Role: req.Role, Status: req.Status}
			if job.Status == "" {
				job.Status = models.JobStatusApplied
			}
			job.ID = "job-created"
			job.AppendStatus(job.Status, time.Now(), "")
			a.jobs = append(a.jobs, job)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "job": job})
		}
	})

	mux.HandleFunc("/api/v1/jobs/", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()

		switch r.Method {
		case http.MethodPut:
			if a.updateStatus != 0 {
				w.WriteHeader(a.updateStatus)
				json.NewEncoder(w).Encode(map[string]interface{}{"success": false})
				return
			}

			var req dto.UpdateJobRequest
			json.NewDecoder(r.Body).Decode(&req)

			job := a.jobs[0]
			if req.Status != nil && *req.Status != job.Status {
				job.AppendStatus(*req.Status, time.Now(), "")
			}
			a.jobs[0] = job
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "job": job})

		case http.MethodDelete:
			if a.deleteStatus != 0 {
				w.WriteHeader(a.deleteStatus)
				json.NewEncoder(w).Encode(map[string]interface{}{"success": false})
				return
			}
			a.jobs = nil
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Job deleted successfully"})
		}
	})

	return mux
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-token")
}

func TestLoad_PrimesStoreFromServer(t *testing.T) {
	api := &fakeAPI{jobs: []models.Job{serverJob("job-1", "Acme", "Engineer", models.JobStatusApplied)}}
	c := newTestClient(t, api)

	require.NoError(t, c.Load(context.Background()))

	jobs := c.Store.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-1", jobs[0].ID)
}

func TestCreateJob_ReconcilesPendingWithServerRecord(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	job, err := c.CreateJob(context.Background(), &dto.CreateJobRequest{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "job-created", job.ID)

	jobs := c.Store.Jobs()
	require.Len(t, jobs, 1, "pending record replaced, not duplicated")
	assert.Equal(t, "job-created", jobs[0].ID)

	assert.NotEmpty(t, api.lastCorrelationID, "correlation id travels with the create request")
}

func TestCreateJob_FailureDropsPendingAndResyncs(t *testing.T) {
	api := &fakeAPI{
		jobs:         []models.Job{serverJob("job-1", "Acme", "Engineer", models.JobStatusApplied)},
		createStatus: http.StatusBadRequest,
	}
	c := newTestClient(t, api)
	require.NoError(t, c.Load(context.Background()))

	_, err := c.CreateJob(context.Background(), &dto.CreateJobRequest{Company: "Globex", Role: "Analyst"})
	require.Error(t, err)

	jobs := c.Store.Jobs()
	require.Len(t, jobs, 1, "speculative record rolled back")
	assert.Equal(t, "job-1", jobs[0].ID)
}

func TestUpdateJob_FailureRefetchesAuthoritativeState(t *testing.T) {
	server := serverJob("job-1", "Acme", "Engineer", models.JobStatusApplied)
	api := &fakeAPI{jobs: []models.Job{server}, updateStatus: http.StatusForbidden}
	c := newTestClient(t, api)
	require.NoError(t, c.Load(context.Background()))

	status := models.JobStatusOffer
	_, err := c.UpdateJob(context.Background(), "job-1", &dto.UpdateJobRequest{Status: &status})
	require.Error(t, err)

	// The optimistic transition was applied then discarded by the resync.
	job, ok := c.Store.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, models.JobStatusApplied, job.Status)
	assert.Len(t, job.StatusHistory, 1)
}

func TestUpdateJob_SuccessMergesServerCopy(t *testing.T) {
	api := &fakeAPI{jobs: []models.Job{serverJob("job-1", "Acme", "Engineer", models.JobStatusApplied)}}
	c := newTestClient(t, api)
	require.NoError(t, c.Load(context.Background()))

	status := models.JobStatusInterview
	job, err := c.UpdateJob(context.Background(), "job-1", &dto.UpdateJobRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusInterview, job.Status)

	local, _ := c.Store.Get("job-1")
	assert.Equal(t, models.JobStatusInterview, local.Status)
	assert.Len(t, local.StatusHistory, 2)
}

func TestDeleteJob_FailureResyncs(t *testing.T) {
	api := &fakeAPI{
		jobs:         []models.Job{serverJob("job-1", "Acme", "Engineer", models.JobStatusApplied)},
		deleteStatus: http.StatusNotFound,
	}
	c := newTestClient(t, api)
	require.NoError(t, c.Load(context.Background()))

	require.Error(t, c.DeleteJob(context.Background(), "job-1"))

	// The record came back with the refetch.
	_, ok := c.Store.Get("job-1")
	assert.True(t, ok)
}

func TestFetchStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/jobs/stats", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"stats": map[string]interface{}{
				"total":    3,
				"byStatus": map[string]int{"Applied": 2, "Offer": 1},
			},
		})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "test-token")
	stats, err := c.FetchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus[models.JobStatusApplied])
}
