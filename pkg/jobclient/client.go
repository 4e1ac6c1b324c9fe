package jobclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jobtrack_backend/internal/models"
	"jobtrack_backend/internal/repositories"
	"jobtrack_backend/internal/services/dto"
)

// Client is the reconciliation layer: it talks to the REST API, keeps an
// optimistic local Store, and recovers from failed mutations by refetching
// the authoritative list wholesale rather than rolling back field by field.
type Client struct {
	baseURL string
	token   string
	http    *http.Client

	Store *Store
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		Store:   NewStore(),
	}
}

type jobEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Job     *models.Job `json:"job"`
}

type listEnvelope struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Jobs    []models.Job `json:"jobs"`
}

type statsEnvelope struct {
	Success bool                   `json:"success"`
	Stats   *repositories.JobStats `json:"stats"`
}

// Load fetches the authoritative list and primes the local store.
func (c *Client) Load(ctx context.Context) error {
	jobs, err := c.fetchJobs(ctx)
	if err != nil {
		return err
	}
	c.Store.Replace(jobs)
	return nil
}

// CreateJob inserts an optimistic record immediately, then runs the server
// call. The correlation id generated at speculation time travels with the
// request and matches the response back to the pending record, so two
// concurrent creates can never be reconciled against the wrong result.
func (c *Client) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	corrID := c.Store.ApplyCreate(req.Company, req.Role, req.Status)

	var env jobEnvelope
	err := c.do(ctx, http.MethodPost, "/api/v1/jobs", corrID, req, &env)
	if err != nil {
		c.Store.DropPending(corrID)
		c.resync(ctx)
		return nil, err
	}

	c.Store.ConfirmCreate(corrID, *env.Job)
	return env.Job, nil
}

// UpdateJob mutates the local copy first; a server failure discards the local
// collection and refetches it.
func (c *Client) UpdateJob(ctx context.Context, id string, req *dto.UpdateJobRequest) (*models.Job, error) {
	c.Store.ApplyUpdate(id, req.Company, req.Role, req.Status, req.Notes)

	var env jobEnvelope
	err := c.do(ctx, http.MethodPut, "/api/v1/jobs/"+id, "", req, &env)
	if err != nil {
		c.resync(ctx)
		return nil, err
	}

	c.Store.Upsert(*env.Job)
	return env.Job, nil
}

// DeleteJob removes the local entry first; same wholesale recovery.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	c.Store.ApplyDelete(id)

	if err := c.do(ctx, http.MethodDelete, "/api/v1/jobs/"+id, "", nil, nil); err != nil {
		c.resync(ctx)
		return err
	}
	return nil
}

// FetchStats returns the server-computed aggregate. The local Store.Stats
// remains the live view between fetches.
func (c *Client) FetchStats(ctx context.Context) (*repositories.JobStats, error) {
	var env statsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs/stats", "", nil, &env); err != nil {
		return nil, err
	}
	return env.Stats, nil
}

func (c *Client) fetchJobs(ctx context.Context) ([]models.Job, error) {
	var env listEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs", "", nil, &env); err != nil {
		return nil, err
	}
	return env.Jobs, nil
}

func (c *Client) resync(ctx context.Context) {
	jobs, err := c.fetchJobs(ctx)
	if err != nil {
		// Leave the stale local state; the next successful fetch fixes it.
		return
	}
	c.Store.Replace(jobs)
}

func (c *Client) do(ctx context.Context, method, path, corrID string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
