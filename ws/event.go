package ws

import "jobtrack_backend/internal/models"

// Event kinds pushed to clients.
const (
	EventJobAdded   = "jobAdded"
	EventJobUpdated = "jobUpdated"
)

// Event is the wire schema of one realtime push. Events are ephemeral: no
// replay, no durable queue; a user with no joined connections never sees it.
type Event struct {
	Event   string      `json:"event"`
	Message string      `json:"message"`
	Job     *models.Job `json:"job"`
}
