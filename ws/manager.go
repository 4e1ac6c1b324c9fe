package ws

import (
	"sync"

	"jobtrack_backend/internal/logger"
)

// Manager is the realtime session registry. It groups live connections by
// user id; one user may hold several connections (tabs, devices). Membership
// changes go through the register/unregister channels and are serialized by
// Run, so a publish always sees a consistent group snapshot.
type Manager struct {
	groups     map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		groups:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes join/leave events. Call it once, on its own goroutine.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			group, ok := m.groups[client.UserID]
			if !ok {
				group = make(map[*Client]bool)
				m.groups[client.UserID] = group
			}
			group[client] = true
			m.mu.Unlock()
			logger.Debug("ws client joined", "user_id", client.UserID, "connections", len(group))

		case client := <-m.unregister:
			m.mu.Lock()
			if group, ok := m.groups[client.UserID]; ok && group[client] {
				delete(group, client)
				close(client.Send)
				if len(group) == 0 {
					delete(m.groups, client.UserID)
				}
			}
			m.mu.Unlock()
			logger.Debug("ws client left", "user_id", client.UserID)
		}
	}
}

// Publish delivers event to every connection currently joined under userID.
// Delivery is immediate and unordered; if the user has no connections the
// event is dropped. A connection with a full send buffer is kicked rather
// than allowed to block the publish.
func (m *Manager) Publish(userID string, event *Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	group, ok := m.groups[userID]
	if !ok {
		return
	}

	for client := range group {
		select {
		case client.Send <- event:
		default:
			go func(c *Client) {
				m.unregister <- c
			}(client)
			logger.Warn("ws client kicked: send buffer full", "user_id", userID)
		}
	}
}

// ConnectionCount reports the number of live connections for a user.
func (m *Manager) ConnectionCount(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.groups[userID])
}

// IsConnected reports whether the user has at least one joined connection.
func (m *Manager) IsConnected(userID string) bool {
	return m.ConnectionCount(userID) > 0
}
