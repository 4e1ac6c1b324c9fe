package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobtrack_backend/internal/auth"
	"jobtrack_backend/internal/config"
	"jobtrack_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWSServer(t *testing.T) (*httptest.Server, *Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg

	manager := NewManager()
	go manager.Run()

	router := gin.New()
	router.GET("/ws", NewHandler(manager).ServeWS)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, manager
}

func wsURL(srv *httptest.Server, query string) string {
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	if query != "" {
		u += "?" + query
	}
	return u
}

func TestServeWS_RejectsMissingToken(t *testing.T) {
	srv, _ := newWSServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.Nil(t, conn)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestServeWS_RejectsInvalidToken(t *testing.T) {
	srv, manager := newWSServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "token=garbage"), nil)
	require.Error(t, err)
	require.Nil(t, conn)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
	assert.False(t, manager.IsConnected("user-1"), "rejected handshake must never join a group")
}

func TestServeWS_AuthenticatedConnectionReceivesPublishes(t *testing.T) {
	srv, manager := newWSServer(t)

	token, err := auth.GenerateToken("user-1", models.UserRoleApplicant)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "token="+token), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return manager.IsConnected("user-1") }, time.Second, 5*time.Millisecond)

	job := &models.Job{UserID: "user-1", Company: "Acme", Role: "Engineer", Status: models.JobStatusInterview}
	job.ID = "job-1"
	manager.Publish("user-1", &Event{
		Event:   EventJobUpdated,
		Message: "Job status updated: Acme - Engineer is now Interview",
		Job:     job,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventJobUpdated, got.Event)
	require.NotNil(t, got.Job)
	assert.Equal(t, "job-1", got.Job.ID)
	assert.Equal(t, models.JobStatusInterview, got.Job.Status)
}

func TestServeWS_TokenFromAuthorizationHeader(t *testing.T) {
	srv, manager := newWSServer(t)

	token, err := auth.GenerateToken("user-2", models.UserRoleApplicant)
	require.NoError(t, err)

	header := map[string][]string{"Authorization": {"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return manager.IsConnected("user-2") }, time.Second, 5*time.Millisecond)
}

func TestServeWS_DisconnectLeavesGroup(t *testing.T) {
	srv, manager := newWSServer(t)

	token, err := auth.GenerateToken("user-3", models.UserRoleApplicant)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "token="+token), nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return manager.IsConnected("user-3") }, time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return !manager.IsConnected("user-3") }, 2*time.Second, 10*time.Millisecond)
}
