package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"jobtrack_backend/internal/auth"
	"jobtrack_backend/internal/config"
	"jobtrack_backend/internal/models"
	"jobtrack_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct{}

func (s *fakeAuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{
		Token: "issued-token",
		User:  dto.UserResponse{ID: "user-1", Name: req.Name, Email: req.Email, Role: models.UserRoleApplicant},
	}, nil
}

func (s *fakeAuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{
		Token: "issued-token",
		User:  dto.UserResponse{ID: "user-1", Email: req.Email, Role: models.UserRoleApplicant},
	}, nil
}

func (s *fakeAuthService) Me(userID string) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID, Name: "Alice", Email: "alice@example.com", Role: models.UserRoleApplicant}, nil
}

func (s *fakeAuthService) Users() ([]dto.UserResponse, error) {
	return []dto.UserResponse{
		{ID: "user-1", Name: "Alice", Email: "alice@example.com", Role: models.UserRoleApplicant},
		{ID: "user-2", Name: "Bob", Email: "bob@example.com", Role: models.UserRoleAdmin},
	}, nil
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg

	handler := NewAuthHandler(NewBaseHandler(), &fakeAuthService{})

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router
}

func TestRegister_ReturnsTokenAndUser(t *testing.T) {
	router := newAuthRouter(t)

	body := []byte(`{"name":"Alice","email":"alice@example.com","password":"correct horse"}`)
	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Token   string           `json:"token"`
		User    dto.UserResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "issued-token", resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestUsersRoute_AdminOnly(t *testing.T) {
	router := newAuthRouter(t)

	// No token.
	w := doJSON(router, http.MethodGet, "/api/v1/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Applicant token is rejected by the role gate.
	applicantToken, err := auth.GenerateToken("user-1", models.UserRoleApplicant)
	require.NoError(t, err)
	w = doJSON(router, http.MethodGet, "/api/v1/users", applicantToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin sees the directory.
	adminToken, err := auth.GenerateToken("user-2", models.UserRoleAdmin)
	require.NoError(t, err)
	w = doJSON(router, http.MethodGet, "/api/v1/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool               `json:"success"`
		Count   int                `json:"count"`
		Users   []dto.UserResponse `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Users, 2)
}

func TestAuthRejections_UseErrorEnvelope(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/auth/me", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_TOKEN", resp.Error.Code)
}
