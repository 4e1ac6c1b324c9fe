package handlers

import (
	"jobtrack_backend/internal/services"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	AuthHandler *AuthHandler
	JobHandler  *JobHandler
}

func NewAppHandlers(authService services.AuthService, jobService services.JobService) *AppHandlers {
	base := NewBaseHandler()

	return &AppHandlers{
		AuthHandler: NewAuthHandler(base, authService),
		JobHandler:  NewJobHandler(base, jobService),
	}
}
