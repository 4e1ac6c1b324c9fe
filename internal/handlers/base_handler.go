package handlers

import (
	"encoding/json"

	"jobtrack_backend/internal/logger"
	"jobtrack_backend/internal/middleware"
	"jobtrack_backend/internal/models"
	"jobtrack_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// BaseHandler carries the binding and error-mapping helpers shared by every
// HTTP handler.
type BaseHandler struct{}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds the request body with gin's validator tags.
func (h *BaseHandler) BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWarn(c.Request.Context(), "failed to bind JSON body",
			"error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// BindJSONStrict is BindJSON with unknown fields rejected. Partial-update
// payloads go through here so a typoed field fails instead of silently
// dropping the edit.
func (h *BaseHandler) BindJSONStrict(c *gin.Context, obj interface{}) bool {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(obj); err != nil {
		logger.CtxWarn(c.Request.Context(), "failed to bind JSON body",
			"error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// BindQuery binds query-string parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWarn(c.Request.Context(), "failed to bind query params",
			"error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return true
}

// HandleServiceError maps service-layer errors to HTTP responses.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if appErr, ok := apperrors.AsAppError(err); ok {
		logger.CtxWarn(ctx, "service error",
			"error", appErr.Message,
			"code", string(appErr.Code),
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
		return
	}

	logger.CtxError(ctx, "internal server error", "error", err.Error(), "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// Identity returns the authenticated (userID, role) pair, writing a 401 when
// the auth middleware did not run.
func (h *BaseHandler) Identity(c *gin.Context) (string, models.UserRole, bool) {
	userID := middleware.GetUserID(c)
	role, ok := middleware.GetRole(c)
	if userID == "" || !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return "", "", false
	}
	return userID, role, true
}
