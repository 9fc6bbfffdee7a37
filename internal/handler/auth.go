package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"mediavault/internal/auth"
	"mediavault/internal/httputil"
)

// AuthHandler handles session HTTP requests
type AuthHandler struct {
	adminClient *auth.AdminClient
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(adminClient *auth.AdminClient, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		adminClient: adminClient,
		logger:      logger,
	}
}

// SignOut revokes the session behind the caller's access token
// POST /api/auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	// The auth middleware already validated this header
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := h.adminClient.SignOut(token); err != nil {
		h.logger.Warn("sign-out failed", "user_id", userID, "error", err)
		httputil.RespondError(w, http.StatusBadGateway, "sign-out failed")
		return
	}

	h.logger.Info("user signed out", "user_id", userID)

	w.WriteHeader(http.StatusNoContent)
}
