package handler

import (
	"log/slog"
	"net/http"

	"mediavault/internal/domain/services"
	"mediavault/internal/httputil"
)

// TreeHandler handles folder tree and breadcrumb HTTP requests
type TreeHandler struct {
	treeService services.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService services.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetFolderTree returns the user's nested folder forest
// GET /api/folders/tree
func (h *TreeHandler) GetFolderTree(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	tree, err := h.treeService.GetFolderTree(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// GetBreadcrumb returns the ordered root-to-target folder path
// GET /api/folders/{id}/breadcrumb
func (h *TreeHandler) GetBreadcrumb(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	path, err := h.treeService.GetBreadcrumb(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"breadcrumb": path,
	})
}
