package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"mediavault/internal/domain/models"
	"mediavault/internal/domain/services"
	"mediavault/internal/httputil"
)

// ResourceHandler handles resource HTTP requests
type ResourceHandler struct {
	resourceService services.ResourceService
	logger          *slog.Logger
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(resourceService services.ResourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
		logger:          logger,
	}
}

// ListResources returns the display-ready resource list for a scope.
// Query params: folder_id (empty = unfiled root), trash=true for the trash
// scope, category (all/photos/videos/favorites/recent), q (search string).
// GET /api/resources
func (h *ResourceHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()

	scope := services.ResourceScope{
		ShowDeleted: query.Get("trash") == "true",
	}
	if folderID := query.Get("folder_id"); folderID != "" {
		scope.FolderID = &folderID
	}

	category := models.ParseCategory(query.Get("category"))
	search := query.Get("q")

	view, err := h.resourceService.ListResourceView(r.Context(), userID, scope, category, search)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"resources": view,
		"count":     len(view),
	})
}

// ToggleFavorite flips the favorite flag and returns the updated record
// POST /api/resources/{id}/favorite
func (h *ResourceHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Resource ID is required")
		return
	}

	resource, err := h.resourceService.ToggleFavorite(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resource)
}

// SoftDelete moves a resource to trash
// DELETE /api/resources/{id}
func (h *ResourceHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Resource ID is required")
		return
	}

	if err := h.resourceService.SoftDelete(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Restore moves a resource out of trash
// POST /api/resources/{id}/restore
func (h *ResourceHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Resource ID is required")
		return
	}

	if err := h.resourceService.Restore(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PermanentlyDelete irreversibly removes a trashed resource
// DELETE /api/resources/{id}/permanent
func (h *ResourceHandler) PermanentlyDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Resource ID is required")
		return
	}

	if err := h.resourceService.PermanentlyDelete(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Download streams the stored bytes for a resource
// GET /api/resources/{id}/download
func (h *ResourceHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Resource ID is required")
		return
	}

	resource, reader, err := h.resourceService.Download(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", resource.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resource.OriginalName))
	if resource.FileSize > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", resource.FileSize))
	}

	if _, err := io.Copy(w, reader); err != nil {
		// Headers are already sent; all we can do is log
		h.logger.Warn("download stream interrupted",
			"resource_id", id,
			"error", err,
		)
	}
}
