package handler

import (
	"log/slog"
	"net/http"

	"mediavault/internal/config"
	"mediavault/internal/domain/services"
	"mediavault/internal/httputil"
)

// multipartMemory is how much of a parsed upload is held in memory before
// spilling to temp files
const multipartMemory = 32 << 20

// UploadHandler handles batch file upload HTTP requests
type UploadHandler struct {
	uploadService services.UploadService
	logger        *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService services.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		logger:        logger,
	}
}

// Upload accepts a multipart batch under the "files" field, with an optional
// "folder_id" field naming the target folder. 200 on full success, 207 when
// some files failed.
// POST /api/uploads
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Expected multipart/form-data request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	var folderID *string
	if value := r.FormValue("folder_id"); value != "" {
		folderID = &value
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "No files provided")
		return
	}
	if len(headers) > config.MaxUploadBatchSize {
		httputil.RespondError(w, http.StatusBadRequest, "Too many files in one batch")
		return
	}

	files := make([]services.UploadFile, 0, len(headers))
	opened := make([]interface{ Close() error }, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, header := range headers {
		if header.Size > config.MaxUploadFileBytes {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "File exceeds the size limit")
			return
		}

		file, err := header.Open()
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		opened = append(opened, file)

		files = append(files, services.UploadFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		})
	}

	result, err := h.uploadService.Upload(r.Context(), userID, folderID, files)
	if err != nil {
		handleError(w, err)
		return
	}

	status := http.StatusOK
	if len(result.Failures) > 0 {
		status = http.StatusMultiStatus
	}

	httputil.RespondJSON(w, status, result)
}
