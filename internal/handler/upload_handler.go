package handler

import (
	"net/http"

	"github.com/krish0326/i-backend/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Uploads: POST /v1/uploads
// ============================================================

// uploadHandler accepts one multipart file under the "file" field
// and returns the public URL of the stored copy.
func uploadHandler(svc *service.UploadService, maxBytes int64, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/uploads")
		defer span.End()

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form or file too large")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file field is required")
			return
		}
		defer file.Close()

		result, err := svc.Store(ctx, file, header)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}
