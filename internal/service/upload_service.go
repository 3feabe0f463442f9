package service

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/krish0326/i-backend/internal/domain"
	"github.com/krish0326/i-backend/internal/infra/observability"
	"github.com/krish0326/i-backend/internal/infra/resilience"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var uploadTracer = otel.Tracer("service/uploads")

// Extensions accepted for portfolio and team photos.
var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// UploadService stores uploaded images on local disk under a random
// uuid filename and returns the public URL they are served at. A
// bulkhead caps concurrent disk writes.
type UploadService struct {
	dir      string
	maxBytes int64
	bulkhead *resilience.Bulkhead
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewUploadService creates a new upload service writing into dir.
func NewUploadService(dir string, maxBytes int64, maxConcurrency int, metrics *observability.Metrics, logger *zap.Logger) *UploadService {
	return &UploadService{
		dir:      dir,
		maxBytes: maxBytes,
		bulkhead: resilience.NewBulkhead(maxConcurrency),
		metrics:  metrics,
		logger:   logger,
	}
}

// Store validates and persists one multipart file part.
func (s *UploadService) Store(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*domain.UploadResult, error) {
	ctx, span := uploadTracer.Start(ctx, "UploadService.Store")
	defer span.End()
	span.SetAttributes(attribute.String("upload.original_name", header.Filename))

	if err := s.bulkhead.Acquire(ctx); err != nil {
		return nil, &domain.ErrTimeout{Operation: "upload"}
	}
	defer s.bulkhead.Release()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return nil, &domain.ErrValidation{Field: "file", Message: "unsupported file type: " + ext}
	}
	if header.Size > s.maxBytes {
		return nil, &domain.ErrValidation{Field: "file", Message: "file exceeds the upload size limit"}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, &domain.ErrExternalService{Service: "upload_storage", Err: err}
	}

	filename := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "upload_storage", Err: err}
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(file, s.maxBytes+1))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "upload_storage", Err: err}
	}
	if written > s.maxBytes {
		os.Remove(dst.Name())
		return nil, &domain.ErrValidation{Field: "file", Message: "file exceeds the upload size limit"}
	}

	s.logger.Info("file uploaded",
		zap.String("filename", filename),
		zap.Int64("size_bytes", written))

	return &domain.UploadResult{
		Filename:    filename,
		URL:         "/uploads/" + filename,
		SizeBytes:   written,
		ContentType: contentType,
		UploadedAt:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}
