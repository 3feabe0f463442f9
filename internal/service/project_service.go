package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/krish0326/i-backend/internal/domain"
	"github.com/krish0326/i-backend/internal/infra/observability"
	"github.com/krish0326/i-backend/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var projectTracer = otel.Tracer("service/projects")

// ProjectService orchestrates portfolio project operations via the Supabase
// store. Filtered listings are cached per filter; writes flush the cache.
type ProjectService struct {
	store   port.ProjectStore
	cache   port.Cache[[]domain.Project]
	metrics *observability.Metrics
	logger  *zap.Logger

	mu        sync.Mutex
	cacheKeys []string // listing keys currently cached, flushed on writes
}

// NewProjectService creates a new project service.
func NewProjectService(store port.ProjectStore, cache port.Cache[[]domain.Project], metrics *observability.Metrics, logger *zap.Logger) *ProjectService {
	return &ProjectService{store: store, cache: cache, metrics: metrics, logger: logger}
}

func (s *ProjectService) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	ctx, span := projectTracer.Start(ctx, "ProjectService.ListProjects")
	defer span.End()
	span.SetAttributes(attribute.String("filter.category", filter.Category))

	if filter.Category != "" && !domain.ValidCategory(filter.Category) {
		return nil, &domain.ErrValidation{Field: "category", Message: "unknown category: " + filter.Category}
	}

	key := projectCacheKey(filter)
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.IncrCacheHit("projects")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("projects")

	projects, err := s.store.ListProjects(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, projects)
	s.mu.Lock()
	s.cacheKeys = append(s.cacheKeys, key)
	s.mu.Unlock()
	return projects, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	ctx, span := projectTracer.Start(ctx, "ProjectService.GetProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", id))

	return s.store.GetProject(ctx, id)
}

func (s *ProjectService) CreateProject(ctx context.Context, input *domain.ProjectInput) (*domain.Project, error) {
	ctx, span := projectTracer.Start(ctx, "ProjectService.CreateProject")
	defer span.End()

	if err := validateProjectInput(input); err != nil {
		return nil, err
	}
	project, err := s.store.CreateProject(ctx, input)
	if err != nil {
		return nil, err
	}
	s.flushListCache()
	s.logger.Info("project created", zap.String("id", project.ID), zap.String("title", project.Title))
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, id string, input *domain.ProjectInput) (*domain.Project, error) {
	ctx, span := projectTracer.Start(ctx, "ProjectService.UpdateProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", id))

	if err := validateProjectInput(input); err != nil {
		return nil, err
	}
	project, err := s.store.UpdateProject(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.flushListCache()
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	ctx, span := projectTracer.Start(ctx, "ProjectService.DeleteProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", id))

	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.flushListCache()
	return nil
}

func validateProjectInput(input *domain.ProjectInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return &domain.ErrValidation{Field: "title", Message: "title is required"}
	}
	if !domain.ValidCategory(input.Category) {
		return &domain.ErrValidation{Field: "category", Message: "unknown category: " + input.Category}
	}
	return nil
}

func (s *ProjectService) flushListCache() {
	s.mu.Lock()
	keys := s.cacheKeys
	s.cacheKeys = nil
	s.mu.Unlock()
	for _, k := range keys {
		s.cache.Delete(k)
	}
}

func projectCacheKey(filter domain.ProjectFilter) string {
	featured := "any"
	if filter.Featured != nil {
		featured = fmt.Sprintf("%t", *filter.Featured)
	}
	return fmt.Sprintf("projects:%s:%s:%d:%d", filter.Category, featured, filter.Page, filter.PageSize)
}
