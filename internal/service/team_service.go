// Package service provides the business logic layer (use cases).
package service

import (
	"context"
	"strings"

	"github.com/krish0326/i-backend/internal/domain"
	"github.com/krish0326/i-backend/internal/infra/observability"
	"github.com/krish0326/i-backend/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var teamTracer = otel.Tracer("service/team")

// TeamService orchestrates team member operations via the Supabase store.
// Listings are cached; any write invalidates the cached listing.
type TeamService struct {
	store   port.TeamStore
	cache   port.Cache[[]domain.TeamMember]
	metrics *observability.Metrics
	logger  *zap.Logger
}

const teamCacheKey = "team:all"

// NewTeamService creates a new team service.
func NewTeamService(store port.TeamStore, cache port.Cache[[]domain.TeamMember], metrics *observability.Metrics, logger *zap.Logger) *TeamService {
	return &TeamService{store: store, cache: cache, metrics: metrics, logger: logger}
}

func (s *TeamService) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	ctx, span := teamTracer.Start(ctx, "TeamService.ListTeamMembers")
	defer span.End()

	if cached, ok := s.cache.Get(teamCacheKey); ok {
		s.metrics.IncrCacheHit("team")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("team")

	members, err := s.store.ListTeamMembers(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(teamCacheKey, members)
	return members, nil
}

func (s *TeamService) GetTeamMember(ctx context.Context, id string) (*domain.TeamMember, error) {
	ctx, span := teamTracer.Start(ctx, "TeamService.GetTeamMember")
	defer span.End()
	span.SetAttributes(attribute.String("team_member.id", id))

	return s.store.GetTeamMember(ctx, id)
}

func (s *TeamService) CreateTeamMember(ctx context.Context, input *domain.TeamMemberInput) (*domain.TeamMember, error) {
	ctx, span := teamTracer.Start(ctx, "TeamService.CreateTeamMember")
	defer span.End()

	if err := validateTeamInput(input); err != nil {
		return nil, err
	}
	member, err := s.store.CreateTeamMember(ctx, input)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(teamCacheKey)
	s.logger.Info("team member created", zap.String("id", member.ID), zap.String("name", member.Name))
	return member, nil
}

func (s *TeamService) UpdateTeamMember(ctx context.Context, id string, input *domain.TeamMemberInput) (*domain.TeamMember, error) {
	ctx, span := teamTracer.Start(ctx, "TeamService.UpdateTeamMember")
	defer span.End()
	span.SetAttributes(attribute.String("team_member.id", id))

	if err := validateTeamInput(input); err != nil {
		return nil, err
	}
	member, err := s.store.UpdateTeamMember(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(teamCacheKey)
	return member, nil
}

func (s *TeamService) DeleteTeamMember(ctx context.Context, id string) error {
	ctx, span := teamTracer.Start(ctx, "TeamService.DeleteTeamMember")
	defer span.End()
	span.SetAttributes(attribute.String("team_member.id", id))

	if err := s.store.DeleteTeamMember(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(teamCacheKey)
	return nil
}

func validateTeamInput(input *domain.TeamMemberInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(input.Role) == "" {
		return &domain.ErrValidation{Field: "role", Message: "role is required"}
	}
	return nil
}
