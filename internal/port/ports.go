// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/krish0326/i-backend/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// TeamStore defines data operations for team members.
// Implemented by the Supabase adapter (or any other persistence layer).
type TeamStore interface {
	ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error)
	GetTeamMember(ctx context.Context, id string) (*domain.TeamMember, error)
	CreateTeamMember(ctx context.Context, input *domain.TeamMemberInput) (*domain.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id string, input *domain.TeamMemberInput) (*domain.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id string) error
}

// ProjectStore defines data operations for portfolio projects.
type ProjectStore interface {
	ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	CreateProject(ctx context.Context, input *domain.ProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, id string, input *domain.ProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
