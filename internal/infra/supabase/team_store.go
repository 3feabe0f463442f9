package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/krish0326/i-backend/internal/domain"
	"github.com/krish0326/i-backend/internal/infra/resilience"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Team members (table: team_members)
// ============================================================

// teamMemberRow maps the team_members table columns to our domain.
type teamMemberRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photo_url"`
	SortOrder int    `json:"sort_order"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (r teamMemberRow) toDomain() domain.TeamMember {
	return domain.TeamMember{
		ID:        r.ID,
		Name:      r.Name,
		Role:      r.Role,
		Bio:       r.Bio,
		PhotoURL:  r.PhotoURL,
		SortOrder: r.SortOrder,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ListTeamMembers returns all team members ordered for display.
func (c *Client) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListTeamMembers")
	defer span.End()

	var members []domain.TeamMember

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doRequest(ctx, http.MethodGet, "team_members?order=sort_order.asc,name.asc")
			if err != nil {
				return err
			}
			if body == nil || string(body) == "[]" {
				members = []domain.TeamMember{}
				return nil
			}

			var rows []teamMemberRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode team members: %w", err)
			}

			members = make([]domain.TeamMember, 0, len(rows))
			for _, r := range rows {
				members = append(members, r.toDomain())
			}
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/team", Err: err}
	}
	return members, nil
}

// GetTeamMember returns one team member by id.
func (c *Client) GetTeamMember(ctx context.Context, id string) (*domain.TeamMember, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetTeamMember")
	defer span.End()
	span.SetAttributes(attribute.String("team_member.id", id))

	var member *domain.TeamMember

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("team_members?id=eq.%s&limit=1", url.QueryEscape(id))
			body, err := c.doRequest(ctx, http.MethodGet, path)
			if err != nil {
				return err
			}
			if body == nil || string(body) == "[]" {
				// Not-found is a valid outcome, kept out of the
				// retry and breaker accounting.
				return nil
			}

			var rows []teamMemberRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode team member: %w", err)
			}
			if len(rows) == 0 {
				return nil
			}

			m := rows[0].toDomain()
			member = &m
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/team", Err: err}
	}
	if member == nil {
		return nil, &domain.ErrNotFound{Resource: "team member", ID: id}
	}
	return member, nil
}

// CreateTeamMember inserts a team member and returns the stored row.
func (c *Client) CreateTeamMember(ctx context.Context, input *domain.TeamMemberInput) (*domain.TeamMember, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateTeamMember")
	defer span.End()

	body, err := c.doPost(ctx, "team_members", map[string]any{
		"name":       input.Name,
		"role":       input.Role,
		"bio":        input.Bio,
		"photo_url":  input.PhotoURL,
		"sort_order": input.SortOrder,
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/team", Err: err}
	}

	var rows []teamMemberRow
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		return nil, &domain.ErrExternalService{Service: "supabase/team", Err: fmt.Errorf("unexpected insert response: %s", string(body))}
	}
	m := rows[0].toDomain()
	return &m, nil
}

// UpdateTeamMember patches a team member and returns the fresh row.
func (c *Client) UpdateTeamMember(ctx context.Context, id string, input *domain.TeamMemberInput) (*domain.TeamMember, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateTeamMember")
	defer span.End()
	span.SetAttributes(attribute.String("team_member.id", id))

	if _, err := c.GetTeamMember(ctx, id); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("team_members?id=eq.%s", url.QueryEscape(id))
	err := c.doPatch(ctx, path, map[string]any{
		"name":       input.Name,
		"role":       input.Role,
		"bio":        input.Bio,
		"photo_url":  input.PhotoURL,
		"sort_order": input.SortOrder,
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/team", Err: err}
	}

	return c.GetTeamMember(ctx, id)
}

// DeleteTeamMember removes a team member by id.
func (c *Client) DeleteTeamMember(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteTeamMember")
	defer span.End()
	span.SetAttributes(attribute.String("team_member.id", id))

	if _, err := c.GetTeamMember(ctx, id); err != nil {
		return err
	}

	path := fmt.Sprintf("team_members?id=eq.%s", url.QueryEscape(id))
	if err := c.doDelete(ctx, path); err != nil {
		return &domain.ErrExternalService{Service: "supabase/team", Err: err}
	}
	return nil
}
