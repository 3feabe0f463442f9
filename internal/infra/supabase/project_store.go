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
// Portfolio projects (table: projects)
// ============================================================

// projectRow maps the projects table columns to our domain.
type projectRow struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Style       string   `json:"style"`
	Location    string   `json:"location"`
	ImageURLs   []string `json:"image_urls"`
	Featured    bool     `json:"featured"`
	CompletedAt string   `json:"completed_at"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func (r projectRow) toDomain() domain.Project {
	return domain.Project{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Style:       r.Style,
		Location:    r.Location,
		ImageURLs:   r.ImageURLs,
		Featured:    r.Featured,
		CompletedAt: r.CompletedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ListProjects returns projects matching the filter, newest first.
func (c *Client) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListProjects")
	defer span.End()
	span.SetAttributes(attribute.String("filter.category", filter.Category))

	path := "projects?order=created_at.desc"
	if filter.Category != "" {
		path += "&category=eq." + url.QueryEscape(filter.Category)
	}
	if filter.Featured != nil {
		path += fmt.Sprintf("&featured=is.%t", *filter.Featured)
	}
	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		path += fmt.Sprintf("&limit=%d&offset=%d", filter.PageSize, offset)
	}

	var projects []domain.Project

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doRequest(ctx, http.MethodGet, path)
			if err != nil {
				return err
			}
			if body == nil || string(body) == "[]" {
				projects = []domain.Project{}
				return nil
			}

			var rows []projectRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode projects: %w", err)
			}

			projects = make([]domain.Project, 0, len(rows))
			for _, r := range rows {
				projects = append(projects, r.toDomain())
			}
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/projects", Err: err}
	}
	return projects, nil
}

// GetProject returns one project by id.
func (c *Client) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", id))

	var project *domain.Project

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("projects?id=eq.%s&limit=1", url.QueryEscape(id))
			body, err := c.doRequest(ctx, http.MethodGet, path)
			if err != nil {
				return err
			}
			if body == nil || string(body) == "[]" {
				// Not-found is a valid outcome, kept out of the
				// retry and breaker accounting.
				return nil
			}

			var rows []projectRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode project: %w", err)
			}
			if len(rows) == 0 {
				return nil
			}

			p := rows[0].toDomain()
			project = &p
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/projects", Err: err}
	}
	if project == nil {
		return nil, &domain.ErrNotFound{Resource: "project", ID: id}
	}
	return project, nil
}

// CreateProject inserts a project and returns the stored row.
func (c *Client) CreateProject(ctx context.Context, input *domain.ProjectInput) (*domain.Project, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateProject")
	defer span.End()

	body, err := c.doPost(ctx, "projects", projectPayload(input))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/projects", Err: err}
	}

	var rows []projectRow
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		return nil, &domain.ErrExternalService{Service: "supabase/projects", Err: fmt.Errorf("unexpected insert response: %s", string(body))}
	}
	p := rows[0].toDomain()
	return &p, nil
}

// UpdateProject patches a project and returns the fresh row.
func (c *Client) UpdateProject(ctx context.Context, id string, input *domain.ProjectInput) (*domain.Project, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", id))

	if _, err := c.GetProject(ctx, id); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("projects?id=eq.%s", url.QueryEscape(id))
	if err := c.doPatch(ctx, path, projectPayload(input)); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/projects", Err: err}
	}

	return c.GetProject(ctx, id)
}

// DeleteProject removes a project by id.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", id))

	if _, err := c.GetProject(ctx, id); err != nil {
		return err
	}

	path := fmt.Sprintf("projects?id=eq.%s", url.QueryEscape(id))
	if err := c.doDelete(ctx, path); err != nil {
		return &domain.ErrExternalService{Service: "supabase/projects", Err: err}
	}
	return nil
}

func projectPayload(input *domain.ProjectInput) map[string]any {
	payload := map[string]any{
		"title":       input.Title,
		"description": input.Description,
		"category":    input.Category,
		"style":       input.Style,
		"location":    input.Location,
		"image_urls":  input.ImageURLs,
		"featured":    input.Featured,
	}
	if input.CompletedAt != "" {
		payload["completed_at"] = input.CompletedAt
	}
	return payload
}
