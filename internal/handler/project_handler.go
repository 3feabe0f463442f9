package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/krish0326/i-backend/internal/domain"
	"github.com/krish0326/i-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Portfolio projects: /v1/projects
// ============================================================

func listProjectsHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/projects")
		defer span.End()

		page, pageSize := parsePagination(r)
		filter := domain.ProjectFilter{
			Category: r.URL.Query().Get("category"),
			Page:     page,
			PageSize: pageSize,
		}
		if v := r.URL.Query().Get("featured"); v != "" {
			featured, err := strconv.ParseBool(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "featured must be true or false")
				return
			}
			filter.Featured = &featured
		}

		projects, err := svc.ListProjects(ctx, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if projects == nil {
			projects = []domain.Project{}
		}
		writeJSON(w, http.StatusOK, domain.ListResponse[domain.Project]{
			Data:     projects,
			Total:    len(projects),
			Page:     page,
			PageSize: pageSize,
			HasMore:  len(projects) == pageSize,
		})
	}
}

func getProjectHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/projects/{projectId}")
		defer span.End()

		projectID := chi.URLParam(r, "projectId")
		project, err := svc.GetProject(ctx, projectID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, project)
	}
}

func createProjectHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/projects")
		defer span.End()

		var input domain.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		project, err := svc.CreateProject(ctx, &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, project)
	}
}

func updateProjectHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/projects/{projectId}")
		defer span.End()

		projectID := chi.URLParam(r, "projectId")
		var input domain.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		project, err := svc.UpdateProject(ctx, projectID, &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, project)
	}
}

func deleteProjectHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/projects/{projectId}")
		defer span.End()

		projectID := chi.URLParam(r, "projectId")
		if err := svc.DeleteProject(ctx, projectID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "project deleted", ID: projectID})
	}
}
