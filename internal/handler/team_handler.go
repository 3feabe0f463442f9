package handler

import (
	"encoding/json"
	"net/http"

	"github.com/krish0326/i-backend/internal/domain"
	"github.com/krish0326/i-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Team members: /v1/team
// ============================================================

func listTeamHandler(svc *service.TeamService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/team")
		defer span.End()

		members, err := svc.ListTeamMembers(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if members == nil {
			members = []domain.TeamMember{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"team": members})
	}
}

func getTeamMemberHandler(svc *service.TeamService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/team/{memberId}")
		defer span.End()

		memberID := chi.URLParam(r, "memberId")
		member, err := svc.GetTeamMember(ctx, memberID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, member)
	}
}

func createTeamMemberHandler(svc *service.TeamService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/team")
		defer span.End()

		var input domain.TeamMemberInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		member, err := svc.CreateTeamMember(ctx, &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, member)
	}
}

func updateTeamMemberHandler(svc *service.TeamService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/team/{memberId}")
		defer span.End()

		memberID := chi.URLParam(r, "memberId")
		var input domain.TeamMemberInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		member, err := svc.UpdateTeamMember(ctx, memberID, &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, member)
	}
}

func deleteTeamMemberHandler(svc *service.TeamService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/team/{memberId}")
		defer span.End()

		memberID := chi.URLParam(r, "memberId")
		if err := svc.DeleteTeamMember(ctx, memberID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "team member deleted", ID: memberID})
	}
}
