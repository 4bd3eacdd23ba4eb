package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/epicesports/tournament-platform/services"
	"github.com/go-chi/chi/v5"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(ts *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// ListHandler обрабатывает GET /api/teams?tournament=<id>
func (h *TeamHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var tournamentID *string
	if v := r.URL.Query().Get("tournament"); v != "" {
		tournamentID = &v
	}

	teams, err := h.teamService.ListTeams(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportHandler обрабатывает GET /api/tournaments/{tournamentID}/registrations/export
// (admin) и отдаёт xlsx-файл.
func (h *TeamHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tournamentID")
	if id == "" {
		badRequestResponse(w, r, errors.New("missing tournamentID"))
		return
	}

	f, err := h.teamService.ExportRegistrations(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	filename := fmt.Sprintf("registrations-%s-%s.xlsx", id, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(w); err != nil {
		// Заголовки уже отправлены, остаётся залогировать.
		serverErrorResponse(w, r, fmt.Errorf("failed to stream export: %w", err))
	}
}
