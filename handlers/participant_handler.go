package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/epicesports/tournament-platform/models"
	"github.com/epicesports/tournament-platform/repositories"
	"github.com/epicesports/tournament-platform/services"
	"github.com/go-chi/chi/v5"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
}

func NewParticipantHandler(ps *services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: ps}
}

// ListHandler обрабатывает GET /api/participants с фильтрами
// ?tournament=<id>&participantId=<token>&status=<status>.
func (h *ParticipantHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListParticipantsFilter
	query := r.URL.Query()

	if v := query.Get("tournament"); v != "" {
		filter.TournamentID = &v
	}
	if v := query.Get("participantId"); v != "" {
		filter.ParticipantID = &v
	}
	if v := query.Get("status"); v != "" {
		status := models.ParticipantStatus(v)
		switch status {
		case models.ParticipantRegistered, models.ParticipantJoined, models.ParticipantDropped, models.ParticipantBanned:
			filter.Status = &status
		default:
			badRequestResponse(w, r, fmt.Errorf("invalid status query parameter: %q", v))
			return
		}
	}

	participants, err := h.participantService.ListParticipants(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": participants}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateStatusHandler обрабатывает PATCH /api/participants/{participantID}/status (admin).
func (h *ParticipantHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	participantID := chi.URLParam(r, "participantID")
	if participantID == "" {
		badRequestResponse(w, r, errors.New("missing participantID"))
		return
	}

	var input struct {
		Status models.ParticipantStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	switch input.Status {
	case models.ParticipantRegistered, models.ParticipantJoined, models.ParticipantDropped, models.ParticipantBanned:
	default:
		badRequestResponse(w, r, fmt.Errorf("invalid participant status: %q", input.Status))
		return
	}

	if err := h.participantService.ChangeParticipantStatus(r.Context(), participantID, input.Status); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": input.Status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
