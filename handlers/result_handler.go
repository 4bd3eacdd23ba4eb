package handlers

import (
	"errors"
	"net/http"

	"github.com/epicesports/tournament-platform/services"
	"github.com/go-chi/chi/v5"
)

type ResultHandler struct {
	resultService *services.ResultService
}

func NewResultHandler(rs *services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: rs}
}

// CreateHandler обрабатывает POST /api/tournaments/{tournamentID}/results (admin).
func (h *ResultHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if tournamentID == "" {
		badRequestResponse(w, r, errors.New("missing tournamentID"))
		return
	}

	var input services.CreateResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.resultService.CreateResult(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /api/tournaments/{tournamentID}/results
func (h *ResultHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if tournamentID == "" {
		badRequestResponse(w, r, errors.New("missing tournamentID"))
		return
	}

	results, err := h.resultService.ListResultsByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
