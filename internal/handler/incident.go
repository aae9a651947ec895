// internal/handler/incident.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/repository"
	"github.com/emresys/emre/internal/service"
	"github.com/google/uuid"
)

type IncidentHandler struct {
	incidentService *service.IncidentService
}

func NewIncidentHandler(incidentService *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidentService: incidentService}
}

// CreateHandler opens a new incident. The caller must be an active member of
// the target organization.
func (h *IncidentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input service.CreateIncidentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	incident, err := h.incidentService.Create(r.Context(), input, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, incident)
}

// ListHandler returns incidents matching query filters, newest first.
func (h *IncidentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}

	filter := repository.IncidentFilter{Pagination: paginationFromQuery(r)}
	if v := r.URL.Query().Get("organization_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid organization_id")
			return
		}
		filter.OrganizationID = &id
	}
	if v := r.URL.Query().Get("team_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid team_id")
			return
		}
		filter.TeamID = &id
	}
	if v := r.URL.Query().Get("status"); v != "" {
		s := model.IncidentStatus(v)
		filter.Status = &s
	}
	if v := r.URL.Query().Get("priority"); v != "" {
		p := model.IncidentPriority(v)
		filter.Priority = &p
	}

	incidents, err := h.incidentService.List(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, incidents)
}

// GetHandler returns the incident detail view.
func (h *IncidentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}
	incidentID, ok := uuidParam(w, r, "incidentID")
	if !ok {
		return
	}

	detail, err := h.incidentService.Get(r.Context(), incidentID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// UpdateHandler applies a partial update. Creator, assigned-team member, or
// org admin.
func (h *IncidentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	incidentID, ok := uuidParam(w, r, "incidentID")
	if !ok {
		return
	}

	var input service.UpdateIncidentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	incident, err := h.incidentService.Update(r.Context(), incidentID, input, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, incident)
}

// AddUpdateHandler appends an entry to the incident's update log.
func (h *IncidentHandler) AddUpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	incidentID, ok := uuidParam(w, r, "incidentID")
	if !ok {
		return
	}

	var input service.AddUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	update, err := h.incidentService.AddUpdate(r.Context(), incidentID, userID, input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, update)
}

// ListUpdatesHandler returns the update log in chronological order.
func (h *IncidentHandler) ListUpdatesHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}
	incidentID, ok := uuidParam(w, r, "incidentID")
	if !ok {
		return
	}

	updates, err := h.incidentService.ListUpdates(r.Context(), incidentID, paginationFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updates)
}
