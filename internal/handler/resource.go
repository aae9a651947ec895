// internal/handler/resource.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/repository"
	"github.com/emresys/emre/internal/service"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	resourceService *service.ResourceService
}

func NewResourceHandler(resourceService *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// CreateHandler adds a resource to an organization's inventory. Org admins
// only.
func (h *ResourceHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input service.CreateResourceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resource, err := h.resourceService.Create(r.Context(), input, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, resource)
}

// ListHandler returns resources matching query filters.
func (h *ResourceHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}

	filter := repository.ResourceFilter{Pagination: paginationFromQuery(r)}
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
		s := model.ResourceStatus(v)
		filter.Status = &s
	}
	if v := r.URL.Query().Get("type"); v != "" {
		t := model.ResourceType(v)
		filter.Type = &t
	}

	resources, err := h.resourceService.List(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resources)
}

// GetHandler returns the resource detail view.
func (h *ResourceHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}
	resourceID, ok := uuidParam(w, r, "resourceID")
	if !ok {
		return
	}

	detail, err := h.resourceService.Get(r.Context(), resourceID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// UpdateHandler applies a partial update. Status is never settable here.
func (h *ResourceHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(w, r, "resourceID")
	if !ok {
		return
	}

	var input service.UpdateResourceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resource, err := h.resourceService.Update(r.Context(), resourceID, input, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resource)
}

// AssignHandler checks out units of the resource against an incident.
func (h *ResourceHandler) AssignHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(w, r, "resourceID")
	if !ok {
		return
	}

	var input service.AssignResourceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	assignment, err := h.resourceService.Assign(r.Context(), resourceID, input, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, assignment)
}

type returnResourceRequest struct {
	AssignmentID uuid.UUID `json:"assignment_id"`
}

// ReturnHandler closes an assignment and restores availability. The
// assignment must belong to the resource in the path.
func (h *ResourceHandler) ReturnHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(w, r, "resourceID")
	if !ok {
		return
	}

	var req returnResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AssignmentID == uuid.Nil {
		respondWithError(w, http.StatusBadRequest, "assignment_id is required")
		return
	}
	defer r.Body.Close()

	assignment, err := h.resourceService.Return(r.Context(), resourceID, req.AssignmentID, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, assignment)
}

// ListAssignmentsHandler returns the resource's checkout history.
func (h *ResourceHandler) ListAssignmentsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}
	resourceID, ok := uuidParam(w, r, "resourceID")
	if !ok {
		return
	}

	assignments, err := h.resourceService.ListAssignments(r.Context(), resourceID, paginationFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, assignments)
}
