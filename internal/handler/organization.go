// internal/handler/organization.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/service"
)

type OrganizationHandler struct {
	orgService *service.OrganizationService
}

func NewOrganizationHandler(orgService *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// CreateHandler creates an organization with the caller as its admin.
func (h *OrganizationHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input service.CreateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.orgService.Create(r.Context(), input, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, org)
}

// ListHandler returns public organizations plus those the caller belongs to.
func (h *OrganizationHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	input := service.ListOrganizationsInput{Page: paginationFromQuery(r)}
	if v := r.URL.Query().Get("visibility"); v != "" {
		vis := model.Visibility(v)
		input.Visibility = &vis
	}

	orgs, err := h.orgService.List(r.Context(), userID, input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, orgs)
}

// GetHandler returns the organization detail view.
func (h *OrganizationHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	orgID, ok := uuidParam(w, r, "orgID")
	if !ok {
		return
	}

	detail, err := h.orgService.Get(r.Context(), orgID, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// UpdateHandler applies a partial update. Admins only.
func (h *OrganizationHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	orgID, ok := uuidParam(w, r, "orgID")
	if !ok {
		return
	}

	var input service.UpdateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.orgService.Update(r.Context(), orgID, input, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, org)
}

// RequestMembershipHandler files a pending membership request for the caller.
func (h *OrganizationHandler) RequestMembershipHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	orgID, ok := uuidParam(w, r, "orgID")
	if !ok {
		return
	}

	membership, err := h.orgService.RequestMembership(r.Context(), orgID, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, membership)
}

// ApproveMembershipHandler activates a pending membership. Admins only.
func (h *OrganizationHandler) ApproveMembershipHandler(w http.ResponseWriter, r *http.Request) {
	approverID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	orgID, ok := uuidParam(w, r, "orgID")
	if !ok {
		return
	}
	targetID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}

	if err := h.orgService.ApproveMembership(r.Context(), orgID, targetID, approverID); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Membership approved"})
}
