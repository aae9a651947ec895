// internal/handler/team.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/service"
)

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// CreateHandler creates a team with the caller as its leader. Org admins
// only.
func (h *TeamHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input service.CreateTeamInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	team, err := h.teamService.Create(r.Context(), input, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, team)
}

// ListByOrganizationHandler returns an organization's teams. Members only.
func (h *TeamHandler) ListByOrganizationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	orgID, ok := uuidParam(w, r, "orgID")
	if !ok {
		return
	}

	var status *model.TeamStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := model.TeamStatus(v)
		status = &s
	}

	teams, err := h.teamService.ListByOrganization(r.Context(), orgID, userID, status, paginationFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, teams)
}

// GetHandler returns the team detail view.
func (h *TeamHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}

	detail, err := h.teamService.Get(r.Context(), teamID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// UpdateHandler applies a partial update. Team leaders and org admins.
func (h *TeamHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}

	var input service.UpdateTeamInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	team, err := h.teamService.Update(r.Context(), teamID, input, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, team)
}

type addTeamMemberRequest struct {
	Role model.TeamRole `json:"role"`
}

// AddMemberHandler adds an org member to the team. The target must hold an
// active membership in the team's organization.
func (h *TeamHandler) AddMemberHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}
	targetID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}

	var req addTeamMemberRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		defer r.Body.Close()
	}

	membership, err := h.teamService.AddMember(r.Context(), teamID, targetID, req.Role, actorID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, membership)
}

// RemoveMemberHandler removes a member from the team.
func (h *TeamHandler) RemoveMemberHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}
	targetID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(r.Context(), teamID, targetID, actorID); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Member removed"})
}
