// internal/handler/user.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	orgService  *service.OrganizationService
	teamService *service.TeamService
}

func NewUserHandler(userService *service.UserService, orgService *service.OrganizationService, teamService *service.TeamService) *UserHandler {
	return &UserHandler{
		userService: userService,
		orgService:  orgService,
		teamService: teamService,
	}
}

// RegisterHandler creates a new account. Public, no auth.
func (h *UserHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.userService.Register(r.Context(), input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// ProfileHandler returns the caller's profile with org and team memberships.
func (h *UserHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.userService.Profile(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// UpdateProfileHandler applies a partial update to the caller's account.
func (h *UserHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.userService.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// ListOrgMembersHandler returns the active members of an organization with
// their roles.
func (h *UserHandler) ListOrgMembersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	orgID, ok := uuidParam(w, r, "orgID")
	if !ok {
		return
	}

	members, err := h.orgService.ListMembers(r.Context(), orgID, userID, paginationFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, members)
}

type updateOrgRoleRequest struct {
	Role model.OrgRole `json:"role"`
}

// UpdateOrgMemberRoleHandler changes a member's organization role. Admins
// only.
func (h *UserHandler) UpdateOrgMemberRoleHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUserID(w, r)
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

	var req updateOrgRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	membership, err := h.orgService.UpdateMemberRole(r.Context(), orgID, targetID, req.Role, actorID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, membership)
}

type updateTeamRoleRequest struct {
	Role model.TeamRole `json:"role"`
}

// UpdateTeamMemberRoleHandler changes a member's team role. Team leaders
// only.
func (h *UserHandler) UpdateTeamMemberRoleHandler(w http.ResponseWriter, r *http.Request) {
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

	var req updateTeamRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	membership, err := h.teamService.UpdateMemberRole(r.Context(), teamID, targetID, req.Role, actorID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, membership)
}
