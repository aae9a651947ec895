// internal/handler/auth.go
package handler

import (
	"net/http"

	"github.com/emresys/emre/internal/service"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginHandler exchanges form-encoded credentials for a bearer token. The
// form field is named "username" but carries the account email.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		respondWithError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	output, err := h.userService.Authenticate(r.Context(), email, password)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, TokenResponse{
		AccessToken: output.Token,
		TokenType:   "bearer",
	})
}

// RefreshTokenHandler issues a fresh token for the authenticated caller.
func (h *AuthHandler) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	token, err := h.userService.RefreshToken(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// LogoutHandler is stateless; tokens are not tracked server-side, so logout
// just tells the client to discard its copy.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}
