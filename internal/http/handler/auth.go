package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rezkam/taskmaster/internal/http/response"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// SignUp handles POST /v1/auth/signup.
func (s *Server) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		response.BadRequest(w, "email and password are required")
		return
	}

	user, sessionToken, err := s.authenticator.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, authResponse{UserID: user.ID, Email: user.Email, Token: sessionToken})
}

// SignIn handles POST /v1/auth/signin.
func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	user, sessionToken, err := s.authenticator.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, authResponse{UserID: user.ID, Email: user.Email, Token: sessionToken})
}

// SignOut handles POST /v1/auth/signout. Revoking an already-invalid token
// succeeds: the session is gone either way.
func (s *Server) SignOut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if err := s.authenticator.SignOut(r.Context(), req.Token); err != nil {
		response.InternalError(w, r, err)
		return
	}
	response.NoContent(w)
}
