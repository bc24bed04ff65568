package http

import (
	"net/http"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"

	"paytrack/internal/auth"
	"paytrack/internal/core"
	"paytrack/internal/events"
)

const minPasswordLength = 6

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type authResponse struct {
	Token string    `json:"token"`
	User  core.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, found, err := s.store.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		respondCoreError(w, r, err, "user")
		return
	}
	// Same response for unknown email and wrong password.
	if !found || !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		respondCoreError(w, r, err, "token")
		return
	}
	respondMessage(w, http.StatusOK, "Login successful", authResponse{Token: token, User: user})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var fieldErrors []string
	if err := checkmail.ValidateFormat(req.Email); err != nil {
		fieldErrors = append(fieldErrors, "email must be a valid address")
	}
	if len(req.Password) < minPasswordLength {
		fieldErrors = append(fieldErrors, "password must be at least 6 characters")
	}
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors = append(fieldErrors, "name is required")
	}
	if len(fieldErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}

	// Pre-check; the scan-then-append window is accepted.
	if _, found, err := s.store.FindUserByEmail(r.Context(), req.Email); err != nil {
		respondCoreError(w, r, err, "user")
		return
	} else if found {
		respondError(w, http.StatusConflict, "A user with this email already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondCoreError(w, r, err, "user")
		return
	}

	user := core.User{
		ID:           "USR-" + uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         core.RoleUser,
	}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		respondCoreError(w, r, err, "user")
		return
	}
	s.recorder.Record(r.Context(), events.EntityUser, events.ActionCreated, user.ID, user.Email)

	token, err := s.tokens.Issue(user)
	if err != nil {
		respondCoreError(w, r, err, "token")
		return
	}
	respondMessage(w, http.StatusCreated, "User registered", authResponse{Token: token, User: user})
}

// handleMe re-reads the user so the response reflects the current
// record, not the snapshot baked into the token.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	user, found, err := s.store.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		respondCoreError(w, r, err, "user")
		return
	}
	if !found {
		respondError(w, http.StatusUnauthorized, "Account no longer exists")
		return
	}
	respondData(w, http.StatusOK, user)
}
