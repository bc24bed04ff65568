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

type userRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type userList struct {
	Users []core.User `json:"users"`
	Count int         `json:"count"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		respondCoreError(w, r, err, "users")
		return
	}
	if users == nil {
		users = []core.User{}
	}
	respondData(w, http.StatusOK, userList{Users: users, Count: len(users)})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
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
	role, err := core.ParseRole(req.Role)
	if err != nil {
		fieldErrors = append(fieldErrors, "role must be 'user' or 'admin'")
	}
	if len(fieldErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}

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
		Role:         role,
	}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		respondCoreError(w, r, err, "user")
		return
	}
	claims, _ := claimsFrom(r)
	s.recorder.Record(r.Context(), events.EntityUser, events.ActionCreated, user.ID, claims.Email)
	respondMessage(w, http.StatusCreated, "User created", user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	claims, _ := claimsFrom(r)

	var (
		patch       core.UserPatch
		fieldErrors []string
	)
	if req.Email != "" {
		if err := checkmail.ValidateFormat(req.Email); err != nil {
			fieldErrors = append(fieldErrors, "email must be a valid address")
		} else {
			patch.Email = &req.Email
		}
	}
	if req.Password != "" {
		if len(req.Password) < minPasswordLength {
			fieldErrors = append(fieldErrors, "password must be at least 6 characters")
		} else {
			hash, err := auth.HashPassword(req.Password)
			if err != nil {
				respondCoreError(w, r, err, "user")
				return
			}
			patch.PasswordHash = &hash
		}
	}
	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		patch.Name = &name
	}
	if req.Role != "" {
		role, err := core.ParseRole(req.Role)
		if err != nil {
			fieldErrors = append(fieldErrors, "role must be 'user' or 'admin'")
		} else {
			// Admins cannot change their own role; checked before any
			// write happens.
			if id == claims.UserID && string(role) != claims.Role {
				respondError(w, http.StatusBadRequest, "You cannot change your own role")
				return
			}
			patch.Role = &role
		}
	}
	if len(fieldErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}

	user, err := s.store.UpdateUser(r.Context(), id, patch)
	if err != nil {
		respondCoreError(w, r, err, "user")
		return
	}
	s.recorder.Record(r.Context(), events.EntityUser, events.ActionUpdated, id, claims.Email)
	respondMessage(w, http.StatusOK, "User updated", user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	claims, _ := claimsFrom(r)
	if id == claims.UserID {
		respondError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		respondCoreError(w, r, err, "user")
		return
	}
	s.recorder.Record(r.Context(), events.EntityUser, events.ActionDeleted, id, claims.Email)
	respondMessage(w, http.StatusOK, "User deleted", nil)
}
