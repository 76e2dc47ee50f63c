package main

import (
	"errors"
	"net/http"

	"github.com/Simplici0/calhas/internal/auth"
	"github.com/Simplici0/calhas/internal/store"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, token, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Credenciais inválidas. Tente novamente.")
		return
	}
	if err != nil {
		writeFailure(w, r, "sign in", err)
		return
	}

	s.auth.SetCookie(w, token, sess.ExpiresAt, s.secureCookies)
	writeJSON(w, http.StatusOK, sess)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.ClearCookie(w, s.secureCookies)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}
	user, err := s.store.GetUser(r.Context(), sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		s.auth.ClearCookie(w, s.secureCookies)
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}
	if err != nil {
		writeFailure(w, r, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, auth.Session{UserID: user.ID, Email: user.Email, ExpiresAt: sess.ExpiresAt})
}
