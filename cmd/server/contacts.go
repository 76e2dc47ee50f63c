package main

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Simplici0/calhas/internal/model"
)

const maxContactMessage = 5000

type contactRequest struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	ServiceType        string   `json:"service_type"`
	MaterialPreference string   `json:"material_preference"`
	Message            string   `json:"message"`
	Images             []string `json:"images"`
}

func (s *server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c := model.ContactSubmission{
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.TrimSpace(req.Email),
		Phone:              strings.TrimSpace(req.Phone),
		ServiceType:        req.ServiceType,
		MaterialPreference: req.MaterialPreference,
		Message:            strings.TrimSpace(req.Message),
		Images:             req.Images,
	}
	if err := firstError(
		requireText(c.Name, "Nome"),
		requireText(c.Email, "Email"),
		requireText(c.Phone, "Telefone"),
		requireText(c.Message, "Mensagem"),
	); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if utf8.RuneCountInString(c.Message) > maxContactMessage {
		writeError(w, http.StatusBadRequest, "validation_failed", "Mensagem muito longa")
		return
	}

	if err := s.store.CreateContact(r.Context(), &c); err != nil {
		writeFailure(w, r, "create contact", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": c.ID})
}

func (s *server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := model.ContactListOptions{Status: q.Get("status")}
	switch opts.Status {
	case "", "all", "unread", "read":
	default:
		writeError(w, http.StatusBadRequest, "invalid_status", "Filtro inválido")
		return
	}
	var err error
	if opts.Limit, err = queryInt(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_limit", "limit inválido")
		return
	}
	if opts.Offset, err = queryInt(q.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_offset", "offset inválido")
		return
	}

	contacts, err := s.store.ListContacts(r.Context(), opts)
	if err != nil {
		writeFailure(w, r, "list contacts", err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *server) handleMarkContactRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.MarkContactRead(r.Context(), id); err != nil {
		writeFailure(w, r, "mark contact read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryInt parses an optional non-negative integer query value.
func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
