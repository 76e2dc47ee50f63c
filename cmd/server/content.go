package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/calhas/internal/model"
)

// pageParam reads and validates the {page} URL parameter.
func pageParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	page := chi.URLParam(r, "page")
	if !model.ValidPage(page) {
		writeError(w, http.StatusNotFound, "unknown_page", "Página não encontrada")
		return "", false
	}
	return page, true
}

type pageContentRequest struct {
	SectionKey   string `json:"section_key"`
	ContentType  string `json:"content_type"`
	ContentValue string `json:"content_value"`
	OrderIndex   *int   `json:"order_index"`
}

func (req pageContentRequest) validate() error {
	if !model.ValidContentType(req.ContentType) {
		return fmt.Errorf("Tipo de conteúdo inválido: %q", req.ContentType)
	}
	return requireText(strings.TrimSpace(req.SectionKey), "Chave da seção")
}

func (s *server) handlePageContentMap(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	content, err := s.store.PageContentMap(r.Context(), page)
	if err != nil {
		writeFailure(w, r, "load page content", err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func (s *server) handleListPageContent(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	sections, err := s.store.ListPageContent(r.Context(), page)
	if err != nil {
		writeFailure(w, r, "list page content", err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

// handleCreatePageContent appends a section. An empty body adds a blank text
// section with a generated key.
func (s *server) handleCreatePageContent(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	req := pageContentRequest{
		SectionKey:  fmt.Sprintf("new_section_%d", time.Now().UnixMilli()),
		ContentType: "text",
	}
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	c := model.PageContent{
		PageName:     page,
		SectionKey:   strings.TrimSpace(req.SectionKey),
		ContentType:  req.ContentType,
		ContentValue: req.ContentValue,
	}
	if err := s.store.CreatePageContent(r.Context(), &c); err != nil {
		writeFailure(w, r, "create page content", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// handleSavePageContent writes a section by key, creating it when missing.
func (s *server) handleSavePageContent(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	var req pageContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	c := model.PageContent{
		PageName:     page,
		SectionKey:   strings.TrimSpace(req.SectionKey),
		ContentType:  req.ContentType,
		ContentValue: req.ContentValue,
	}
	if req.OrderIndex != nil {
		c.OrderIndex = *req.OrderIndex
	}
	if err := s.store.UpsertPageContent(r.Context(), &c); err != nil {
		writeFailure(w, r, "save page content", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *server) handleUpdatePageContent(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req pageContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	c := model.PageContent{
		ID:           id,
		PageName:     page,
		SectionKey:   strings.TrimSpace(req.SectionKey),
		ContentType:  req.ContentType,
		ContentValue: req.ContentValue,
	}
	if req.OrderIndex != nil {
		c.OrderIndex = *req.OrderIndex
	}
	if err := s.store.UpdatePageContent(r.Context(), c); err != nil {
		writeFailure(w, r, "update page content", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *server) handleDeletePageContent(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeletePageContent(r.Context(), page, id); err != nil {
		writeFailure(w, r, "delete page content", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
