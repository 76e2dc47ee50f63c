package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Simplici0/calhas/internal/model"
)

func validateProject(p *model.Project) error {
	p.Title = strings.TrimSpace(p.Title)
	if err := requireText(p.Title, "Título"); err != nil {
		return err
	}
	if !model.ValidProjectCategory(p.Category) {
		return errors.New("Categoria inválida")
	}
	if len(p.Images) == 0 {
		return errors.New("Adicione pelo menos uma imagem")
	}
	return nil
}

func (s *server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	projects, err := s.store.ListProjects(r.Context(), model.ProjectListOptions{
		Category:     q.Get("category"),
		Search:       q.Get("search"),
		FeaturedOnly: q.Get("featured") == "true",
	})
	if err != nil {
		writeFailure(w, r, "list projects", err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		writeFailure(w, r, "get project", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var p model.Project
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := validateProject(&p); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if err := s.store.CreateProject(r.Context(), &p); err != nil {
		writeFailure(w, r, "create project", err)
		return
	}
	created, err := s.store.GetProject(r.Context(), p.ID)
	if err != nil {
		writeFailure(w, r, "reload project", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var p model.Project
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := validateProject(&p); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	p.ID = id
	if err := s.store.UpdateProject(r.Context(), p); err != nil {
		writeFailure(w, r, "update project", err)
		return
	}
	updated, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		writeFailure(w, r, "reload project", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteProject removes the project and then its images. Image cleanup
// failures are logged and do not fail the request.
func (s *server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	images, err := s.store.DeleteProject(r.Context(), id)
	if err != nil {
		writeFailure(w, r, "delete project", err)
		return
	}
	for _, url := range images {
		key, ok := s.blobs.KeyFromURL(url)
		if !ok {
			slog.WarnContext(r.Context(), "project image not in blob store", "project_id", id, "url", url)
			continue
		}
		if err := s.blobs.Delete(r.Context(), key); err != nil {
			slog.ErrorContext(r.Context(), "delete project image failed", "project_id", id, "key", key, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
