package main

import (
	"net/http"

	"github.com/Simplici0/calhas/internal/pricing"
)

type materialRequest struct {
	Name      *string  `json:"name"`
	Density   *float64 `json:"density"`
	CostPerKg *float64 `json:"cost_per_kg"`
	Active    *bool    `json:"active"`
}

// apply overlays the non-nil fields of req onto m.
func (req materialRequest) apply(m *pricing.Material) error {
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Density != nil {
		m.Density = *req.Density
	}
	if req.CostPerKg != nil {
		m.CostPerKg = *req.CostPerKg
	}
	if req.Active != nil {
		m.Active = *req.Active
	}
	return firstError(
		requireText(m.Name, "Nome"),
		requirePositive(m.Density, "Densidade"),
		requirePositive(m.CostPerKg, "Custo por kg"),
	)
}

func (s *server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := s.store.ListMaterials(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		writeFailure(w, r, "list materials", err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

func (s *server) handleCreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m := pricing.Material{Name: "Novo Material", Density: 2.7, CostPerKg: 30, Active: true}
	if err := req.apply(&m); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if err := s.store.CreateMaterial(r.Context(), &m); err != nil {
		writeFailure(w, r, "create material", err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *server) handleUpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req materialRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := s.store.GetMaterial(r.Context(), id)
	if err != nil {
		writeFailure(w, r, "get material", err)
		return
	}
	if err := req.apply(&m); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if err := s.store.UpdateMaterial(r.Context(), m); err != nil {
		writeFailure(w, r, "update material", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *server) handleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteMaterial(r.Context(), id); err != nil {
		writeFailure(w, r, "delete material", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type serviceTypeRequest struct {
	Name                   *string  `json:"name"`
	Description            *string  `json:"description"`
	DifficultyFactorNormal *float64 `json:"difficulty_factor_normal"`
	DifficultyFactorMedium *float64 `json:"difficulty_factor_medium"`
	DifficultyFactorHard   *float64 `json:"difficulty_factor_hard"`
	Active                 *bool    `json:"active"`
}

func (req serviceTypeRequest) apply(st *pricing.ServiceType) error {
	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Description != nil {
		st.Description = *req.Description
	}
	if req.DifficultyFactorNormal != nil {
		st.DifficultyFactorNormal = *req.DifficultyFactorNormal
	}
	if req.DifficultyFactorMedium != nil {
		st.DifficultyFactorMedium = *req.DifficultyFactorMedium
	}
	if req.DifficultyFactorHard != nil {
		st.DifficultyFactorHard = *req.DifficultyFactorHard
	}
	if req.Active != nil {
		st.Active = *req.Active
	}
	return firstError(
		requireText(st.Name, "Nome"),
		requirePositive(st.DifficultyFactorNormal, "Fator normal"),
		requirePositive(st.DifficultyFactorMedium, "Fator médio"),
		requirePositive(st.DifficultyFactorHard, "Fator difícil"),
	)
}

func (s *server) handleListServiceTypes(w http.ResponseWriter, r *http.Request) {
	services, err := s.store.ListServiceTypes(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		writeFailure(w, r, "list service types", err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (s *server) handleCreateServiceType(w http.ResponseWriter, r *http.Request) {
	var req serviceTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st := pricing.ServiceType{
		Name:                   "Novo Serviço",
		DifficultyFactorNormal: 2.1,
		DifficultyFactorMedium: 2.7,
		DifficultyFactorHard:   3.5,
		Active:                 true,
	}
	if err := req.apply(&st); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if err := s.store.CreateServiceType(r.Context(), &st); err != nil {
		writeFailure(w, r, "create service type", err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *server) handleUpdateServiceType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req serviceTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st, err := s.store.GetServiceType(r.Context(), id)
	if err != nil {
		writeFailure(w, r, "get service type", err)
		return
	}
	if err := req.apply(&st); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if err := s.store.UpdateServiceType(r.Context(), st); err != nil {
		writeFailure(w, r, "update service type", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *server) handleDeleteServiceType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteServiceType(r.Context(), id); err != nil {
		writeFailure(w, r, "delete service type", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
