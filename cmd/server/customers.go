package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Simplici0/calhas/internal/model"
)

func validateCustomer(c *model.Customer) error {
	c.FullName = strings.TrimSpace(c.FullName)
	c.CompanyName = strings.TrimSpace(c.CompanyName)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Status == "" {
		c.Status = model.CustomerPreList
	}

	switch c.Status {
	case model.CustomerActive, model.CustomerPreList, model.CustomerInactive:
	default:
		return errors.New("Status de cliente inválido")
	}

	var nameErr error
	switch c.CustomerType {
	case model.CustomerPerson:
		nameErr = requireText(c.FullName, "Nome completo")
	case model.CustomerCompany:
		nameErr = requireText(c.CompanyName, "Razão social")
	default:
		return errors.New("Tipo de cliente deve ser PF ou PJ")
	}
	return firstError(nameErr, requireText(c.Phone, "Telefone"))
}

func (s *server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	customers, err := s.store.ListCustomers(r.Context(), model.CustomerListOptions{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		Status: q.Get("status"),
	})
	if err != nil {
		writeFailure(w, r, "list customers", err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (s *server) handleListActiveCustomers(w http.ResponseWriter, r *http.Request) {
	options, err := s.store.ListActiveCustomers(r.Context())
	if err != nil {
		writeFailure(w, r, "list active customers", err)
		return
	}
	writeJSON(w, http.StatusOK, options)
}

func (s *server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := s.store.GetCustomer(r.Context(), id)
	if err != nil {
		writeFailure(w, r, "get customer", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var c model.Customer
	if !decodeJSON(w, r, &c) {
		return
	}
	if err := validateCustomer(&c); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	c.ID = 0
	if err := s.store.CreateCustomer(r.Context(), &c); err != nil {
		writeFailure(w, r, "create customer", err)
		return
	}
	created, err := s.store.GetCustomer(r.Context(), c.ID)
	if err != nil {
		writeFailure(w, r, "reload customer", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var c model.Customer
	if !decodeJSON(w, r, &c) {
		return
	}
	if err := validateCustomer(&c); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	c.ID = id
	if err := s.store.UpdateCustomer(r.Context(), c); err != nil {
		writeFailure(w, r, "update customer", err)
		return
	}
	updated, err := s.store.GetCustomer(r.Context(), id)
	if err != nil {
		writeFailure(w, r, "reload customer", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteCustomer(r.Context(), id); err != nil {
		writeFailure(w, r, "delete customer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
