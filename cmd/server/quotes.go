package main

import (
	"errors"
	"net/http"

	"github.com/Simplici0/calhas/internal/auth"
	"github.com/Simplici0/calhas/internal/money"
	"github.com/Simplici0/calhas/internal/pricing"
	"github.com/Simplici0/calhas/internal/quote"
)

type draftRequest struct {
	CustomerID int64              `json:"customer_id"`
	Discount   float64            `json:"discount"`
	Notes      string             `json:"notes"`
	Items      []quote.ItemFields `json:"items"`
}

// draft prices the request against the active catalog.
func (s *server) draft(r *http.Request, req draftRequest) (*quote.Draft, error) {
	catalog, err := s.store.LoadCatalog(r.Context())
	if err != nil {
		return nil, err
	}
	d := quote.NewDraft(catalog)
	d.CustomerID = req.CustomerID
	d.Discount = req.Discount
	d.Notes = req.Notes
	for _, f := range req.Items {
		d.AppendItem(f)
	}
	return d, nil
}

func (s *server) handleSubmitQuote(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}
	var req draftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := s.draft(r, req)
	if err != nil {
		writeFailure(w, r, "load catalog", err)
		return
	}

	submitted, err := s.quotes.Submit(r.Context(), d, sess.UserID)
	if err != nil {
		writeFailure(w, r, "submit quote", err)
		return
	}
	q, err := s.store.GetQuote(r.Context(), submitted.ID)
	if err != nil {
		writeFailure(w, r, "reload quote", err)
		return
	}
	writeJSON(w, http.StatusCreated, newQuoteResponse(q))
}

type previewLine struct {
	quote.Item
	Complete  bool     `json:"complete"`
	Missing   []string `json:"missing,omitempty"`
	UnitCost  string   `json:"unit_cost_display"`
	TotalCost string   `json:"total_cost_display"`
}

type previewResponse struct {
	Items        []previewLine `json:"items"`
	Totals       quote.Totals  `json:"totals"`
	TotalDisplay string        `json:"total_display"`
	FinalDisplay string        `json:"final_display"`
	Error        string        `json:"error,omitempty"`
}

// handlePreviewQuote prices a draft without persisting it.
func (s *server) handlePreviewQuote(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := s.draft(r, req)
	if err != nil {
		writeFailure(w, r, "load catalog", err)
		return
	}

	items := d.Items()
	resp := previewResponse{Items: make([]previewLine, 0, len(items)), Totals: d.Totals()}
	for i, item := range items {
		line, err := d.Line(i)
		if err != nil {
			writeFailure(w, r, "preview quote", err)
			return
		}
		pl := previewLine{
			Item:      item,
			Complete:  line.Complete(),
			UnitCost:  money.BRL(item.UnitCost),
			TotalCost: money.BRL(item.TotalCost),
		}
		if partial, ok := line.(pricing.PartialItem); ok {
			pl.Missing = partial.Missing
		}
		resp.Items = append(resp.Items, pl)
	}
	resp.TotalDisplay = money.BRL(resp.Totals.TotalAmount)
	resp.FinalDisplay = money.BRL(resp.Totals.FinalAmount)
	var verr *quote.ValidationError
	if errors.As(d.Validate(), &verr) {
		resp.Error = verr.Message
	}
	writeJSON(w, http.StatusOK, resp)
}

type statusOption struct {
	Value quote.Status `json:"value"`
	Label string       `json:"label"`
}

var quoteStatuses = []quote.Status{
	quote.StatusDraft, quote.StatusSent, quote.StatusApproved, quote.StatusRejected, quote.StatusCancelled,
}

// handleQuoteForm returns everything the quote form selects from.
func (s *server) handleQuoteForm(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.store.LoadCatalog(r.Context())
	if err != nil {
		writeFailure(w, r, "load catalog", err)
		return
	}
	customers, err := s.store.ListActiveCustomers(r.Context())
	if err != nil {
		writeFailure(w, r, "list active customers", err)
		return
	}

	statuses := make([]statusOption, 0, len(quoteStatuses))
	for _, st := range quoteStatuses {
		statuses = append(statuses, statusOption{Value: st, Label: st.Label()})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"materials":    catalog.Materials,
		"services":     catalog.Services,
		"customers":    customers,
		"difficulties": []pricing.Difficulty{pricing.DifficultyNormal, pricing.DifficultyMedium, pricing.DifficultyHard},
		"statuses":     statuses,
		"default_item": quote.DefaultItem(catalog),
	})
}

type quoteResponse struct {
	quote.Quote
	StatusLabel  string `json:"status_label"`
	FinalDisplay string `json:"final_display"`
}

func newQuoteResponse(q quote.Quote) quoteResponse {
	return quoteResponse{Quote: q, StatusLabel: q.Status.Label(), FinalDisplay: money.BRL(q.FinalAmount)}
}

func (s *server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.store.ListQuotes(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeFailure(w, r, "list quotes", err)
		return
	}
	resp := make([]quoteResponse, 0, len(quotes))
	for _, q := range quotes {
		resp = append(resp, newQuoteResponse(q))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	q, err := s.store.GetQuote(r.Context(), id)
	if err != nil {
		writeFailure(w, r, "get quote", err)
		return
	}
	writeJSON(w, http.StatusOK, newQuoteResponse(q))
}

func (s *server) handleUpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status quote.Status `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.store.UpdateQuoteStatus(r.Context(), id, req.Status); err != nil {
		writeFailure(w, r, "update quote status", err)
		return
	}
	q, err := s.store.GetQuote(r.Context(), id)
	if err != nil {
		writeFailure(w, r, "get quote", err)
		return
	}
	writeJSON(w, http.StatusOK, newQuoteResponse(q))
}
