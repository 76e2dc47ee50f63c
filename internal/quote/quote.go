package quote

import (
	"time"

	"github.com/Simplici0/calhas/internal/pricing"
)

// Status is the lifecycle state of a persisted quote.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

var statusLabels = map[Status]string{
	StatusDraft:     "Rascunho",
	StatusSent:      "Enviado",
	StatusApproved:  "Aprovado",
	StatusRejected:  "Rejeitado",
	StatusCancelled: "Cancelado",
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label, or the raw value for unknown statuses.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Item is one priced line of a quote.
// UnitCost and TotalCost are derived and only written by recompute.
type Item struct {
	ID            int64              `json:"id,omitempty"`
	Position      int                `json:"position"`
	ItemType      string             `json:"item_type"`
	MaterialID    int64              `json:"material_id"`
	ServiceTypeID int64              `json:"service_type_id"`
	WidthMM       float64            `json:"width_mm"`
	ThicknessMM   float64            `json:"thickness_mm"`
	LengthMeters  float64            `json:"length_meters"`
	Difficulty    pricing.Difficulty `json:"difficulty_level"`
	UnitCost      float64            `json:"unit_cost"`
	TotalCost     float64            `json:"total_cost"`
	Notes         string             `json:"notes"`
}

// Quote is a priced proposal to a customer.
type Quote struct {
	ID           int64     `json:"id"`
	QuoteNumber  string    `json:"quote_number"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	Status       Status    `json:"status"`
	Items        []Item    `json:"items,omitempty"`
	TotalAmount  float64   `json:"total_amount"`
	Discount     float64   `json:"discount"`
	FinalAmount  float64   `json:"final_amount"`
	Notes        string    `json:"notes"`
	CreatedBy    int64     `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TotalAmount sums the item totals. An empty list yields 0.
func TotalAmount(items []Item) float64 {
	total := 0.0
	for _, item := range items {
		total += item.TotalCost
	}
	return total
}

// FinalAmount is TotalAmount minus discount. The result is not floored at zero.
func FinalAmount(items []Item, discount float64) float64 {
	return TotalAmount(items) - discount
}
