package quote

import (
	"errors"
	"fmt"

	"github.com/Simplici0/calhas/internal/pricing"
)

const (
	defaultItemType     = "Calha"
	defaultWidthMM      = 500
	defaultThicknessMM  = 0.5
	defaultLengthMeters = 1
)

var ErrItemIndex = errors.New("item index out of range")

// ItemFields are the caller-editable fields of an item.
type ItemFields struct {
	ItemType      string             `json:"item_type"`
	MaterialID    int64              `json:"material_id"`
	ServiceTypeID int64              `json:"service_type_id"`
	WidthMM       float64            `json:"width_mm"`
	ThicknessMM   float64            `json:"thickness_mm"`
	LengthMeters  float64            `json:"length_meters"`
	Difficulty    pricing.Difficulty `json:"difficulty_level"`
	Notes         string             `json:"notes"`
}

// ItemPatch changes only the non-nil fields of an item.
type ItemPatch struct {
	ItemType      *string
	MaterialID    *int64
	ServiceTypeID *int64
	WidthMM       *float64
	ThicknessMM   *float64
	LengthMeters  *float64
	Difficulty    *pricing.Difficulty
	Notes         *string
}

// Totals are the quote-level amounts derived from the current items.
type Totals struct {
	TotalAmount float64 `json:"total_amount"`
	Discount    float64 `json:"discount"`
	FinalAmount float64 `json:"final_amount"`
}

// Draft is an unsaved quote being composed against a catalog.
// A Draft is owned by one caller and is not safe for concurrent use.
type Draft struct {
	CustomerID int64
	Discount   float64
	Notes      string

	catalog Catalog
	items   []Item
	lines   []pricing.Line
}

func NewDraft(catalog Catalog) *Draft {
	return &Draft{catalog: catalog}
}

// DefaultItem returns the fields of a new item: the usual gutter defaults with
// the first material and service of catalog.
func DefaultItem(catalog Catalog) ItemFields {
	fields := ItemFields{
		ItemType:     defaultItemType,
		WidthMM:      defaultWidthMM,
		ThicknessMM:  defaultThicknessMM,
		LengthMeters: defaultLengthMeters,
		Difficulty:   pricing.DifficultyNormal,
	}
	if len(catalog.Materials) > 0 {
		fields.MaterialID = catalog.Materials[0].ID
	}
	if len(catalog.Services) > 0 {
		fields.ServiceTypeID = catalog.Services[0].ID
	}
	return fields
}

// AddItem appends a DefaultItem and returns the new item's index.
func (d *Draft) AddItem() int {
	return d.AppendItem(DefaultItem(d.catalog))
}

// AppendItem appends an item with exactly the given fields.
func (d *Draft) AppendItem(f ItemFields) int {
	item := Item{
		ItemType:      f.ItemType,
		MaterialID:    f.MaterialID,
		ServiceTypeID: f.ServiceTypeID,
		WidthMM:       f.WidthMM,
		ThicknessMM:   f.ThicknessMM,
		LengthMeters:  f.LengthMeters,
		Difficulty:    pricing.ParseDifficulty(string(f.Difficulty)),
		Notes:         f.Notes,
	}
	d.items = append(d.items, item)
	d.lines = append(d.lines, nil)
	idx := len(d.items) - 1
	d.recompute(idx)
	return idx
}

// UpdateItem applies p to the item at idx and recomputes its cost.
func (d *Draft) UpdateItem(idx int, p ItemPatch) error {
	if idx < 0 || idx >= len(d.items) {
		return fmt.Errorf("update item %d: %w", idx, ErrItemIndex)
	}

	item := &d.items[idx]
	if p.ItemType != nil {
		item.ItemType = *p.ItemType
	}
	if p.MaterialID != nil {
		item.MaterialID = *p.MaterialID
	}
	if p.ServiceTypeID != nil {
		item.ServiceTypeID = *p.ServiceTypeID
	}
	if p.WidthMM != nil {
		item.WidthMM = *p.WidthMM
	}
	if p.ThicknessMM != nil {
		item.ThicknessMM = *p.ThicknessMM
	}
	if p.LengthMeters != nil {
		item.LengthMeters = *p.LengthMeters
	}
	if p.Difficulty != nil {
		item.Difficulty = pricing.ParseDifficulty(string(*p.Difficulty))
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}

	d.recompute(idx)
	return nil
}

// RemoveItem deletes the item at idx, keeping the order of the rest.
func (d *Draft) RemoveItem(idx int) error {
	if idx < 0 || idx >= len(d.items) {
		return fmt.Errorf("remove item %d: %w", idx, ErrItemIndex)
	}
	d.items = append(d.items[:idx], d.items[idx+1:]...)
	d.lines = append(d.lines[:idx], d.lines[idx+1:]...)
	for i := idx; i < len(d.items); i++ {
		d.items[i].Position = i + 1
	}
	return nil
}

// Items returns a copy of the current items.
func (d *Draft) Items() []Item {
	out := make([]Item, len(d.items))
	copy(out, d.items)
	return out
}

// Line returns the priced variant of the item at idx.
func (d *Draft) Line(idx int) (pricing.Line, error) {
	if idx < 0 || idx >= len(d.lines) {
		return nil, fmt.Errorf("line %d: %w", idx, ErrItemIndex)
	}
	return d.lines[idx], nil
}

func (d *Draft) Totals() Totals {
	return Totals{
		TotalAmount: TotalAmount(d.items),
		Discount:    d.Discount,
		FinalAmount: FinalAmount(d.items, d.Discount),
	}
}

// Validate checks everything Submit requires before any store call.
func (d *Draft) Validate() error {
	if d.CustomerID <= 0 || len(d.items) == 0 {
		return &ValidationError{
			Err:     missingRequiredErr(d),
			Message: "Selecione um cliente e adicione pelo menos um item",
		}
	}
	if d.Discount < 0 {
		return &ValidationError{Err: ErrNegativeDiscount, Message: "O desconto não pode ser negativo"}
	}
	for i, line := range d.lines {
		if partial, ok := line.(pricing.PartialItem); ok {
			return &ValidationError{
				Err:     ErrIncompleteItem,
				Message: fmt.Sprintf("Item %d incompleto: %s", i+1, partial),
			}
		}
	}
	return nil
}

func missingRequiredErr(d *Draft) error {
	if d.CustomerID <= 0 {
		return ErrCustomerRequired
	}
	return ErrNoItems
}

func (d *Draft) recompute(idx int) {
	d.items[idx].Position = idx + 1
	d.lines[idx] = d.catalog.price(&d.items[idx])
}

// quote builds the header and items to persist, in draft status.
func (d *Draft) quote(number string, createdBy int64) *Quote {
	totals := d.Totals()
	return &Quote{
		QuoteNumber: number,
		CustomerID:  d.CustomerID,
		Status:      StatusDraft,
		Items:       d.Items(),
		TotalAmount: totals.TotalAmount,
		Discount:    totals.Discount,
		FinalAmount: totals.FinalAmount,
		Notes:       d.Notes,
		CreatedBy:   createdBy,
	}
}
