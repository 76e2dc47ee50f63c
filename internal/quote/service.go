package quote

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/Simplici0/calhas/internal/quote Store

import (
	"context"
	"fmt"
	"log/slog"
)

// Store persists submitted quotes.
type Store interface {
	// NextQuoteNumber allocates a fresh unique quote number.
	NextQuoteNumber(ctx context.Context) (string, error)
	// SaveQuote writes the header and all items as one unit and returns the header id.
	SaveQuote(ctx context.Context, q *Quote) (int64, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Submit validates d, allocates a quote number and saves the quote.
// Nothing reaches the store when validation fails. createdBy is the id of the
// signed-in user submitting the quote.
func (s *Service) Submit(ctx context.Context, d *Draft, createdBy int64) (*Quote, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	number, err := s.store.NextQuoteNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate quote number: %w", err)
	}

	q := d.quote(number, createdBy)
	id, err := s.store.SaveQuote(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("save quote %s: %w", number, err)
	}
	q.ID = id

	slog.InfoContext(ctx, "quote submitted",
		"quote_id", id,
		"quote_number", number,
		"items", len(q.Items),
		"final_amount", q.FinalAmount,
	)
	return q, nil
}
