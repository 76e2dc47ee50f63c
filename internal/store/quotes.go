package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Simplici0/calhas/internal/pricing"
	"github.com/Simplici0/calhas/internal/quote"
)

const (
	quoteNumberFormat   = "ORC-%d-%04d"
	missingCustomerName = "Cliente não encontrado"
)

var _ quote.Store = (*Store)(nil)

// NextQuoteNumber allocates the next number of the current year's sequence,
// e.g. ORC-2026-0001. A number whose quote is never saved is not reused.
func (s *Store) NextQuoteNumber(ctx context.Context) (string, error) {
	year := s.now().Year()

	var n int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO quote_sequences (year, last_value) VALUES (?, 1)
		ON CONFLICT(year) DO UPDATE SET last_value = last_value + 1
		RETURNING last_value
	`, year).Scan(&n)
	if err != nil {
		return "", mapErr("allocate quote number", err)
	}
	return fmt.Sprintf(quoteNumberFormat, year, n), nil
}

// SaveQuote inserts the header and every item in one transaction.
// Any failing item rolls back the header.
func (s *Store) SaveQuote(ctx context.Context, q *quote.Quote) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		status := q.Status
		if status == "" {
			status = quote.StatusDraft
		}

		var createdBy any
		if q.CreatedBy > 0 {
			createdBy = q.CreatedBy
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO quotes (quote_number, customer_id, status, total_amount, discount, final_amount, notes, created_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, q.QuoteNumber, q.CustomerID, status, q.TotalAmount, q.Discount, q.FinalAmount, q.Notes, createdBy)
		if err != nil {
			return mapErr("insert quote", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("quote id: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO quote_items (
				quote_id, position, item_type, material_id, service_type_id, width_mm, thickness_mm,
				length_meters, difficulty_level, unit_cost, total_cost, notes
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare quote item insert: %w", err)
		}
		defer stmt.Close()

		for i, item := range q.Items {
			position := item.Position
			if position == 0 {
				position = i + 1
			}
			if _, err := stmt.ExecContext(ctx,
				id, position, item.ItemType, item.MaterialID, item.ServiceTypeID, item.WidthMM, item.ThicknessMM,
				item.LengthMeters, string(item.Difficulty), item.UnitCost, item.TotalCost, item.Notes,
			); err != nil {
				return mapErr(fmt.Sprintf("insert quote item %d", position), err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListQuotes returns quote headers newest first. search matches the quote
// number or the customer's display name, case-insensitively.
func (s *Store) ListQuotes(ctx context.Context, search string) ([]quote.Quote, error) {
	query := `
		SELECT q.id, q.quote_number, q.customer_id, ` + displayNameSQL + `, q.status, q.total_amount,
			q.discount, q.final_amount, q.notes, COALESCE(q.created_by, 0), q.created_at
		FROM quotes q
		LEFT JOIN customers c ON c.id = q.customer_id`
	var args []any
	if strings.TrimSpace(search) != "" {
		p := likePattern(search)
		query += ` WHERE ` + foldFunc + `(q.quote_number) LIKE ? ESCAPE '\' OR ` + foldFunc + `(` + displayNameSQL + `) LIKE ? ESCAPE '\'`
		args = append(args, p, p)
	}
	query += ` ORDER BY q.created_at DESC, q.id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]quote.Quote, 0)
	for rows.Next() {
		q, err := scanQuoteHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	return quotes, nil
}

// GetQuote returns the header and its items in position order.
func (s *Store) GetQuote(ctx context.Context, id int64) (quote.Quote, error) {
	q, err := scanQuoteHeader(s.db.QueryRowContext(ctx, `
		SELECT q.id, q.quote_number, q.customer_id, `+displayNameSQL+`, q.status, q.total_amount,
			q.discount, q.final_amount, q.notes, COALESCE(q.created_by, 0), q.created_at
		FROM quotes q
		LEFT JOIN customers c ON c.id = q.customer_id
		WHERE q.id = ?
	`, id))
	if err != nil {
		return quote.Quote{}, mapErr("get quote", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, position, item_type, material_id, service_type_id, width_mm, thickness_mm,
			length_meters, difficulty_level, unit_cost, total_cost, notes
		FROM quote_items
		WHERE quote_id = ?
		ORDER BY position, id
	`, id)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("query quote items: %w", err)
	}
	defer rows.Close()

	q.Items = make([]quote.Item, 0)
	for rows.Next() {
		var (
			item       quote.Item
			difficulty string
		)
		if err := rows.Scan(
			&item.ID, &item.Position, &item.ItemType, &item.MaterialID, &item.ServiceTypeID, &item.WidthMM,
			&item.ThicknessMM, &item.LengthMeters, &difficulty, &item.UnitCost, &item.TotalCost, &item.Notes,
		); err != nil {
			return quote.Quote{}, fmt.Errorf("scan quote item: %w", err)
		}
		item.Difficulty = pricing.ParseDifficulty(difficulty)
		q.Items = append(q.Items, item)
	}
	if err := rows.Err(); err != nil {
		return quote.Quote{}, fmt.Errorf("iterate quote items: %w", err)
	}
	return q, nil
}

// UpdateQuoteStatus moves a persisted quote to status.
func (s *Store) UpdateQuoteStatus(ctx context.Context, id int64, status quote.Status) error {
	if !status.Valid() {
		return fmt.Errorf("update quote status %q: %w", status, quote.ErrInvalidStatus)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE quotes SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, string(status), id)
	if err != nil {
		return mapErr("update quote status", err)
	}
	return requireAffected("update quote status", res)
}

func scanQuoteHeader(row rowScanner) (quote.Quote, error) {
	var (
		q      quote.Quote
		status string
	)
	if err := row.Scan(
		&q.ID, &q.QuoteNumber, &q.CustomerID, &q.CustomerName, &status, &q.TotalAmount,
		&q.Discount, &q.FinalAmount, &q.Notes, &q.CreatedBy, scanTime(&q.CreatedAt),
	); err != nil {
		return quote.Quote{}, err
	}
	q.Status = quote.Status(status)
	if q.CustomerName == "" {
		q.CustomerName = missingCustomerName
	}
	return q, nil
}
