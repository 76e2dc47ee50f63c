package store

import (
	"context"
	"fmt"

	"github.com/Simplici0/calhas/internal/model"
	"github.com/Simplici0/calhas/internal/quote"
)

// Dashboard gathers the back-office landing counters.
func (s *Store) Dashboard(ctx context.Context) (model.Dashboard, error) {
	byCategory, err := s.CountProjectsByCategory(ctx)
	if err != nil {
		return model.Dashboard{}, err
	}
	total := 0
	for _, n := range byCategory {
		total += n
	}

	unread, err := s.CountUnreadContacts(ctx)
	if err != nil {
		return model.Dashboard{}, err
	}

	byStatus := map[string]int{
		string(quote.StatusDraft):     0,
		string(quote.StatusSent):      0,
		string(quote.StatusApproved):  0,
		string(quote.StatusRejected):  0,
		string(quote.StatusCancelled): 0,
	}
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM quotes GROUP BY status`)
	if err != nil {
		return model.Dashboard{}, fmt.Errorf("count quotes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return model.Dashboard{}, fmt.Errorf("scan quote count: %w", err)
		}
		byStatus[status] = n
	}
	if err := rows.Err(); err != nil {
		return model.Dashboard{}, fmt.Errorf("iterate quote counts: %w", err)
	}

	return model.Dashboard{
		TotalProjects:      total,
		ProjectsByCategory: byCategory,
		UnreadContacts:     unread,
		QuotesByStatus:     byStatus,
	}, nil
}
