package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/calhas/internal/model"
)

func scanPageContent(row rowScanner) (model.PageContent, error) {
	var c model.PageContent
	err := row.Scan(&c.ID, &c.PageName, &c.SectionKey, &c.ContentType, &c.ContentValue, &c.OrderIndex, scanTime(&c.UpdatedAt))
	return c, err
}

// ListPageContent returns a page's sections by order_index.
func (s *Store) ListPageContent(ctx context.Context, page string) ([]model.PageContent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page_name, section_key, content_type, content_value, order_index, updated_at
		FROM page_content
		WHERE page_name = ?
		ORDER BY order_index, id
	`, page)
	if err != nil {
		return nil, fmt.Errorf("query page content: %w", err)
	}
	defer rows.Close()

	sections := make([]model.PageContent, 0)
	for rows.Next() {
		c, err := scanPageContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page content: %w", err)
		}
		sections = append(sections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate page content: %w", err)
	}
	return sections, nil
}

// PageContentMap returns section_key -> content_value for a page.
func (s *Store) PageContentMap(ctx context.Context, page string) (map[string]string, error) {
	sections, err := s.ListPageContent(ctx, page)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(sections))
	for _, c := range sections {
		out[c.SectionKey] = c.ContentValue
	}
	return out, nil
}

// CreatePageContent appends a section at the end of the page. A duplicate
// section key fails with ErrConflict.
func (s *Store) CreatePageContent(ctx context.Context, c *model.PageContent) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM page_content WHERE page_name = ?`, c.PageName).Scan(&c.OrderIndex); err != nil {
			return fmt.Errorf("count page content: %w", err)
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO page_content (page_name, section_key, content_type, content_value, order_index)
			VALUES (?, ?, ?, ?, ?)
		`, c.PageName, c.SectionKey, c.ContentType, c.ContentValue, c.OrderIndex)
		if err != nil {
			return mapErr("insert page content", err)
		}
		c.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("page content id: %w", err)
		}
		return nil
	})
}

// UpsertPageContent inserts the section or updates it when page and key exist.
func (s *Store) UpsertPageContent(ctx context.Context, c *model.PageContent) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO page_content (page_name, section_key, content_type, content_value, order_index)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(page_name, section_key) DO UPDATE SET
			content_type = excluded.content_type,
			content_value = excluded.content_value,
			order_index = excluded.order_index,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`, c.PageName, c.SectionKey, c.ContentType, c.ContentValue, c.OrderIndex).Scan(&c.ID)
	if err != nil {
		return mapErr("upsert page content", err)
	}
	return nil
}

// UpdatePageContent rewrites one section of page by id.
func (s *Store) UpdatePageContent(ctx context.Context, c model.PageContent) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE page_content
		SET section_key = ?, content_type = ?, content_value = ?, order_index = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND page_name = ?
	`, c.SectionKey, c.ContentType, c.ContentValue, c.OrderIndex, c.ID, c.PageName)
	if err != nil {
		return mapErr("update page content", err)
	}
	return requireAffected("update page content", res)
}

func (s *Store) DeletePageContent(ctx context.Context, page string, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM page_content WHERE id = ? AND page_name = ?`, id, page)
	if err != nil {
		return mapErr("delete page content", err)
	}
	return requireAffected("delete page content", res)
}
