package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Simplici0/calhas/internal/model"
)

func (s *Store) CreateContact(ctx context.Context, c *model.ContactSubmission) error {
	images, err := encodeStrings(c.Images)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (name, email, phone, service_type, material_preference, message, images)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.Name, c.Email, c.Phone, c.ServiceType, c.MaterialPreference, c.Message, images)
	if err != nil {
		return mapErr("insert contact submission", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("contact submission id: %w", err)
	}
	return nil
}

// ListContacts returns submissions newest first, filtered by read status.
func (s *Store) ListContacts(ctx context.Context, opts model.ContactListOptions) ([]model.ContactSubmission, error) {
	where := ""
	var args []any
	switch strings.TrimSpace(opts.Status) {
	case "unread":
		where = "WHERE read = 0"
	case "read":
		where = "WHERE read = 1"
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit, max(opts.Offset, 0))

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, phone, service_type, material_preference, message, images, read, created_at
		FROM contact_submissions `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query contact submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]model.ContactSubmission, 0)
	for rows.Next() {
		var (
			c      model.ContactSubmission
			images string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.ServiceType, &c.MaterialPreference,
			&c.Message, &images, &c.Read, scanTime(&c.CreatedAt)); err != nil {
			return nil, fmt.Errorf("scan contact submission: %w", err)
		}
		if c.Images, err = decodeStrings(images); err != nil {
			return nil, fmt.Errorf("decode contact %d images: %w", c.ID, err)
		}
		submissions = append(submissions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact submissions: %w", err)
	}
	return submissions, nil
}

func (s *Store) MarkContactRead(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE contact_submissions SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return mapErr("mark contact read", err)
	}
	return requireAffected("mark contact read", res)
}

func (s *Store) CountUnreadContacts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions WHERE read = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread contacts: %w", err)
	}
	return n, nil
}
