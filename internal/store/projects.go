package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Simplici0/calhas/internal/model"
)

const projectColumns = `id, title, category, description, material_thickness, location, images, featured, created_at, updated_at`

func scanProject(row rowScanner) (model.Project, error) {
	var (
		p      model.Project
		images string
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Category, &p.Description, &p.MaterialThickness, &p.Location,
		&images, &p.Featured, scanTime(&p.CreatedAt), scanTime(&p.UpdatedAt),
	); err != nil {
		return model.Project{}, err
	}
	list, err := decodeStrings(images)
	if err != nil {
		return model.Project{}, fmt.Errorf("decode project %d images: %w", p.ID, err)
	}
	p.Images = list
	return p, nil
}

// ListProjects returns projects newest first.
func (s *Store) ListProjects(ctx context.Context, opts model.ProjectListOptions) ([]model.Project, error) {
	var (
		conditions []string
		args       []any
	)
	if c := strings.TrimSpace(opts.Category); c != "" && c != "all" {
		conditions = append(conditions, `category = ?`)
		args = append(args, c)
	}
	if search := strings.TrimSpace(opts.Search); search != "" {
		p := likePattern(search)
		conditions = append(conditions, `(`+foldFunc+`(title) LIKE ? ESCAPE '\' OR `+foldFunc+`(location) LIKE ? ESCAPE '\')`)
		args = append(args, p, p)
	}
	if opts.FeaturedOnly {
		conditions = append(conditions, `featured = 1`)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects `+where+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id int64) (model.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err != nil {
		return model.Project{}, mapErr("get project", err)
	}
	return p, nil
}

func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	images, err := encodeStrings(p.Images)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (title, category, description, material_thickness, location, images, featured)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.Title, p.Category, p.Description, p.MaterialThickness, p.Location, images, p.Featured)
	if err != nil {
		return mapErr("insert project", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("project id: %w", err)
	}
	return nil
}

func (s *Store) UpdateProject(ctx context.Context, p model.Project) error {
	images, err := encodeStrings(p.Images)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET title = ?, category = ?, description = ?, material_thickness = ?, location = ?,
			images = ?, featured = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Title, p.Category, p.Description, p.MaterialThickness, p.Location, images, p.Featured, p.ID)
	if err != nil {
		return mapErr("update project", err)
	}
	return requireAffected("update project", res)
}

// DeleteProject removes the row and returns the image URLs it held so the
// caller can clean up the blob store.
func (s *Store) DeleteProject(ctx context.Context, id int64) ([]string, error) {
	var images string
	err := s.db.QueryRowContext(ctx, `DELETE FROM projects WHERE id = ? RETURNING images`, id).Scan(&images)
	if err != nil {
		return nil, mapErr("delete project", err)
	}
	list, err := decodeStrings(images)
	if err != nil {
		return nil, fmt.Errorf("decode deleted project images: %w", err)
	}
	return list, nil
}

// CountProjectsByCategory returns the number of projects per category.
// Every known category is present, with zero when empty.
func (s *Store) CountProjectsByCategory(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(model.ProjectCategories))
	for _, c := range model.ProjectCategories {
		counts[c] = 0
	}

	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM projects GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan project count: %w", err)
		}
		counts[category] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project counts: %w", err)
	}
	return counts, nil
}

func encodeStrings(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode string list: %w", err)
	}
	return string(b), nil
}

func decodeStrings(raw string) ([]string, error) {
	list := make([]string, 0)
	if strings.TrimSpace(raw) == "" {
		return list, nil
	}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list, nil
}
