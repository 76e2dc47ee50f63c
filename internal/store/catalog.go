package store

import (
	"context"
	"fmt"

	"github.com/Simplici0/calhas/internal/pricing"
	"github.com/Simplici0/calhas/internal/quote"
)

// ListMaterials returns materials ordered by name. activeOnly hides inactive ones.
func (s *Store) ListMaterials(ctx context.Context, activeOnly bool) ([]pricing.Material, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, density, cost_per_kg, active
		FROM materials
		WHERE (? = 0 OR active = 1)
		ORDER BY name, id
	`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]pricing.Material, 0)
	for rows.Next() {
		var m pricing.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Density, &m.CostPerKg, &m.Active); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	return materials, nil
}

func (s *Store) GetMaterial(ctx context.Context, id int64) (pricing.Material, error) {
	var m pricing.Material
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, density, cost_per_kg, active FROM materials WHERE id = ?
	`, id).Scan(&m.ID, &m.Name, &m.Density, &m.CostPerKg, &m.Active)
	if err != nil {
		return pricing.Material{}, mapErr("get material", err)
	}
	return m, nil
}

func (s *Store) CreateMaterial(ctx context.Context, m *pricing.Material) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO materials (name, density, cost_per_kg, active) VALUES (?, ?, ?, ?)
	`, m.Name, m.Density, m.CostPerKg, m.Active)
	if err != nil {
		return mapErr("insert material", err)
	}
	m.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("material id: %w", err)
	}
	return nil
}

func (s *Store) UpdateMaterial(ctx context.Context, m pricing.Material) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE materials
		SET name = ?, density = ?, cost_per_kg = ?, active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, m.Name, m.Density, m.CostPerKg, m.Active, m.ID)
	if err != nil {
		return mapErr("update material", err)
	}
	return requireAffected("update material", res)
}

// DeleteMaterial fails with ErrConflict while quote items reference the material.
func (s *Store) DeleteMaterial(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM materials WHERE id = ?`, id)
	if err != nil {
		return mapErr("delete material", err)
	}
	return requireAffected("delete material", res)
}

// ListServiceTypes returns service types ordered by name.
func (s *Store) ListServiceTypes(ctx context.Context, activeOnly bool) ([]pricing.ServiceType, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, difficulty_factor_normal, difficulty_factor_medium, difficulty_factor_hard, active
		FROM service_types
		WHERE (? = 0 OR active = 1)
		ORDER BY name, id
	`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("query service types: %w", err)
	}
	defer rows.Close()

	services := make([]pricing.ServiceType, 0)
	for rows.Next() {
		var st pricing.ServiceType
		if err := rows.Scan(&st.ID, &st.Name, &st.Description, &st.DifficultyFactorNormal, &st.DifficultyFactorMedium, &st.DifficultyFactorHard, &st.Active); err != nil {
			return nil, fmt.Errorf("scan service type: %w", err)
		}
		services = append(services, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service types: %w", err)
	}
	return services, nil
}

func (s *Store) GetServiceType(ctx context.Context, id int64) (pricing.ServiceType, error) {
	var st pricing.ServiceType
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, difficulty_factor_normal, difficulty_factor_medium, difficulty_factor_hard, active
		FROM service_types WHERE id = ?
	`, id).Scan(&st.ID, &st.Name, &st.Description, &st.DifficultyFactorNormal, &st.DifficultyFactorMedium, &st.DifficultyFactorHard, &st.Active)
	if err != nil {
		return pricing.ServiceType{}, mapErr("get service type", err)
	}
	return st, nil
}

func (s *Store) CreateServiceType(ctx context.Context, st *pricing.ServiceType) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO service_types (name, description, difficulty_factor_normal, difficulty_factor_medium, difficulty_factor_hard, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, st.Name, st.Description, st.DifficultyFactorNormal, st.DifficultyFactorMedium, st.DifficultyFactorHard, st.Active)
	if err != nil {
		return mapErr("insert service type", err)
	}
	st.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("service type id: %w", err)
	}
	return nil
}

func (s *Store) UpdateServiceType(ctx context.Context, st pricing.ServiceType) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE service_types
		SET name = ?, description = ?, difficulty_factor_normal = ?, difficulty_factor_medium = ?,
			difficulty_factor_hard = ?, active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, st.Name, st.Description, st.DifficultyFactorNormal, st.DifficultyFactorMedium, st.DifficultyFactorHard, st.Active, st.ID)
	if err != nil {
		return mapErr("update service type", err)
	}
	return requireAffected("update service type", res)
}

func (s *Store) DeleteServiceType(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM service_types WHERE id = ?`, id)
	if err != nil {
		return mapErr("delete service type", err)
	}
	return requireAffected("delete service type", res)
}

// LoadCatalog reads the active materials and service types a new quote can use.
func (s *Store) LoadCatalog(ctx context.Context) (quote.Catalog, error) {
	materials, err := s.ListMaterials(ctx, true)
	if err != nil {
		return quote.Catalog{}, err
	}
	services, err := s.ListServiceTypes(ctx, true)
	if err != nil {
		return quote.Catalog{}, err
	}
	return quote.Catalog{Materials: materials, Services: services}, nil
}
