package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Simplici0/calhas/internal/model"
)

// displayNameSQL mirrors model.Customer.DisplayName for a customers row aliased c.
const displayNameSQL = `COALESCE(NULLIF(c.full_name, ''), NULLIF(c.trade_name, ''), NULLIF(c.company_name, ''), '')`

const customerColumns = `
	c.id, c.customer_type, c.status, c.full_name, c.cpf, c.rg, c.company_name, c.trade_name,
	c.cnpj, c.ie, c.im, c.responsible_name, c.responsible_position, c.address, c.phone,
	c.whatsapp, c.email, c.internal_notes, c.contact_preferences, c.commercial_conditions,
	c.created_at, c.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(
		&c.ID, &c.CustomerType, &c.Status, &c.FullName, &c.CPF, &c.RG, &c.CompanyName, &c.TradeName,
		&c.CNPJ, &c.IE, &c.IM, &c.ResponsibleName, &c.ResponsiblePosition, &c.Address, &c.Phone,
		&c.WhatsApp, &c.Email, &c.InternalNotes, &c.ContactPreferences, &c.CommercialConditions,
		scanTime(&c.CreatedAt), scanTime(&c.UpdatedAt),
	)
	return c, err
}

// ListCustomers returns customers newest first. Search matches names, phone,
// CPF and CNPJ.
func (s *Store) ListCustomers(ctx context.Context, opts model.CustomerListOptions) ([]model.Customer, error) {
	var (
		conditions []string
		args       []any
	)

	if search := strings.TrimSpace(opts.Search); search != "" {
		p := likePattern(search)
		conditions = append(conditions, `(
			`+foldFunc+`(c.full_name) LIKE ? ESCAPE '\' OR `+foldFunc+`(c.company_name) LIKE ? ESCAPE '\' OR
			`+foldFunc+`(c.trade_name) LIKE ? ESCAPE '\' OR c.phone LIKE ? ESCAPE '\' OR
			c.cpf LIKE ? ESCAPE '\' OR c.cnpj LIKE ? ESCAPE '\')`)
		args = append(args, p, p, p, p, p, p)
	}
	if t := strings.TrimSpace(opts.Type); t != "" && t != "all" {
		conditions = append(conditions, `c.customer_type = ?`)
		args = append(args, t)
	}
	if st := strings.TrimSpace(opts.Status); st != "" && st != "all" {
		conditions = append(conditions, `c.status = ?`)
		args = append(args, st)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers c `+where+` ORDER BY c.created_at DESC, c.id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]model.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

// ListActiveCustomers returns active customers ordered by display name.
func (s *Store) ListActiveCustomers(ctx context.Context) ([]model.CustomerOption, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, `+displayNameSQL+` AS display_name
		FROM customers c
		WHERE c.status = ?
		ORDER BY display_name, c.id
	`, model.CustomerActive)
	if err != nil {
		return nil, fmt.Errorf("query active customers: %w", err)
	}
	defer rows.Close()

	options := make([]model.CustomerOption, 0)
	for rows.Next() {
		var o model.CustomerOption
		if err := rows.Scan(&o.ID, &o.DisplayName); err != nil {
			return nil, fmt.Errorf("scan active customer: %w", err)
		}
		options = append(options, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active customers: %w", err)
	}
	return options, nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (model.Customer, error) {
	c, err := scanCustomer(s.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers c WHERE c.id = ?`, id))
	if err != nil {
		return model.Customer{}, mapErr("get customer", err)
	}
	return c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *model.Customer) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (
			customer_type, status, full_name, cpf, rg, company_name, trade_name, cnpj, ie, im,
			responsible_name, responsible_position, address, phone, whatsapp, email,
			internal_notes, contact_preferences, commercial_conditions
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, customerArgs(c)...)
	if err != nil {
		return mapErr("insert customer", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("customer id: %w", err)
	}
	return nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c model.Customer) error {
	args := append(customerArgs(&c), c.ID)
	res, err := s.db.ExecContext(ctx, `
		UPDATE customers SET
			customer_type = ?, status = ?, full_name = ?, cpf = ?, rg = ?, company_name = ?,
			trade_name = ?, cnpj = ?, ie = ?, im = ?, responsible_name = ?, responsible_position = ?,
			address = ?, phone = ?, whatsapp = ?, email = ?, internal_notes = ?,
			contact_preferences = ?, commercial_conditions = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, args...)
	if err != nil {
		return mapErr("update customer", err)
	}
	return requireAffected("update customer", res)
}

// DeleteCustomer fails with ErrConflict while quotes reference the customer.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return mapErr("delete customer", err)
	}
	return requireAffected("delete customer", res)
}

func customerArgs(c *model.Customer) []any {
	return []any{
		c.CustomerType, c.Status, c.FullName, c.CPF, c.RG, c.CompanyName, c.TradeName, c.CNPJ, c.IE, c.IM,
		c.ResponsibleName, c.ResponsiblePosition, c.Address, c.Phone, c.WhatsApp, c.Email,
		c.InternalNotes, c.ContactPreferences, c.CommercialConditions,
	}
}
