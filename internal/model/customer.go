package model

import "time"

// Customer types.
const (
	CustomerPerson  = "PF"
	CustomerCompany = "PJ"
)

// Customer statuses.
const (
	CustomerActive   = "ativo"
	CustomerPreList  = "pre_lista"
	CustomerInactive = "inativo"
)

// Customer is a person (PF) or company (PJ) quotes are addressed to.
type Customer struct {
	ID                   int64     `json:"id"`
	CustomerType         string    `json:"customer_type"`
	Status               string    `json:"status"`
	FullName             string    `json:"full_name"`
	CPF                  string    `json:"cpf"`
	RG                   string    `json:"rg"`
	CompanyName          string    `json:"company_name"`
	TradeName            string    `json:"trade_name"`
	CNPJ                 string    `json:"cnpj"`
	IE                   string    `json:"ie"`
	IM                   string    `json:"im"`
	ResponsibleName      string    `json:"responsible_name"`
	ResponsiblePosition  string    `json:"responsible_position"`
	Address              string    `json:"address"`
	Phone                string    `json:"phone"`
	WhatsApp             string    `json:"whatsapp"`
	Email                string    `json:"email"`
	InternalNotes        string    `json:"internal_notes"`
	ContactPreferences   string    `json:"contact_preferences"`
	CommercialConditions string    `json:"commercial_conditions"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// DisplayName prefers full name, then trade name, then company name.
func (c Customer) DisplayName() string {
	switch {
	case c.FullName != "":
		return c.FullName
	case c.TradeName != "":
		return c.TradeName
	default:
		return c.CompanyName
	}
}

// CustomerListOptions filters the customer list. Empty or "all" disables a filter.
type CustomerListOptions struct {
	Search string
	Type   string
	Status string
}

// CustomerOption is a selectable customer in the quote form.
type CustomerOption struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}
