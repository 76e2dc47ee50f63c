package model

import "time"

// User is a back-office account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Dashboard summarises the back-office landing page.
type Dashboard struct {
	TotalProjects      int            `json:"total_projects"`
	ProjectsByCategory map[string]int `json:"projects_by_category"`
	UnreadContacts     int            `json:"unread_contacts"`
	QuotesByStatus     map[string]int `json:"quotes_by_status"`
}
