package model

import "time"

// ContactSubmission is a message sent from the public contact form.
type ContactSubmission struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	ServiceType        string    `json:"service_type"`
	MaterialPreference string    `json:"material_preference"`
	Message            string    `json:"message"`
	Images             []string  `json:"images"`
	Read               bool      `json:"read"`
	CreatedAt          time.Time `json:"created_at"`
}

// ContactListOptions carries filter and pagination parameters for listing submissions.
type ContactListOptions struct {
	// Status is "", "all", "unread" or "read".
	Status string
	Limit  int
	Offset int
}
