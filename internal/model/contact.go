package model

import "time"

// ContactMessage represents a message submitted via the contact form.
// ID and CreatedAt are assigned by the database on insert.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
