package model

import "time"

// ContactMessage represents a message submitted via the contact form.
// Records are written once and never updated.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewContactMessage is a validated, timestamped submission that has not been
// stored yet. The store assigns the ID.
type NewContactMessage struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// Stored returns the ContactMessage for m under the given id.
func (m NewContactMessage) Stored(id string) *ContactMessage {
	return &ContactMessage{
		ID:        id,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
