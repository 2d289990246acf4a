package model

import "time"

// ChatRole identifies the author of a chat message
type ChatRole string

const (
	RoleVeteran   ChatRole = "veteran"
	RoleCompanion ChatRole = "companion"
)

// ChatMessage is one message in a companion conversation
type ChatMessage struct {
	ID                 string    `json:"id"`
	Role               ChatRole  `json:"role"`
	Content            string    `json:"content"`
	Timestamp          time.Time `json:"timestamp"`
	CrisisDetected     bool      `json:"crisisDetected,omitempty"`
	ResourcesSuggested []string  `json:"resourcesSuggested,omitempty"`
}

// ChatSession tracks one conversation with the companion. Sessions are
// cache-resident only and are not written to long-term storage.
type ChatSession struct {
	ID                  string     `json:"id"`
	VeteranID           string     `json:"veteranId"`
	StartedAt           time.Time  `json:"startedAt"`
	EndedAt             *time.Time `json:"endedAt,omitempty"`
	MessageCount        int        `json:"messageCount"`
	CrisisInterventions int        `json:"crisisInterventions"`
}

// SendMessageRequest is the request body for sending a chat message
type SendMessageRequest struct {
	Content string `json:"content"`
}
