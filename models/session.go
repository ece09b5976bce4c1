package models

import "time"

// VerifiedIdentity is established once per session by the identity
// service and scopes which bookings a caller may see or change.
type VerifiedIdentity struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
}

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string    `json:"role"` // "user" or "assistant"
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session carries all per-caller conversational state. It is loaded
// from the session store at the start of a request and saved back
// after; nothing about the caller lives in process globals.
type Session struct {
	ID        string            `json:"id"`
	Verified  *VerifiedIdentity `json:"verified,omitempty"`
	History   []ChatMessage     `json:"history,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	LastSeen  time.Time         `json:"lastSeen"`
}
