package domain

import (
	"context"
	"time"
)

// TurnRole identifies the author of a conversation turn
type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// roleLabels maps turn roles to the labels used when rendering history as text
var roleLabels = map[TurnRole]string{
	RoleUser:      "Client",
	RoleAssistant: "Assistant",
}

// Label returns the display label for a role
func (r TurnRole) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// ConversationTurn is a single message in a subject's conversation.
// Immutable once created.
type ConversationTurn struct {
	Role       TurnRole  `bson:"role" json:"role"`
	Content    string    `bson:"content" json:"content"`
	OccurredAt time.Time `bson:"occurred_at" json:"occurred_at"`
	Channel    string    `bson:"channel,omitempty" json:"channel,omitempty"`
}

// AssistantResponse is the structured result of handling one inbound message
type AssistantResponse struct {
	RequestID            string   `json:"request_id"`
	ResponseText         string   `json:"response_text"`
	NeedsHumanEscalation bool     `json:"needs_human_escalation"`
	SuggestedProductIDs  []string `json:"suggested_product_ids,omitempty"`
}

// ConversationRepository defines the durable storage for conversation windows
type ConversationRepository interface {
	// AppendTurn appends a turn to the subject's window, keeping only the
	// last maxHistory turns (insert if absent)
	AppendTurn(ctx context.Context, subjectID string, turn ConversationTurn, maxHistory int) error

	// GetTurns returns the stored window in chronological order.
	// An unknown subject yields an empty slice, not an error.
	GetTurns(ctx context.Context, subjectID string) ([]ConversationTurn, error)

	// Delete removes the subject's conversation record (no-op if absent)
	Delete(ctx context.Context, subjectID string) error
}
