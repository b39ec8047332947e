package repository

import (
	responsedomain "github.com/tinkertanker/discord-summariser/internal/response/domain"
)

// ResponseRepository defines the interface for suggested response persistence
type ResponseRepository interface {
	Create(response *responsedomain.SuggestedResponse) error
	FindByID(userID, id string) (*responsedomain.SuggestedResponse, error)
	// FindBySummary returns the user's responses for a summary in archetype order
	FindBySummary(userID, summaryID string) ([]*responsedomain.SuggestedResponse, error)
	DeleteBySummary(userID, summaryID string) error
	UpdateEditedText(userID, id string, editedText *string) error
}
