package usecase

import (
	"context"

	responsedomain "github.com/tinkertanker/discord-summariser/internal/response/domain"
	responsedto "github.com/tinkertanker/discord-summariser/internal/response/dto"
	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"
)

// ResponseUsecase generates and edits reply suggestions
type ResponseUsecase interface {
	// GenerateResponses returns the summary's four archetype replies,
	// generating the missing ones. Regenerate discards the stored set first.
	GenerateResponses(ctx context.Context, userID string, req *responsedto.GenerateResponsesRequest) ([]*responsedomain.SuggestedResponse, error)
	UpdateResponse(userID, id string, req *responsedto.UpdateResponseRequest) (*responsedomain.SuggestedResponse, error)
}

// SummaryFinder looks up a summary owned by the user
type SummaryFinder interface {
	FindByID(userID, id string) (*summarydomain.ChannelSummary, error)
}
