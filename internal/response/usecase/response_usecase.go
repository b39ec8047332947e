package usecase

import (
	"context"
	"fmt"
	"log"

	responsedomain "github.com/tinkertanker/discord-summariser/internal/response/domain"
	responsedto "github.com/tinkertanker/discord-summariser/internal/response/dto"
	"github.com/tinkertanker/discord-summariser/internal/response/repository"
	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"
	"github.com/tinkertanker/discord-summariser/pkg/ai"
)

type responseUsecase struct {
	responseRepo repository.ResponseRepository
	summaries    SummaryFinder
	completer    ai.Completer
}

func NewResponseUsecase(responseRepo repository.ResponseRepository, summaries SummaryFinder, completer ai.Completer) ResponseUsecase {
	return &responseUsecase{
		responseRepo: responseRepo,
		summaries:    summaries,
		completer:    completer,
	}
}

func (u *responseUsecase) GenerateResponses(ctx context.Context, userID string, req *responsedto.GenerateResponsesRequest) ([]*responsedomain.SuggestedResponse, error) {
	summary, err := u.summaries.FindByID(userID, req.SummaryID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, summarydomain.ErrSummaryNotFound
	}

	if req.Regenerate {
		if err := u.responseRepo.DeleteBySummary(userID, summary.ID); err != nil {
			return nil, err
		}
	}

	existing, err := u.responseRepo.FindBySummary(userID, summary.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= len(responsedomain.Archetypes) {
		return existing, nil
	}

	have := make(map[responsedomain.ResponseType]*responsedomain.SuggestedResponse, len(existing))
	for _, r := range existing {
		have[r.ResponseType] = r
	}

	channelName := req.ChannelName
	if channelName == "" {
		channelName = summary.ChannelName
	}
	text := req.Summary
	if text == "" {
		text = summary.Summary
	}

	// rows written before a failure are kept; the next call fills the gaps
	responses := make([]*responsedomain.SuggestedResponse, 0, len(responsedomain.Archetypes))
	for _, t := range responsedomain.Archetypes {
		if r, ok := have[t]; ok {
			responses = append(responses, r)
			continue
		}

		raw, err := u.completer.Complete(ctx, ai.CompletionRequest{
			System:      buildSystemPrompt(t),
			User:        buildUserPrompt(channelName, text, t),
			Temperature: responseTemperature,
			MaxTokens:   responseMaxTokens,
		})
		if err != nil {
			log.Printf("[Responses] Failed to generate %s for summary %s: %v", t, summary.ID, err)
			return nil, fmt.Errorf("failed to generate %s response: %w", t, err)
		}

		r := &responsedomain.SuggestedResponse{
			UserID:        userID,
			SummaryID:     summary.ID,
			ResponseType:  t,
			SuggestedText: cleanReply(raw),
		}
		if err := u.responseRepo.Create(r); err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}

	log.Printf("[Responses] Generated %d responses for summary %s", len(responses)-len(existing), summary.ID)
	return responses, nil
}

func (u *responseUsecase) UpdateResponse(userID, id string, req *responsedto.UpdateResponseRequest) (*responsedomain.SuggestedResponse, error) {
	response, err := u.responseRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, responsedomain.ErrResponseNotFound
	}

	if err := u.responseRepo.UpdateEditedText(userID, id, req.EditedText); err != nil {
		return nil, err
	}
	response.EditedText = req.EditedText
	return response, nil
}
