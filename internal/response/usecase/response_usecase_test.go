package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	responsedomain "github.com/tinkertanker/discord-summariser/internal/response/domain"
	responsedto "github.com/tinkertanker/discord-summariser/internal/response/dto"
	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"
	"github.com/tinkertanker/discord-summariser/pkg/ai"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResponseRepo struct {
	rows []*responsedomain.SuggestedResponse
}

func (m *mockResponseRepo) Create(r *responsedomain.SuggestedResponse) error {
	r.ID = uuid.New().String()
	cp := *r
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *mockResponseRepo) FindByID(userID, id string) (*responsedomain.SuggestedResponse, error) {
	for _, r := range m.rows {
		if r.UserID == userID && r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockResponseRepo) FindBySummary(userID, summaryID string) ([]*responsedomain.SuggestedResponse, error) {
	var out []*responsedomain.SuggestedResponse
	for _, t := range responsedomain.Archetypes {
		for _, r := range m.rows {
			if r.UserID == userID && r.SummaryID == summaryID && r.ResponseType == t {
				cp := *r
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

func (m *mockResponseRepo) DeleteBySummary(userID, summaryID string) error {
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.UserID != userID || r.SummaryID != summaryID {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func (m *mockResponseRepo) UpdateEditedText(userID, id string, editedText *string) error {
	for _, r := range m.rows {
		if r.UserID == userID && r.ID == id {
			r.EditedText = editedText
		}
	}
	return nil
}

type mockSummaries map[string]*summarydomain.ChannelSummary

func (m mockSummaries) FindByID(userID, id string) (*summarydomain.ChannelSummary, error) {
	if s, ok := m[id]; ok && s.UserID == userID {
		return s, nil
	}
	return nil, nil
}

type scriptedCompleter struct {
	calls  []ai.CompletionRequest
	failAt int
}

func (s *scriptedCompleter) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	s.calls = append(s.calls, req)
	if s.failAt > 0 && len(s.calls) == s.failAt {
		return "", errors.New("openai API error (429): rate limited")
	}
	return fmt.Sprintf(" \"reply %d\" ", len(s.calls)), nil
}

func (s *scriptedCompleter) Name() string { return "scripted" }

func setup() (*mockResponseRepo, mockSummaries, *scriptedCompleter, ResponseUsecase) {
	repo := &mockResponseRepo{}
	summaries := mockSummaries{
		"s1": {ID: "s1", UserID: "u1", ChannelName: "general", Summary: "Release v2 is out"},
	}
	completer := &scriptedCompleter{}
	return repo, summaries, completer, NewResponseUsecase(repo, summaries, completer)
}

func TestGenerateResponses_FourInOrder(t *testing.T) {
	repo, _, completer, uc := setup()

	got, err := uc.GenerateResponses(context.Background(), "u1", &responsedto.GenerateResponsesRequest{SummaryID: "s1"})

	require.NoError(t, err)
	require.Len(t, got, 4)
	for i, r := range got {
		assert.Equal(t, responsedomain.Archetypes[i], r.ResponseType)
		assert.Equal(t, fmt.Sprintf("reply %d", i+1), r.SuggestedText)
		assert.Equal(t, "s1", r.SummaryID)
	}
	assert.Len(t, repo.rows, 4)

	require.Len(t, completer.calls, 4)
	first := completer.calls[0]
	assert.InDelta(t, 0.8, first.Temperature, 1e-9)
	assert.Equal(t, 100, first.MaxTokens)
	assert.False(t, first.JSONMode)
	assert.Contains(t, first.System, "generate a ACKNOWLEDGMENT response")
	assert.Contains(t, first.System, "Brief acknowledgment showing you've seen the messages")
	assert.Equal(t, "Channel: #general\nSummary: Release v2 is out\n\nGenerate a ACKNOWLEDGMENT response:", first.User)
	assert.True(t, strings.HasSuffix(completer.calls[3].User, "Generate a FOLLOW_UP response:"))
}

func TestGenerateResponses_Idempotent(t *testing.T) {
	repo, _, completer, uc := setup()
	req := &responsedto.GenerateResponsesRequest{SummaryID: "s1", ChannelName: "general", Summary: "x"}

	first, err := uc.GenerateResponses(context.Background(), "u1", req)
	require.NoError(t, err)
	second, err := uc.GenerateResponses(context.Background(), "u1", req)
	require.NoError(t, err)

	assert.Len(t, repo.rows, 4)
	assert.Len(t, completer.calls, 4)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestGenerateResponses_Regenerate(t *testing.T) {
	repo, _, completer, uc := setup()

	first, err := uc.GenerateResponses(context.Background(), "u1", &responsedto.GenerateResponsesRequest{SummaryID: "s1"})
	require.NoError(t, err)
	second, err := uc.GenerateResponses(context.Background(), "u1", &responsedto.GenerateResponsesRequest{SummaryID: "s1", Regenerate: true})
	require.NoError(t, err)

	assert.Len(t, repo.rows, 4)
	assert.Len(t, completer.calls, 8)
	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.Equal(t, "reply 5", second[0].SuggestedText)
}

func TestGenerateResponses_PartialBatchIsCompletedLater(t *testing.T) {
	repo, _, completer, uc := setup()
	completer.failAt = 3

	_, err := uc.GenerateResponses(context.Background(), "u1", &responsedto.GenerateResponsesRequest{SummaryID: "s1"})
	require.Error(t, err)
	assert.Len(t, repo.rows, 2)

	got, err := uc.GenerateResponses(context.Background(), "u1", &responsedto.GenerateResponsesRequest{SummaryID: "s1"})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Len(t, repo.rows, 4)
	assert.Equal(t, responsedomain.ResponseAnswer, got[2].ResponseType)
	// only the two missing archetypes were requested again
	assert.Len(t, completer.calls, 5)
}

func TestGenerateResponses_SummaryOwnership(t *testing.T) {
	repo, _, completer, uc := setup()

	_, err := uc.GenerateResponses(context.Background(), "u2", &responsedto.GenerateResponsesRequest{SummaryID: "s1"})

	assert.ErrorIs(t, err, summarydomain.ErrSummaryNotFound)
	assert.Empty(t, repo.rows)
	assert.Empty(t, completer.calls)
}

func TestUpdateResponse(t *testing.T) {
	repo, _, _, uc := setup()
	got, err := uc.GenerateResponses(context.Background(), "u1", &responsedto.GenerateResponsesRequest{SummaryID: "s1"})
	require.NoError(t, err)

	edited := "congrats on v2 :tada:"
	updated, err := uc.UpdateResponse("u1", got[0].ID, &responsedto.UpdateResponseRequest{EditedText: &edited})
	require.NoError(t, err)
	assert.Equal(t, edited, updated.DisplayText())
	assert.Equal(t, edited, *repo.rows[0].EditedText)

	_, err = uc.UpdateResponse("u2", got[0].ID, &responsedto.UpdateResponseRequest{EditedText: &edited})
	assert.ErrorIs(t, err, responsedomain.ErrResponseNotFound)
}

func TestCleanReply(t *testing.T) {
	assert.Equal(t, "hey!", cleanReply("  \"hey!\"\n"))
	assert.Equal(t, `say "hi"`, cleanReply(`say "hi"`))
	assert.Equal(t, "", cleanReply("   "))
}
