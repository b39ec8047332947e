package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"
	"github.com/tinkertanker/discord-summariser/pkg/discord"
)

const channelAnalysisPrompt = `Analyze Discord channel messages and provide:
1. A concise summary (2-3 sentences)
2. Importance score (1-10) based on:
   - Announcements/updates (8-10)
   - Questions needing answers (7-9)
   - Active discussions (5-7)
   - General chat (1-4)
3. Key topics discussed (max 5)

Return JSON: {
  "summary": "...",
  "importance": 7,
  "topics": ["topic1", "topic2"]
}`

const guildPreviewPrompt = `You are analyzing Discord channel messages.
Provide a concise summary and identify key topics.
Rate the importance from 1-10 based on:
- Announcements or important updates (high)
- Active discussions (medium-high)
- Technical problems or issues (high)
- General chat (low)
%s
Respond in JSON format:
{
  "summary": "brief summary of channel activity",
  "topics": ["identified", "topics"],
  "importance": 7
}`

var (
	errEmptyCompletion = errors.New("empty completion")
	errMissingSummary  = errors.New("summary is missing or empty")
	errMissingScore    = errors.New("importance is missing")
	errScoreOutOfRange = errors.New("importance is outside 1-10")
	errTrailingContent = errors.New("unexpected content after JSON object")
)

// formatMessages renders messages as "author: content" lines in the order
// given, newest first as Discord returns them.
func formatMessages(msgs []discord.Message) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Author, m.Content))
	}
	return strings.Join(lines, "\n")
}

// truncateRunes cuts s to at most max runes. max <= 0 means no limit.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// BuildChannelPrompt is the user turn for the scan analysis: the newest
// maxMessages messages, capped at maxChars characters.
func BuildChannelPrompt(channelName string, msgs []discord.Message, maxMessages, maxChars int) string {
	if maxMessages > 0 && len(msgs) > maxMessages {
		msgs = msgs[:maxMessages]
	}
	content := truncateRunes(formatMessages(msgs), maxChars)
	return fmt.Sprintf("Channel: #%s\n\nMessages:\n%s", channelName, content)
}

func buildPreviewSystemPrompt(topics []string) string {
	interest := ""
	if len(topics) > 0 {
		interest = fmt.Sprintf("User is interested in topics: %s\n", strings.Join(topics, ", "))
	}
	return fmt.Sprintf(guildPreviewPrompt, interest)
}

func buildPreviewUserPrompt(channelName string, msgs []discord.Message, maxChars int) string {
	return fmt.Sprintf("Analyze these messages from #%s:\n\n%s", channelName, truncateRunes(formatMessages(msgs), maxChars))
}

// stripCodeFence removes a surrounding ```json ... ``` block some models add
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseAnalysis decodes a completion into an Analysis. The payload must be
// a single JSON object with a non-empty summary and an integer importance
// in [1,10]; topics are optional and cut to MaxTopics.
func ParseAnalysis(raw string) (summarydomain.Analysis, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return summarydomain.Analysis{}, errEmptyCompletion
	}

	var payload struct {
		Summary    *string  `json:"summary"`
		Importance *int     `json:"importance"`
		Topics     []string `json:"topics"`
	}
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(&payload); err != nil {
		return summarydomain.Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	if dec.More() {
		return summarydomain.Analysis{}, errTrailingContent
	}

	if payload.Summary == nil || strings.TrimSpace(*payload.Summary) == "" {
		return summarydomain.Analysis{}, errMissingSummary
	}
	if payload.Importance == nil {
		return summarydomain.Analysis{}, errMissingScore
	}
	if *payload.Importance < 1 || *payload.Importance > 10 {
		return summarydomain.Analysis{}, errScoreOutOfRange
	}

	topics := make([]string, 0, len(payload.Topics))
	for _, t := range payload.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
		if len(topics) == summarydomain.MaxTopics {
			break
		}
	}

	return summarydomain.Analysis{
		Summary:    strings.TrimSpace(*payload.Summary),
		Importance: *payload.Importance,
		Topics:     topics,
	}, nil
}

// Analyze never fails: a completion that does not parse yields the fallback
// analysis with the parse error attached.
func Analyze(raw string) summarydomain.AnalysisResult {
	a, err := ParseAnalysis(raw)
	if err != nil {
		return summarydomain.AnalysisResult{Analysis: summarydomain.FallbackAnalysis(), ParseErr: err}
	}
	return summarydomain.AnalysisResult{Analysis: a}
}
