package usecase

import (
	"fmt"
	"strings"

	responsedomain "github.com/tinkertanker/discord-summariser/internal/response/domain"
)

const (
	responseTemperature = 0.8
	responseMaxTokens   = 100
)

func buildSystemPrompt(t responsedomain.ResponseType) string {
	return fmt.Sprintf(`You are helping craft Discord messages. Based on a channel summary, generate a %s response.

Guidelines:
- Keep it casual and Discord-appropriate
- Be concise (1-2 sentences usually)
- %s
- Don't be overly formal
- Use Discord conventions (@ mentions, emojis sparingly)`, t, t.Instruction())
}

func buildUserPrompt(channelName, summary string, t responsedomain.ResponseType) string {
	return fmt.Sprintf("Channel: #%s\nSummary: %s\n\nGenerate a %s response:", channelName, summary, t)
}

// cleanReply trims whitespace and a pair of wrapping quotes
func cleanReply(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
