package domain

import "time"

const (
	NoActivitySummary = "No significant activity"
	DefaultImportance = 5
	MaxTopics         = 5
)

// Analysis is the structured reading of a channel produced by the model
type Analysis struct {
	Summary    string   `json:"summary"`
	Importance int      `json:"importance"`
	Topics     []string `json:"topics"`
}

func FallbackAnalysis() Analysis {
	return Analysis{
		Summary:    NoActivitySummary,
		Importance: DefaultImportance,
		Topics:     []string{},
	}
}

// AnalysisResult is either a parsed analysis or the fallback, in which case
// ParseErr holds why the completion was rejected.
type AnalysisResult struct {
	Analysis Analysis
	ParseErr error
}

func (r AnalysisResult) IsFallback() bool {
	return r.ParseErr != nil
}

// GuildPreview is a non-persisted channel analysis for the guild summary endpoint
type GuildPreview struct {
	GuildID      string     `json:"guildId"`
	ChannelID    string     `json:"channelId"`
	ChannelName  string     `json:"channelName"`
	Summary      string     `json:"summary"`
	Topics       []string   `json:"topics"`
	Importance   int        `json:"importance"`
	Priority     Priority   `json:"priority"`
	HasThreads   bool       `json:"hasThreads"`
	MessageCount int        `json:"messageCount"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`
}
