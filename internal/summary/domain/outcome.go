package domain

// SkipReason says why a channel produced no summary, or only a fallback one
type SkipReason string

const (
	SkipEmptyChannel  SkipReason = "empty_channel"
	SkipUpstreamError SkipReason = "upstream_error"
	SkipParseError    SkipReason = "parse_error"
	SkipStoreError    SkipReason = "store_error"
)

// ChannelOutcome is the result of scanning one channel. Summary is set when
// a row was written. A ParseError outcome still carries the fallback row.
type ChannelOutcome struct {
	ChannelID   string          `json:"channelId"`
	ChannelName string          `json:"channelName"`
	Summary     *ChannelSummary `json:"summary,omitempty"`
	Reason      SkipReason      `json:"reason,omitempty"`
	Error       string          `json:"error,omitempty"`
}

func (o ChannelOutcome) Written() bool {
	return o.Summary != nil
}

// Label is the metrics label for the outcome
func (o ChannelOutcome) Label() string {
	if o.Reason == "" {
		return "summarized"
	}
	return string(o.Reason)
}

type ServerReport struct {
	ServerID   string           `json:"serverId"`
	ServerName string           `json:"serverName"`
	UserID     string           `json:"-"`
	Channels   []ChannelOutcome `json:"channels"`
	// Error is set when the channel list could not be fetched; the server
	// is then left unstamped.
	Error   string `json:"error,omitempty"`
	Stamped bool   `json:"stamped"`
}

type ScanReport struct {
	Servers          []ServerReport `json:"servers"`
	SummariesCreated int            `json:"summariesCreated"`
}

// Add appends a server report and counts its written summaries
func (r *ScanReport) Add(s ServerReport) {
	r.Servers = append(r.Servers, s)
	for _, ch := range s.Channels {
		if ch.Written() {
			r.SummariesCreated++
		}
	}
}

// Skipped returns every channel that did not get a parsed summary
func (r *ScanReport) Skipped() []ChannelOutcome {
	var out []ChannelOutcome
	for _, s := range r.Servers {
		for _, ch := range s.Channels {
			if ch.Reason != "" {
				out = append(out, ch)
			}
		}
	}
	return out
}
