package dto

type MarkReadRequest struct {
	All        bool     `json:"all"`
	SummaryIDs []string `json:"summaryIds"`
}

type GuildPreviewRequest struct {
	Topics []string `json:"topics"`
}

type ScanResponse struct {
	Success          bool `json:"success"`
	SummariesCreated int  `json:"summariesCreated"`
	ServersScanned   int  `json:"serversScanned"`
	ChannelsSkipped  int  `json:"channelsSkipped"`
}

// ListSummariesQuery narrows the summary feed. Filter is "all", "unread"
// or "important"; Q is a typo-tolerant text search.
type ListSummariesQuery struct {
	Filter   string `form:"filter"`
	ServerID string `form:"serverId"`
	Q        string `form:"q"`
}
