package dto

// GenerateResponsesRequest asks for the archetype replies of a summary.
// ChannelName and Summary default to the stored summary when empty.
type GenerateResponsesRequest struct {
	SummaryID   string `json:"summaryId" binding:"required"`
	ChannelName string `json:"channelName"`
	Summary     string `json:"summary"`
	Regenerate  bool   `json:"regenerate"`
}

type UpdateResponseRequest struct {
	EditedText *string `json:"editedText" binding:"required"`
}
