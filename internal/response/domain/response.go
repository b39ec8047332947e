package domain

import (
	"errors"
	"time"
)

var ErrResponseNotFound = errors.New("response not found")

// SuggestedResponse is a generated reply for a channel summary. EditedText
// holds the user's revision and is nil until they edit it.
type SuggestedResponse struct {
	ID            string       `json:"id" gorm:"primaryKey"`
	UserID        string       `json:"userId" gorm:"not null;index:idx_user_summary,priority:1"`
	SummaryID     string       `json:"summaryId" gorm:"not null;index:idx_user_summary,priority:2"`
	ResponseType  ResponseType `json:"responseType" gorm:"type:varchar(20);not null"`
	SuggestedText string       `json:"suggestedText" gorm:"type:text"`
	EditedText    *string      `json:"editedText" gorm:"type:text"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// DisplayText is what the dashboard shows: the edit if there is one
func (r *SuggestedResponse) DisplayText() string {
	if r.EditedText != nil && *r.EditedText != "" {
		return *r.EditedText
	}
	return r.SuggestedText
}
