package domain

import "sort"

type Tier string

const (
	TierHigh          Tier = "high"
	TierMedium        Tier = "medium"
	TierLow           Tier = "low"
	TierInformational Tier = "informational"
)

// ImportantMin is the lowest importance the "important" feed filter keeps
const ImportantMin = 7

type Priority struct {
	Label string `json:"label"`
	Tier  Tier   `json:"tier"`
}

// PriorityFor buckets an importance score into its display tier.
func PriorityFor(importance int) Priority {
	switch {
	case importance >= 8:
		return Priority{Label: "High Priority", Tier: TierHigh}
	case importance >= 6:
		return Priority{Label: "Medium Priority", Tier: TierMedium}
	case importance >= 4:
		return Priority{Label: "Low Priority", Tier: TierLow}
	default:
		return Priority{Label: "FYI", Tier: TierInformational}
	}
}

// Less orders unread before read, then importance descending, then newest first.
func Less(a, b *ChannelSummary) bool {
	if a.IsRead != b.IsRead {
		return !a.IsRead
	}
	if a.Importance != b.Importance {
		return a.Importance > b.Importance
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func SortSummaries(items []*ChannelSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		return Less(items[i], items[j])
	})
}
