package domain

import "fmt"

// ResponseType is one of the four reply archetypes
type ResponseType string

const (
	ResponseAcknowledgment ResponseType = "ACKNOWLEDGMENT"
	ResponseQuestion       ResponseType = "QUESTION"
	ResponseAnswer         ResponseType = "ANSWER"
	ResponseFollowUp       ResponseType = "FOLLOW_UP"
)

// Archetypes lists every ResponseType in generation order
var Archetypes = []ResponseType{
	ResponseAcknowledgment,
	ResponseQuestion,
	ResponseAnswer,
	ResponseFollowUp,
}

// Instruction is the style line given to the model for this archetype,
// or "" for a value outside Archetypes
func (t ResponseType) Instruction() string {
	switch t {
	case ResponseAcknowledgment:
		return "Brief acknowledgment showing you've seen the messages"
	case ResponseQuestion:
		return "A relevant follow-up question"
	case ResponseAnswer:
		return "A helpful answer if questions were asked"
	case ResponseFollowUp:
		return "A follow-up on previous discussions"
	}
	return ""
}

// Position is the archetype's index in Archetypes, or -1
func (t ResponseType) Position() int {
	for i, a := range Archetypes {
		if a == t {
			return i
		}
	}
	return -1
}

func ParseResponseType(s string) (ResponseType, error) {
	t := ResponseType(s)
	if t.Position() < 0 {
		return "", fmt.Errorf("unknown response type %q", s)
	}
	return t, nil
}
