package dialog

import (
	"github.com/legourmet/concierge/internal/model/convo"
)

// Suggestions returns the quick-reply chip set for a step. Validation
// failures re-issue the exact same set so the chips under the input box
// never jump around.
func Suggestions(step convo.Step, weekendPending bool, draft convo.Draft) []string {
	switch step {
	case convo.StepIdle:
		return []string{"Book a table", "See the menu", "Practical info"}
	case convo.StepAskDate:
		if weekendPending {
			return []string{"Saturday", "Sunday", "Modify"}
		}
		return []string{"Today", "Tomorrow", "This week-end", "Modify"}
	case convo.StepAskTime:
		return []string{"12:00", "12:30", "19:00", "20:00", "Modify"}
	case convo.StepAskPeople:
		return []string{"1 person", "2 people", "4 people", "Modify"}
	case convo.StepAskContact:
		// One chip per still-missing field; clicking one pre-fills the
		// input so the guest only types the value.
		var chips []string
		if draft.Name == nil {
			chips = append(chips, "Name * : ")
		}
		if draft.Email == nil {
			chips = append(chips, "Mail * : ")
		}
		if draft.Phone == nil {
			chips = append(chips, "Phone * : ")
		}
		if draft.Message == nil {
			chips = append(chips, "Message : ")
		}
		return chips
	case convo.StepConfirm:
		return []string{"Confirm", "Cancel", "Modify"}
	}
	return nil
}
