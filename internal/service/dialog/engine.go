package dialog

import (
	"strings"
	"time"

	"github.com/legourmet/concierge/internal/analysis/slots"
	"github.com/legourmet/concierge/internal/model/convo"
)

// ContactValidatedSignal is the reserved utterance an external contact
// surface feeds back into the dialogue once the guest's details have been
// collected and validated elsewhere. It triggers the completion summary
// directly, whatever step the conversation is at.
const ContactValidatedSignal = "__contact_ok__"

// Reply is the engine's answer for one turn: the bot's reply lines plus
// the next set of suggestion chips.
type Reply struct {
	Lines       []string
	Suggestions []string
}

// Text joins the reply lines into the message body.
func (r Reply) Text() string {
	return strings.Join(r.Lines, "\n")
}

// Store is the slice of conversation state the engine reads and mutates.
// *convo.Store in internal/service/convo satisfies it.
type Store interface {
	Step() convo.Step
	Draft() convo.Draft
	WeekendPending() bool
	SetStep(convo.Step)
	SetWeekendPending(bool)
	MergeDraft(convo.Draft)
	Reset()
}

// Engine is the dialogue state machine. It never fails: every utterance,
// however malformed, yields a non-empty reply and a valid next step.
type Engine struct {
	// Now supplies the reference day for date keyword resolution.
	Now func() time.Time
}

// NewEngine returns an engine resolving dates against the wall clock.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

// Advance processes one user utterance against the current conversation
// state. Processing order, first match wins: sentinel completion signal,
// global reset, modify back-transition, step-local rules, then the global
// fallback intents.
func (e *Engine) Advance(st Store, utterance string) Reply {
	text := strings.TrimSpace(utterance)
	lower := strings.ToLower(text)

	if utterance == ContactValidatedSignal {
		return complete(st)
	}

	it := classify(lower)

	if it == intentReset {
		st.Reset()
		return resetReply()
	}

	if it == intentModify {
		if r, ok := modify(st); ok {
			return r
		}
	}

	if r, ok := e.stepLocal(st, text, lower); ok {
		return r
	}

	return fallback(st, it)
}

// complete emits the completion summary from whatever the draft currently
// holds and closes the flow.
func complete(st Store) Reply {
	r := completionReply(st.Draft())
	st.Reset()
	return r
}

// modify walks one step back on the happy path. Steps without a defined
// predecessor report false and let step-local handling have the utterance.
func modify(st Store) (Reply, bool) {
	switch st.Step() {
	case convo.StepAskTime:
		st.SetStep(convo.StepAskDate)
		st.SetWeekendPending(false)
		return Reply{
			Lines: []string{
				"Alright, let's go back to the day 📅",
				"Which day would you like to come now?",
			},
			Suggestions: Suggestions(convo.StepAskDate, false, st.Draft()),
		}, true
	case convo.StepAskPeople:
		st.SetStep(convo.StepAskTime)
		return Reply{
			Lines: []string{
				"No problem, let's change the time 🕒",
				"What time would you like to come?",
			},
			Suggestions: Suggestions(convo.StepAskTime, false, st.Draft()),
		}, true
	case convo.StepConfirm:
		st.SetStep(convo.StepAskPeople)
		return Reply{
			Lines: []string{
				"Sure, let's adjust the party size 👥",
				"For how many people would you like to book?",
			},
			Suggestions: Suggestions(convo.StepAskPeople, false, st.Draft()),
		}, true
	}
	return Reply{}, false
}

// stepLocal applies the rules of the active step. A false return hands the
// utterance to the global fallback.
func (e *Engine) stepLocal(st Store, text, lower string) (Reply, bool) {
	switch st.Step() {
	case convo.StepIdle:
		if containsAny(lower, "reserv", "book") {
			st.SetStep(convo.StepAskDate)
			return askDateReply(st), true
		}
		return Reply{}, false
	case convo.StepAskDate:
		return e.handleDate(st, text, lower), true
	case convo.StepAskTime:
		return handleTime(st, text), true
	case convo.StepAskPeople:
		return handlePeople(st, text), true
	case convo.StepAskContact:
		return handleContact(st, text), true
	case convo.StepConfirm:
		if strings.Contains(lower, "confirm") {
			return complete(st), true
		}
		if strings.Contains(lower, "cancel") {
			st.Reset()
			return cancelReply(), true
		}
		return Reply{}, false
	}
	return Reply{}, false
}

func (e *Engine) handleDate(st Store, text, lower string) Reply {
	// "Modify" has no predecessor here; re-ask the day instead.
	if lower == "modify" {
		st.SetWeekendPending(false)
		return Reply{
			Lines: []string{
				"No worries, just pick a day 📅",
				`For example: "Today", "Tomorrow", "This week-end" or an exact date.`,
			},
			Suggestions: Suggestions(convo.StepAskDate, false, st.Draft()),
		}
	}

	if slots.IsWeekendReference(lower) {
		st.SetWeekendPending(true)
		return Reply{
			Lines: []string{
				"Perfect, this week-end 😊",
				"",
				"Would you rather come:",
				"• Saturday",
				"• Sunday",
			},
			Suggestions: Suggestions(convo.StepAskDate, true, st.Draft()),
		}
	}

	res := slots.ResolveDate(text, e.Now())
	st.SetWeekendPending(false)
	st.MergeDraft(convo.Draft{Date: &res.Value})
	st.SetStep(convo.StepAskTime)
	return Reply{
		Lines: []string{
			"Perfect, noted for " + res.Label + " (" + res.Value + ") 📅",
			"",
			"What time would you like to come?",
			"For example: 12:00, 12:30, 19:00, 20:00",
		},
		Suggestions: Suggestions(convo.StepAskTime, false, st.Draft()),
	}
}

func handleTime(st Store, text string) Reply {
	normalized := slots.NormalizeTime(text)
	st.MergeDraft(convo.Draft{Time: &normalized})
	st.SetStep(convo.StepAskPeople)
	return Reply{
		Lines: []string{
			"Very well, " + normalized + " 🕒",
			"",
			"For how many people?",
			"For example: 2, 4 or any other number.",
		},
		Suggestions: Suggestions(convo.StepAskPeople, false, st.Draft()),
	}
}

func handlePeople(st Store, text string) Reply {
	n, ok := slots.ExtractPeopleCount(text)
	if !ok {
		return Reply{
			Lines: []string{
				"I didn't quite catch the number of people.",
				"Could you give me a number? (e.g. 2, 4, 6...)",
			},
			Suggestions: Suggestions(convo.StepAskPeople, false, st.Draft()),
		}
	}

	st.MergeDraft(convo.Draft{People: &n})
	st.SetStep(convo.StepAskContact)
	return Reply{
		Lines: []string{
			"Great, a table for " + formatPeople(n) + " ✨",
			"",
			"Before we finalize, could I have your contact details:",
			"• Name *",
			"• Email address *",
			"• Phone *",
			"• And a message if needed (allergies, special occasion...).",
			"",
			"Type them in the conversation below,",
			"or click a field and fill it in the input box.",
		},
		Suggestions: Suggestions(convo.StepAskContact, false, st.Draft()),
	}
}

func handleContact(st Store, text string) Reply {
	label, value, ok := slots.ExtractLabeledField(text)
	if ok {
		switch {
		case strings.HasPrefix(label, "name"):
			if value == "" {
				return contactRequiredReply(st)
			}
			st.MergeDraft(convo.Draft{Name: &value})
		case strings.HasPrefix(label, "mail"), strings.HasPrefix(label, "email"):
			if value == "" {
				return contactRequiredReply(st)
			}
			st.MergeDraft(convo.Draft{Email: &value})
		case strings.HasPrefix(label, "phone"), strings.HasPrefix(label, "tel"):
			if value == "" {
				return contactRequiredReply(st)
			}
			st.MergeDraft(convo.Draft{Phone: &value})
		case strings.HasPrefix(label, "message"):
			// The message is optional and may be stored empty, but it
			// still has to be touched before the summary.
			st.MergeDraft(convo.Draft{Message: &value})
		}
	}

	draft := st.Draft()
	if draft.ContactComplete() {
		st.SetStep(convo.StepConfirm)
		return Reply{
			Lines: []string{
				"Thank you, your contact details have been saved ✅",
				`Here is the summary of your request, say "confirm" or "cancel".`,
			},
			Suggestions: Suggestions(convo.StepConfirm, false, draft),
		}
	}

	return Reply{
		Lines: []string{
			"Thanks, noted.",
			"I still need: " + strings.Join(draft.MissingContactFields(), ", ") + ".",
			"Click a field below, then fill it in the input box.",
		},
		Suggestions: Suggestions(convo.StepAskContact, false, draft),
	}
}

// fallback answers utterances no step rule claimed. It never mutates the
// step except to start the reservation flow from idle.
func fallback(st Store, it intent) Reply {
	switch it {
	case intentReserve:
		if st.Step() == convo.StepIdle {
			st.SetStep(convo.StepAskDate)
			return askDateReply(st)
		}
	case intentMenu:
		return menuReply()
	case intentHours:
		return hoursReply()
	case intentDietary:
		return dietaryReply()
	}
	return capabilityReply()
}
