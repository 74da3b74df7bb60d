package dialog

import "strings"

// intent tags the utterance classes recognized outside step-local parsing.
type intent string

const (
	intentNone    intent = "none"
	intentReset   intent = "reset"
	intentModify  intent = "modify"
	intentReserve intent = "reserve"
	intentMenu    intent = "menu"
	intentHours   intent = "hours"
	intentDietary intent = "dietary"
)

// matcher pairs an intent tag with its recognition rule.
type matcher struct {
	tag   intent
	match func(lower string) bool
}

// globalMatchers run in slice order, first hit wins. Reset outranks
// everything so "cancel all" never reads as a confirmation-step "cancel";
// modify is next so the back-transition applies before any step parsing.
var globalMatchers = []matcher{
	{intentReset, func(s string) bool { return containsAny(s, "cancel all", "start over") }},
	{intentModify, func(s string) bool { return s == "modify" }},
	{intentReserve, func(s string) bool { return containsAny(s, "reserv", "book") }},
	{intentMenu, func(s string) bool { return containsAny(s, "menu", "card") }},
	{intentHours, func(s string) bool { return containsAny(s, "hour", "open") }},
	{intentDietary, func(s string) bool { return containsAny(s, "allerg", "gluten", "vegetar", "diet") }},
}

// classify returns the first matching intent for the lower-cased, trimmed
// utterance.
func classify(lower string) intent {
	for _, m := range globalMatchers {
		if m.match(lower) {
			return m.tag
		}
	}
	return intentNone
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
