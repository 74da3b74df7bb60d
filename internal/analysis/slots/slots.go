// Package slots turns raw chat text into normalized reservation field
// values. Every function is pure; callers supply the reference day when a
// calendar is involved.
package slots

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	weekendPattern = regexp.MustCompile(`week[\s-]?end`)
	timePattern    = regexp.MustCompile(`^\s*(\d{1,2})(?:[h:](\d{2}))?\s*$`)
	digitsPattern  = regexp.MustCompile(`\d+`)
)

// FormatDate renders a calendar date as DD-MM-YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02-01-2006")
}

// NextWeekday returns the nearest date on or after today falling on the
// target weekday. Today itself counts as a match.
func NextWeekday(today time.Time, target time.Weekday) time.Time {
	diff := (int(target) - int(today.Weekday()) + 7) % 7
	return today.AddDate(0, 0, diff)
}

// DateResolution is the outcome of resolving a day utterance.
type DateResolution struct {
	// Value is the DD-MM-YYYY date for recognized keywords, or the raw
	// text passed through verbatim.
	Value string
	// Label is what the bot echoes back ("Today", "Saturday", ...).
	Label string
	// Keyword reports whether a date keyword was recognized.
	Keyword bool
}

// ResolveDate maps the date keywords today, tomorrow, saturday and sunday
// to a concrete calendar date. Any other text is stored as the date
// verbatim; guests are free to type "25 January" and let the staff read it.
func ResolveDate(text string, today time.Time) DateResolution {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "today":
		return DateResolution{Value: FormatDate(today), Label: "Today", Keyword: true}
	case "tomorrow":
		return DateResolution{Value: FormatDate(today.AddDate(0, 0, 1)), Label: "Tomorrow", Keyword: true}
	case "saturday":
		return DateResolution{Value: FormatDate(NextWeekday(today, time.Saturday)), Label: "Saturday", Keyword: true}
	case "sunday":
		return DateResolution{Value: FormatDate(NextWeekday(today, time.Sunday)), Label: "Sunday", Keyword: true}
	}
	return DateResolution{Value: text, Label: text}
}

// IsWeekendReference reports whether the text mentions the week-end,
// tolerating the hyphenated, spaced and joined spellings.
func IsWeekendReference(text string) bool {
	return weekendPattern.MatchString(strings.ToLower(text))
}

// NormalizeTime rewrites "9", "9h30" or "9:30" style input as HH:MM with a
// zero-padded hour; missing minutes default to 00. Text that does not look
// like a time passes through trimmed but otherwise unchanged.
func NormalizeTime(text string) string {
	trimmed := strings.TrimSpace(text)
	m := timePattern.FindStringSubmatch(strings.ToLower(trimmed))
	if m == nil {
		return trimmed
	}
	hour := m[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	minutes := m[2]
	if minutes == "" {
		minutes = "00"
	}
	return hour + ":" + minutes
}

// ExtractPeopleCount pulls the first run of digits out of the text and
// parses it base-10.
func ExtractPeopleCount(text string) (int, bool) {
	digits := digitsPattern.FindString(text)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractLabeledField splits "Label * : value" style input on its first
// colon. The label comes back lower-cased with the * marker and surrounding
// whitespace stripped; the value is trimmed at both ends and may be empty.
func ExtractLabeledField(text string) (label, value string, ok bool) {
	idx := strings.Index(text, ":")
	if idx < 0 {
		return "", "", false
	}
	label = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(text[:idx], "*", "")))
	value = strings.TrimSpace(text[idx+1:])
	return label, value, true
}
