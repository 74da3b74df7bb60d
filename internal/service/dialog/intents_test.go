package dialog

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		lower string
		want  intent
	}{
		{"please cancel all of it", intentReset},
		{"start over", intentReset},
		{"modify", intentModify},
		{"i want to reserve", intentReserve},
		{"book a table", intentReserve},
		{"show me the menu", intentMenu},
		{"what are your hours", intentHours},
		{"are you open monday", intentHours},
		{"gluten free options?", intentDietary},
		{"cancel", intentNone},
		{"hello", intentNone},
	}

	for _, c := range cases {
		if got := classify(c.lower); got != c.want {
			t.Fatalf("classify(%q): got %s want %s", c.lower, got, c.want)
		}
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// An utterance matching several intents resolves to the highest
	// priority one: reset beats reserve.
	if got := classify("cancel all my bookings"); got != intentReset {
		t.Fatalf("got %s, want %s", got, intentReset)
	}
}
