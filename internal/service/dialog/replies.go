package dialog

import (
	"strconv"

	"github.com/legourmet/concierge/internal/model/convo"
)

func formatPeople(n int) string {
	if n > 1 {
		return strconv.Itoa(n) + " people"
	}
	return strconv.Itoa(n) + " person"
}

// completionReply builds the final summary. Defaults stand in for absent
// fields at reply time only; the stored draft itself is never defaulted.
func completionReply(d convo.Draft) Reply {
	when := "Day to specify"
	if d.Date != nil {
		when = *d.Date
	}
	if d.Time != nil {
		when += " at " + *d.Time
	}

	count := "X person"
	if d.People != nil {
		count = formatPeople(*d.People)
	}

	return Reply{
		Lines: []string{
			"All set! 🎉",
			"",
			"We have received your reservation request:",
			"✓ " + when,
			"✓ For " + count,
			"",
			"A member of our team will contact you shortly to confirm your table.",
			"Thank you and see you soon! 😊",
		},
		Suggestions: []string{"See the menu", "Practical info", "Book another table"},
	}
}

func askDateReply(st Store) Reply {
	return Reply{
		Lines: []string{
			"With pleasure, let's set up your reservation 🕯️",
			"",
			"Which day would you like to come?",
			`You can answer "Today", "Tomorrow", "This week-end" or give a date (e.g. 25 January).`,
		},
		Suggestions: Suggestions(convo.StepAskDate, false, st.Draft()),
	}
}

func contactRequiredReply(st Store) Reply {
	return Reply{
		Lines: []string{
			"This field is required ⚠️",
			"Please fill in the details after the colon, for example:",
			"Name * : Jane Doe",
			"Mail * : jane.doe@mail.com",
			"Phone * : 0612345678",
		},
		Suggestions: Suggestions(convo.StepAskContact, false, st.Draft()),
	}
}

func resetReply() Reply {
	return Reply{
		Lines: []string{
			"Alright, let's start again from the top 🔁",
			"",
			"I can help you:",
			"• Book a table",
			"• See the menu",
			"• Get practical info",
		},
		Suggestions: []string{"Book a table", "See the menu", "Practical info"},
	}
}

func cancelReply() Reply {
	return Reply{
		Lines: []string{
			"The reservation has been cancelled ❌",
			"Would you like to start a new request or see the menu?",
		},
		Suggestions: []string{"Book a table", "See the menu", "Practical info"},
	}
}

func menuReply() Reply {
	return Reply{
		Lines: []string{
			"Here is a glimpse of our current menu 🍽️",
			"",
			"• Starters: Pumpkin velouté, Salmon tartare",
			"• Mains: Beef fillet, Seasonal risotto",
			"• Desserts: Homemade tiramisu, Chocolate fondant",
			"",
			"Would you prefer meat, fish or vegetarian?",
		},
		Suggestions: []string{"Book a table", "Practical info"},
	}
}

func hoursReply() Reply {
	return Reply{
		Lines: []string{
			"Our opening hours 🕒",
			"",
			"• Lunch: 12:00 to 14:30",
			"• Dinner: 19:00 to 22:30",
			"Closed on Mondays.",
		},
		Suggestions: []string{"Book a table", "See the menu"},
	}
}

func dietaryReply() Reply {
	return Reply{
		Lines: []string{
			"Thanks for telling us about your allergies or preferences 🩺",
			"",
			"We can adapt many dishes for:",
			"• Allergies (gluten, lactose, tree nuts...)",
			"• Vegetarian / pork-free diets",
			"",
			"Tell me what you would like to avoid and I'll suggest some ideas.",
		},
		Suggestions: []string{"See the menu", "Book a table"},
	}
}

func capabilityReply() Reply {
	return Reply{
		Lines: []string{
			"Very well 😄",
			"",
			"I can help you:",
			"• Book a table",
			"• See the menu",
			"• Get practical info",
			"",
			`For example, write "Book for 2 tomorrow evening"`,
			"or click one of the suggestions.",
		},
		Suggestions: []string{"Book a table", "See the menu", "Practical info"},
	}
}
