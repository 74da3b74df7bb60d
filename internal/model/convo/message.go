package convo

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one entry in the session transcript. The transcript is
// append-only; a message is never edited after it lands.
type Message struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	Role        Role      `json:"role"`
	Text        string    `json:"text"`
	Suggestions []string  `json:"suggestions,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
