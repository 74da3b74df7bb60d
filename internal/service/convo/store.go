package convo

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/legourmet/concierge/internal/model/convo"
)

// Store holds the full state of one conversation: the transcript, the
// current step, the reservation draft and the weekend-disambiguation flag.
// One Store exists per session and is handed to the engine and the
// handlers explicitly; there is no ambient global. The mutex guards
// against concurrent HTTP access, the dialogue itself only ever has one
// writer per turn.
type Store struct {
	sessionID string

	mu             sync.RWMutex
	messages       []convo.Message
	step           convo.Step
	draft          convo.Draft
	weekendPending bool
}

// NewStore returns an empty conversation at the idle step.
func NewStore(sessionID string) *Store {
	return &Store{sessionID: sessionID, step: convo.StepIdle}
}

// SessionID returns the owning session identifier.
func (s *Store) SessionID() string {
	return s.sessionID
}

// AppendMessage adds one transcript entry with a fresh id and the current
// timestamp, and returns it. The log is append-only.
func (s *Store) AppendMessage(role convo.Role, text string, suggestions []string) convo.Message {
	msg := convo.Message{
		ID:          uuid.NewString(),
		SessionID:   s.sessionID,
		Role:        role,
		Text:        text,
		Suggestions: suggestions,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return msg
}

// Messages returns a copy of the transcript in append order.
func (s *Store) Messages() []convo.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make([]convo.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// Step returns the current conversation step.
func (s *Store) Step() convo.Step {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

// SetStep moves the conversation to the given step.
func (s *Store) SetStep(step convo.Step) {
	s.mu.Lock()
	s.step = step
	s.mu.Unlock()
}

// Draft returns the current reservation draft.
func (s *Store) Draft() convo.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// MergeDraft shallow-merges the set fields into the draft, last write wins
// per field.
func (s *Store) MergeDraft(partial convo.Draft) {
	s.mu.Lock()
	s.draft.Merge(partial)
	s.mu.Unlock()
}

// WeekendPending reports whether a Saturday/Sunday disambiguation is open.
func (s *Store) WeekendPending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weekendPending
}

// SetWeekendPending records or clears the weekend disambiguation.
func (s *Store) SetWeekendPending(pending bool) {
	s.mu.Lock()
	s.weekendPending = pending
	s.mu.Unlock()
}

// Reset clears the draft, the weekend flag and the step together. The
// transcript is kept; messages are never deleted within a session.
func (s *Store) Reset() {
	s.mu.Lock()
	s.draft = convo.Draft{}
	s.weekendPending = false
	s.step = convo.StepIdle
	s.mu.Unlock()
}
