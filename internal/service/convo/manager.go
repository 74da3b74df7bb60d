package convo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/legourmet/concierge/internal/model/convo"
	"github.com/legourmet/concierge/internal/service/dialog"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTurnInFlight    = errors.New("turn already in flight")
)

// Manager owns the live conversation sessions and drives turns through the
// dialogue engine, one at a time per session.
type Manager struct {
	engine     *dialog.Engine
	thinkDelay time.Duration

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	store *Store
	// inFlight suppresses overlapping turns on the same conversation.
	inFlight atomic.Bool
}

// NewManager bootstraps the in-memory session manager. thinkDelay is the
// pause between logging the user message and logging the bot reply.
func NewManager(engine *dialog.Engine, thinkDelay time.Duration) *Manager {
	return &Manager{
		engine:     engine,
		thinkDelay: thinkDelay,
		sessions:   make(map[string]*session),
	}
}

// CreateSession provisions an anonymous conversation with an empty
// transcript and an empty draft.
func (m *Manager) CreateSession(_ context.Context) convo.Session {
	sess := convo.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.sessions[sess.ID] = &session{store: NewStore(sess.ID)}
	m.mu.Unlock()
	return sess
}

// Store exposes the state container for a session.
func (m *Manager) Store(sessionID string) (*Store, error) {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.store, nil
}

// RunTurn logs the user utterance, waits out the thinking delay, then asks
// the engine for the reply and logs it. The user message always lands in
// the transcript strictly before the same turn's bot reply; a second turn
// on the same session while one is in flight is rejected.
func (m *Manager) RunTurn(_ context.Context, sessionID, text string) (convo.Message, error) {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return convo.Message{}, err
	}

	if !sess.inFlight.CompareAndSwap(false, true) {
		return convo.Message{}, ErrTurnInFlight
	}
	defer sess.inFlight.Store(false)

	sess.store.AppendMessage(convo.RoleUser, text, nil)

	// Simulated thinking time. The delay always runs to completion; the
	// reply is never skipped.
	if m.thinkDelay > 0 {
		timer := time.NewTimer(m.thinkDelay)
		<-timer.C
	}

	reply := m.engine.Advance(sess.store, text)
	return sess.store.AppendMessage(convo.RoleBot, reply.Text(), reply.Suggestions), nil
}

func (m *Manager) lookup(sessionID string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}
