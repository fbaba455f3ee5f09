package state

import (
	"sync"
	"time"
)

// State represents the conversational state of a chat
type State string

const (
	// StateNormal is the default state
	StateNormal State = "normal"
	// StateAddingItems means the chat is sending pantry items as text
	StateAddingItems State = "adding_items"
)

// staleAfter is how long a flow state survives without activity
const staleAfter = 10 * time.Minute

// ChatState pairs a state with when it was entered
type ChatState struct {
	State     State
	Timestamp time.Time
}

// Manager manages chat states in memory
type Manager struct {
	mu     sync.Mutex
	states map[int64]ChatState
}

// New creates a new state manager
func New() *Manager {
	return &Manager{
		states: make(map[int64]ChatState),
	}
}

// SetState sets the state for a chat
func (m *Manager) SetState(chatID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chatID] = ChatState{
		State:     state,
		Timestamp: time.Now(),
	}
}

// GetState returns the state for a chat. Stale states fall back to
// StateNormal so an abandoned flow doesn't swallow later messages.
func (m *Manager) GetState(chatID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	chatState, ok := m.states[chatID]
	if !ok {
		return StateNormal
	}
	if time.Since(chatState.Timestamp) > staleAfter {
		delete(m.states, chatID)
		return StateNormal
	}
	return chatState.State
}

// ClearState clears the state for a chat
func (m *Manager) ClearState(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, chatID)
}
