package state

import (
	"testing"
	"time"
)

func TestDefaultState(t *testing.T) {
	m := New()
	if got := m.GetState(1); got != StateNormal {
		t.Errorf("GetState on unknown chat = %v, want %v", got, StateNormal)
	}
}

func TestSetAndClear(t *testing.T) {
	m := New()

	m.SetState(1, StateAddingItems)
	if got := m.GetState(1); got != StateAddingItems {
		t.Errorf("GetState = %v, want %v", got, StateAddingItems)
	}

	// other chats are unaffected
	if got := m.GetState(2); got != StateNormal {
		t.Errorf("GetState(2) = %v, want %v", got, StateNormal)
	}

	m.ClearState(1)
	if got := m.GetState(1); got != StateNormal {
		t.Errorf("GetState after clear = %v, want %v", got, StateNormal)
	}
}

func TestStaleStateFallsBack(t *testing.T) {
	m := New()

	m.states[1] = ChatState{
		State:     StateAddingItems,
		Timestamp: time.Now().Add(-staleAfter - time.Minute),
	}

	if got := m.GetState(1); got != StateNormal {
		t.Errorf("stale GetState = %v, want %v", got, StateNormal)
	}
}
