package state

import (
	"errors"
	"sync"
	"time"
)

// ErrFlowActive is returned by Begin while another flow is in progress.
// Callers resolve it by offering the user resume/restart, never by
// silently replacing the active flow.
var ErrFlowActive = errors.New("another flow is active")

// conversation is the ephemeral per-chat state. It lives only in memory:
// a restart drops partial progress, and the sweeper expires idle entries.
type conversation struct {
	flow      Flow
	step      Step
	values    map[Step]string
	target    *EditTarget
	updatedAt time.Time
}

// Manager tracks conversation state per chat. Safe for concurrent use;
// the transport may dispatch different chats in parallel.
type Manager struct {
	mu    sync.RWMutex
	convs map[int64]*conversation

	now func() time.Time // overridable in tests
}

func NewManager() *Manager {
	return &Manager{
		convs: make(map[int64]*conversation),
		now:   time.Now,
	}
}

// Begin enters a flow at its first step. Fails with ErrFlowActive when a
// flow is already in progress for the chat.
func (m *Manager) Begin(telegramID int64, flow Flow) error {
	if flow == FlowNone {
		return errors.New("cannot begin empty flow")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.convs[telegramID]; exists {
		return ErrFlowActive
	}

	m.convs[telegramID] = &conversation{
		flow:      flow,
		values:    make(map[Step]string),
		updatedAt: m.now(),
	}
	return nil
}

// Flow returns the active flow, or FlowNone.
func (m *Manager) Flow(telegramID int64) Flow {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if conv, exists := m.convs[telegramID]; exists {
		return conv.flow
	}
	return FlowNone
}

// InProgress reports whether the chat has an active flow.
func (m *Manager) InProgress(telegramID int64) bool {
	return m.Flow(telegramID) != FlowNone
}

// Step returns the current step, or StepNone when no flow is active.
func (m *Manager) Step(telegramID int64) Step {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if conv, exists := m.convs[telegramID]; exists {
		return conv.step
	}
	return StepNone
}

// SetStep moves the active flow to the given step. No-op without a flow.
func (m *Manager) SetStep(telegramID int64, step Step) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conv, exists := m.convs[telegramID]; exists {
		conv.step = step
		conv.updatedAt = m.now()
	}
}

// SetValue stores a captured field value. No-op without a flow: state is
// only writable between Begin and Clear.
func (m *Manager) SetValue(telegramID int64, step Step, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conv, exists := m.convs[telegramID]; exists {
		conv.values[step] = value
		conv.updatedAt = m.now()
	}
}

// Value returns one captured field value.
func (m *Manager) Value(telegramID int64, step Step) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if conv, exists := m.convs[telegramID]; exists {
		value, ok := conv.values[step]
		return value, ok
	}
	return "", false
}

// Snapshot returns a copy of all values captured so far.
func (m *Manager) Snapshot(telegramID int64) map[Step]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, exists := m.convs[telegramID]
	if !exists {
		return nil
	}

	values := make(map[Step]string, len(conv.values))
	for step, value := range conv.values {
		values[step] = value
	}
	return values
}

// SetEditTarget stores the edit descriptor for the edit flow.
func (m *Manager) SetEditTarget(telegramID int64, target EditTarget) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conv, exists := m.convs[telegramID]; exists {
		conv.target = &target
		conv.updatedAt = m.now()
	}
}

// EditTarget returns the stored edit descriptor.
func (m *Manager) EditTarget(telegramID int64) (EditTarget, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if conv, exists := m.convs[telegramID]; exists && conv.target != nil {
		return *conv.target, true
	}
	return EditTarget{}, false
}

// Clear drops the conversation. Idempotent: clearing a chat with no
// active flow is a no-op.
func (m *Manager) Clear(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.convs, telegramID)
}

// ExpireBefore drops conversations not touched since the cutoff and
// returns how many were removed.
func (m *Manager) ExpireBefore(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expired int
	for telegramID, conv := range m.convs {
		if conv.updatedAt.Before(cutoff) {
			delete(m.convs, telegramID)
			expired++
		}
	}
	return expired
}
