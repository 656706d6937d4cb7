package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBeginAndClear(t *testing.T) {
	m := NewManager()

	require.False(t, m.InProgress(1))
	require.Equal(t, FlowNone, m.Flow(1))

	require.NoError(t, m.Begin(1, FlowRegistration))
	require.True(t, m.InProgress(1))
	require.Equal(t, FlowRegistration, m.Flow(1))

	// A second flow cannot start while one is active, not even the same one.
	require.ErrorIs(t, m.Begin(1, FlowRegistration), ErrFlowActive)
	require.ErrorIs(t, m.Begin(1, FlowEdit), ErrFlowActive)

	// Other chats are unaffected.
	require.NoError(t, m.Begin(2, FlowNewStudent))

	m.Clear(1)
	require.False(t, m.InProgress(1))
	require.True(t, m.InProgress(2))

	// Clear is idempotent.
	m.Clear(1)
	require.False(t, m.InProgress(1))
}

func TestBeginRejectsEmptyFlow(t *testing.T) {
	m := NewManager()
	require.Error(t, m.Begin(1, FlowNone))
}

func TestStepAndValues(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Begin(7, FlowRegistration))

	require.Equal(t, StepNone, m.Step(7))

	m.SetStep(7, StepClaveInstituto)
	require.Equal(t, StepClaveInstituto, m.Step(7))

	m.SetValue(7, StepClaveInstituto, "14DPR2576Y")
	value, ok := m.Value(7, StepClaveInstituto)
	require.True(t, ok)
	require.Equal(t, "14DPR2576Y", value)

	_, ok = m.Value(7, StepNombreEstudiante)
	require.False(t, ok)

	m.Clear(7)
	_, ok = m.Value(7, StepClaveInstituto)
	require.False(t, ok)
}

func TestSetValueWithoutFlowIsNoop(t *testing.T) {
	m := NewManager()

	m.SetValue(9, StepClaveInstituto, "14DPR2576Y")
	m.SetStep(9, StepClaveInstituto)

	require.False(t, m.InProgress(9))
	require.Equal(t, StepNone, m.Step(9))
	_, ok := m.Value(9, StepClaveInstituto)
	require.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Begin(3, FlowRegistration))
	m.SetValue(3, StepClaveInstituto, "14DPR2576Y")

	snapshot := m.Snapshot(3)
	require.Equal(t, map[Step]string{StepClaveInstituto: "14DPR2576Y"}, snapshot)

	// Mutating the snapshot must not leak back into the manager.
	snapshot[StepNombreEstudiante] = "Juan"
	_, ok := m.Value(3, StepNombreEstudiante)
	require.False(t, ok)

	require.Nil(t, m.Snapshot(99))
}

func TestEditTarget(t *testing.T) {
	m := NewManager()

	_, ok := m.EditTarget(5)
	require.False(t, ok)

	require.NoError(t, m.Begin(5, FlowEdit))
	m.SetEditTarget(5, EditTarget{Field: "nombre", Category: CategoryEstudiante, StudentID: 42})

	target, ok := m.EditTarget(5)
	require.True(t, ok)
	require.Equal(t, "nombre", target.Field)
	require.Equal(t, CategoryEstudiante, target.Category)
	require.EqualValues(t, 42, target.StudentID)

	m.Clear(5)
	_, ok = m.EditTarget(5)
	require.False(t, ok)
}

func TestExpireBefore(t *testing.T) {
	m := NewManager()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Begin(1, FlowRegistration))

	now = now.Add(20 * time.Minute)
	require.NoError(t, m.Begin(2, FlowNewStudent))

	// Touching a conversation refreshes it.
	now = now.Add(5 * time.Minute)
	m.SetValue(1, StepClaveInstituto, "14DPR2576Y")

	cutoff := now.Add(-10 * time.Minute)
	require.Equal(t, 0, m.ExpireBefore(cutoff))

	now = now.Add(30 * time.Minute)
	cutoff = now.Add(-10 * time.Minute)
	require.Equal(t, 2, m.ExpireBefore(cutoff))

	require.False(t, m.InProgress(1))
	require.False(t, m.InProgress(2))
}
