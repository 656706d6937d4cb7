package flow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrhller/registro-bot/internal/controller/state"
)

func TestFirst(t *testing.T) {
	require.Equal(t, state.StepClaveInstituto, First(state.FlowRegistration))
	require.Equal(t, state.StepNuevaClave, First(state.FlowNewStudent))
	require.Equal(t, state.StepEditValue, First(state.FlowEdit))
	require.Equal(t, state.StepNone, First(state.FlowNone))
}

func TestNextWalksRegistrationInOrder(t *testing.T) {
	order := []state.Step{state.StepClaveInstituto}
	current := state.StepClaveInstituto
	for {
		next, ok := Next(state.FlowRegistration, current)
		if !ok {
			break
		}
		order = append(order, next)
		current = next
	}
	require.Equal(t, RegistrationSteps, order)
}

func TestNextSignalsCommitOnLastStep(t *testing.T) {
	_, ok := Next(state.FlowRegistration, state.StepNombreAutorizado)
	require.False(t, ok)

	_, ok = Next(state.FlowNewStudent, state.StepNuevoNombre)
	require.False(t, ok)

	_, ok = Next(state.FlowEdit, state.StepEditValue)
	require.False(t, ok)
}

func TestIndex(t *testing.T) {
	pos, total := Index(state.FlowRegistration, state.StepClaveInstituto)
	require.Equal(t, 1, pos)
	require.Equal(t, 5, total)

	pos, total = Index(state.FlowRegistration, state.StepNombreAutorizado)
	require.Equal(t, 5, pos)
	require.Equal(t, 5, total)

	pos, _ = Index(state.FlowRegistration, state.StepNuevaClave)
	require.Equal(t, 0, pos)
}

func TestResumeStep(t *testing.T) {
	require.Equal(t, state.StepClaveInstituto, ResumeStep(nil))

	snapshot := map[state.Step]string{
		state.StepClaveInstituto:      "14DPR2576Y",
		state.StepApellidosEstudiante: "Pérez",
	}
	require.Equal(t, state.StepNombreEstudiante, ResumeStep(snapshot))

	for _, step := range RegistrationSteps {
		snapshot[step] = "x"
	}
	require.Equal(t, state.StepNombreAutorizado, ResumeStep(snapshot))
}

func TestPromptCarriesStepCounter(t *testing.T) {
	prompt := Prompt(state.FlowRegistration, state.StepApellidosEstudiante)
	require.True(t, strings.HasPrefix(prompt, "📝 Paso 2 de 5"))

	// Single-step flows have no counter.
	prompt = Prompt(state.FlowEdit, state.StepEditValue)
	require.False(t, strings.Contains(prompt, "Paso"))
}

func TestEditColumnIsTotalOverEditableFields(t *testing.T) {
	for _, category := range []state.Category{state.CategoryEstudiante, state.CategoryAutorizado} {
		for _, field := range EditableFields(category) {
			column, ok := EditColumn(category, field)
			require.True(t, ok, "category %s field %s", category, field)
			require.NotEmpty(t, column)
		}
	}
}

func TestEditColumnRejectsUnknown(t *testing.T) {
	_, ok := EditColumn(state.CategoryAutorizado, "clave")
	require.False(t, ok)

	_, ok = EditColumn(state.Category("otra"), "nombre")
	require.False(t, ok)
}

func TestFieldLabelFallsBackToRawName(t *testing.T) {
	require.Equal(t, "Nombre del Estudiante", FieldLabel(state.CategoryEstudiante, "nombre"))
	require.Equal(t, "desconocido", FieldLabel(state.CategoryEstudiante, "desconocido"))
}
