// Package flow owns the step tables for the three conversation flows and
// the mapping from edit targets to storage columns. It is pure data and
// lookups; the controller packages drive it over the transport.
package flow

import (
	"fmt"

	"github.com/hrhller/registro-bot/internal/controller/state"
)

// RegistrationSteps is the initial registration sequence, in prompt order.
var RegistrationSteps = []state.Step{
	state.StepClaveInstituto,
	state.StepApellidosEstudiante,
	state.StepNombreEstudiante,
	state.StepApellidosAutorizado,
	state.StepNombreAutorizado,
}

// NewStudentSteps is the additional-student sequence, in prompt order.
var NewStudentSteps = []state.Step{
	state.StepNuevaClave,
	state.StepNuevosApellidos,
	state.StepNuevoNombre,
}

func steps(flow state.Flow) []state.Step {
	switch flow {
	case state.FlowRegistration:
		return RegistrationSteps
	case state.FlowNewStudent:
		return NewStudentSteps
	case state.FlowEdit:
		return []state.Step{state.StepEditValue}
	default:
		return nil
	}
}

// First returns the entry step of a flow.
func First(flow state.Flow) state.Step {
	if seq := steps(flow); len(seq) > 0 {
		return seq[0]
	}
	return state.StepNone
}

// Next returns the step after current. ok is false when current is the
// last step, meaning the flow should commit.
func Next(flow state.Flow, current state.Step) (next state.Step, ok bool) {
	seq := steps(flow)
	for i, step := range seq {
		if step == current && i+1 < len(seq) {
			return seq[i+1], true
		}
	}
	return state.StepNone, false
}

// Index returns the 1-based position of a step for "Paso X de Y" texts.
func Index(flow state.Flow, step state.Step) (pos, total int) {
	seq := steps(flow)
	for i, s := range seq {
		if s == step {
			return i + 1, len(seq)
		}
	}
	return 0, len(seq)
}

// ResumeStep returns the first registration step with no captured value,
// so an interrupted registration continues where it stopped.
func ResumeStep(snapshot map[state.Step]string) state.Step {
	for _, step := range RegistrationSteps {
		if _, ok := snapshot[step]; !ok {
			return step
		}
	}
	return state.StepNombreAutorizado
}

// prompts are the user-facing asks per step, without the step counter.
var prompts = map[state.Step]string{
	state.StepClaveInstituto:      "Ingresa la clave del instituto (CCT).\n\n💡 Ejemplo: 14DPR2576Y\n🔒 Si no la conoces, consúltala en la dirección del instituto.",
	state.StepApellidosEstudiante: "Ingresa los apellidos del estudiante.\n\n💡 Ejemplo: García López",
	state.StepNombreEstudiante:    "Ingresa el nombre del estudiante.\n\n💡 Ejemplo: Juan Carlos",
	state.StepApellidosAutorizado: "Ingresa los apellidos del autorizado.\n\n💡 Ejemplo: Martínez Rodríguez",
	state.StepNombreAutorizado:    "Ingresa el nombre del autorizado.\n\n💡 Ejemplo: María Elena",

	state.StepNuevaClave:      "Ingresa la clave del instituto del nuevo estudiante.\n\n💡 Ejemplo: 14DPR2576Y",
	state.StepNuevosApellidos: "Ingresa los apellidos del nuevo estudiante.\n\n💡 Ejemplo: García López",
	state.StepNuevoNombre:     "Ingresa el nombre del nuevo estudiante.\n\n💡 Ejemplo: Juan Carlos",

	state.StepEditValue: "Ingresa el nuevo valor.",
}

// Prompt returns the ask for a step, prefixed with its position in the
// flow when the flow has more than one step.
func Prompt(flow state.Flow, step state.Step) string {
	text, ok := prompts[step]
	if !ok {
		return "Ingresa el dato solicitado."
	}

	pos, total := Index(flow, step)
	if pos == 0 || total <= 1 {
		return text
	}
	return fmt.Sprintf("📝 Paso %d de %d\n%s", pos, total, text)
}

// Labels for the progress checklist, in registration order.
var stepLabels = map[state.Step]string{
	state.StepClaveInstituto:      "Clave del instituto",
	state.StepApellidosEstudiante: "Apellidos del estudiante",
	state.StepNombreEstudiante:    "Nombre del estudiante",
	state.StepApellidosAutorizado: "Apellidos del autorizado",
	state.StepNombreAutorizado:    "Nombre del autorizado",
}

// StepLabel returns the human label of a registration step.
func StepLabel(step state.Step) string {
	if label, ok := stepLabels[step]; ok {
		return label
	}
	return string(step)
}
