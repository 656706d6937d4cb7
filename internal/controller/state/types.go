package state

// Flow identifies one of the mutually exclusive conversation flows.
type Flow string

const (
	FlowNone         Flow = ""
	FlowRegistration Flow = "registro"
	FlowNewStudent   Flow = "nuevo_estudiante"
	FlowEdit         Flow = "edicion"
)

// Step is a single prompt within a flow. Steps double as keys for the
// values captured at each step.
type Step string

const (
	StepNone Step = ""

	// Initial registration
	StepClaveInstituto      Step = "clave_instituto"
	StepApellidosEstudiante Step = "apellidos_estudiante"
	StepNombreEstudiante    Step = "nombre_estudiante"
	StepApellidosAutorizado Step = "apellidos_autorizado"
	StepNombreAutorizado    Step = "nombre_autorizado"

	// Additional student
	StepNuevaClave      Step = "nueva_clave_instituto"
	StepNuevosApellidos Step = "nuevos_apellidos_estudiante"
	StepNuevoNombre     Step = "nuevo_nombre_estudiante"

	// Edit
	StepEditValue Step = "edit_value"
)

// Category says whether an edit targets student or contact columns.
type Category string

const (
	CategoryEstudiante Category = "estudiante"
	CategoryAutorizado Category = "autorizado"
)

// EditTarget is the typed descriptor parsed from an edit_field callback.
// StudentID is only meaningful for CategoryEstudiante, but is carried for
// both so follow-up screens can return to the student being edited.
type EditTarget struct {
	Field     string
	Category  Category
	StudentID int64
}
