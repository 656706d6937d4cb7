package flow

import "github.com/hrhller/registro-bot/internal/controller/state"

// editColumns is the total lookup from (category, short field name) to
// storage column. Every editable field has exactly one entry; anything
// not listed here is rejected rather than guessed.
var editColumns = map[state.Category]map[string]string{
	state.CategoryEstudiante: {
		"clave":     "clave_instituto",
		"apellidos": "apellidos_estudiante",
		"nombre":    "nombre_estudiante",
	},
	state.CategoryAutorizado: {
		"apellidos": "apellidos_autorizado",
		"nombre":    "nombre_autorizado",
	},
}

// fieldLabels are the user-facing names of the editable fields.
var fieldLabels = map[state.Category]map[string]string{
	state.CategoryEstudiante: {
		"clave":     "Clave del Instituto",
		"apellidos": "Apellidos del Estudiante",
		"nombre":    "Nombre del Estudiante",
	},
	state.CategoryAutorizado: {
		"apellidos": "Apellidos del Autorizado",
		"nombre":    "Nombre del Autorizado",
	},
}

// EditColumn resolves an edit target to its storage column.
// ok is false for unmapped (category, field) combinations.
func EditColumn(category state.Category, field string) (column string, ok bool) {
	columns, ok := editColumns[category]
	if !ok {
		return "", false
	}
	column, ok = columns[field]
	return column, ok
}

// FieldLabel returns the display name for an editable field, or the raw
// short name when the combination is unknown.
func FieldLabel(category state.Category, field string) string {
	if labels, ok := fieldLabels[category]; ok {
		if label, ok := labels[field]; ok {
			return label
		}
	}
	return field
}

// EditableFields lists the short field names of a category in menu order.
func EditableFields(category state.Category) []string {
	switch category {
	case state.CategoryEstudiante:
		return []string{"clave", "nombre", "apellidos"}
	case state.CategoryAutorizado:
		return []string{"nombre", "apellidos"}
	default:
		return nil
	}
}
