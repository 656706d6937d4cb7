package callbacks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrhller/registro-bot/internal/controller/state"
)

func TestEditStudentDataRoundTrip(t *testing.T) {
	data := EditStudentData(42)
	require.Equal(t, "edit_student_42", data)

	id, err := ParseStudentID(data)
	require.NoError(t, err)
	require.EqualValues(t, 42, id)
}

func TestParseStudentIDRejectsGarbage(t *testing.T) {
	_, err := ParseStudentID("edit_field_nombre_estudiante_42")
	require.Error(t, err)

	_, err = ParseStudentID("edit_student_abc")
	require.Error(t, err)

	_, err = ParseStudentID("edit_student_")
	require.Error(t, err)
}

func TestEditFieldDataRoundTrip(t *testing.T) {
	cases := []struct {
		field    string
		category state.Category
	}{
		{"clave", state.CategoryEstudiante},
		{"apellidos", state.CategoryEstudiante},
		{"nombre", state.CategoryEstudiante},
		{"apellidos", state.CategoryAutorizado},
		{"nombre", state.CategoryAutorizado},
	}

	for _, tc := range cases {
		data := EditFieldData(tc.field, tc.category, 7)
		target, err := ParseEditTarget(data)
		require.NoError(t, err, "payload %q", data)
		require.Equal(t, tc.field, target.Field)
		require.Equal(t, tc.category, target.Category)
		require.EqualValues(t, 7, target.StudentID)
	}
}

func TestDeleteStudentDataRoundTrip(t *testing.T) {
	id, err := ParseDeleteStudentID(DeleteStudentData(7))
	require.NoError(t, err)
	require.EqualValues(t, 7, id)

	id, err = ParseDeleteStudentOkID(DeleteStudentOkData(7))
	require.NoError(t, err)
	require.EqualValues(t, 7, id)

	// The confirm payload must not parse as a plain delete request; the
	// router relies on matching the longer prefix first.
	_, err = ParseDeleteStudentOkID(DeleteStudentData(7))
	require.Error(t, err)
}

func TestParseEditTargetRejectsInvalid(t *testing.T) {
	// Wrong prefix.
	_, err := ParseEditTarget("edit_student_42")
	require.Error(t, err)

	// Too few tokens.
	_, err = ParseEditTarget("edit_field_nombre_42")
	require.Error(t, err)

	// Unknown category.
	_, err = ParseEditTarget("edit_field_nombre_maestro_42")
	require.Error(t, err)

	// Field not editable for the category.
	_, err = ParseEditTarget("edit_field_clave_autorizado_42")
	require.Error(t, err)

	// Non-numeric student id.
	_, err = ParseEditTarget("edit_field_nombre_estudiante_xx")
	require.Error(t, err)
}
