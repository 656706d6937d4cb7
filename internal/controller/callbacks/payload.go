package callbacks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hrhller/registro-bot/internal/controller/flow"
	"github.com/hrhller/registro-bot/internal/controller/state"
)

// ========================
// Callback Data Patterns
// ========================
// These constants define the callback data formats used throughout the bot.

const (
	RegisterStart    = "register_start"
	ContinueRegister = "continue_register"
	RestartRegister  = "restart_register"

	ViewStudents    = "view_students"
	NewStudentStart = "new_student_start"

	EditMenu          = "edit_menu"
	EditStudentPrefix = "edit_student_" // edit_student_{studentID}
	EditFieldPrefix   = "edit_field_"   // edit_field_{field}_{category}_{studentID}

	DeleteConfirm   = "delete_confirm"
	DeleteConfirmed = "delete_confirmed"

	DeleteStudentOkPrefix = "delete_student_ok_" // delete_student_ok_{studentID}
	DeleteStudentPrefix   = "delete_student_"    // delete_student_{studentID}

	BackToMenu = "back_to_menu"
)

// EditStudentData builds the payload that selects a student for editing.
func EditStudentData(studentID int64) string {
	return fmt.Sprintf("%s%d", EditStudentPrefix, studentID)
}

// EditFieldData builds the payload that selects a field for editing.
func EditFieldData(field string, category state.Category, studentID int64) string {
	return fmt.Sprintf("%s%s_%s_%d", EditFieldPrefix, field, category, studentID)
}

// DeleteStudentData builds the payload that asks to delete one student.
func DeleteStudentData(studentID int64) string {
	return fmt.Sprintf("%s%d", DeleteStudentPrefix, studentID)
}

// DeleteStudentOkData builds the payload that confirms the deletion.
func DeleteStudentOkData(studentID int64) string {
	return fmt.Sprintf("%s%d", DeleteStudentOkPrefix, studentID)
}

func parseID(prefix, data string) (int64, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, fmt.Errorf("payload %q does not start with %q", data, prefix)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse student id from %q: %w", data, err)
	}
	return id, nil
}

// ParseStudentID extracts the student id from an edit_student payload.
func ParseStudentID(data string) (int64, error) {
	return parseID(EditStudentPrefix, data)
}

// ParseDeleteStudentID extracts the student id from a delete_student
// payload.
func ParseDeleteStudentID(data string) (int64, error) {
	return parseID(DeleteStudentPrefix, data)
}

// ParseDeleteStudentOkID extracts the student id from a confirmed
// delete_student payload.
func ParseDeleteStudentOkID(data string) (int64, error) {
	return parseID(DeleteStudentOkPrefix, data)
}

// ParseEditTarget decodes an edit_field payload into a typed descriptor.
// The payload is parsed right to left — the last token is the student id,
// the one before it the category — because field names may themselves
// contain underscores. Unmapped (category, field) combinations are
// rejected here, at the transport boundary.
func ParseEditTarget(data string) (state.EditTarget, error) {
	raw, ok := strings.CutPrefix(data, EditFieldPrefix)
	if !ok {
		return state.EditTarget{}, fmt.Errorf("not an edit_field payload: %q", data)
	}

	parts := strings.Split(raw, "_")
	if len(parts) < 3 {
		return state.EditTarget{}, fmt.Errorf("malformed edit_field payload: %q", data)
	}

	studentID, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return state.EditTarget{}, fmt.Errorf("parse student id from %q: %w", data, err)
	}

	category := state.Category(parts[len(parts)-2])
	if category != state.CategoryEstudiante && category != state.CategoryAutorizado {
		return state.EditTarget{}, fmt.Errorf("unknown edit category in %q", data)
	}

	field := strings.Join(parts[:len(parts)-2], "_")
	if _, ok := flow.EditColumn(category, field); !ok {
		return state.EditTarget{}, fmt.Errorf("field %q not editable for category %q", field, category)
	}

	return state.EditTarget{
		Field:     field,
		Category:  category,
		StudentID: studentID,
	}, nil
}
