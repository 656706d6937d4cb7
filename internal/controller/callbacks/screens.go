package callbacks

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/hrhller/registro-bot/internal/controller/callbacks/common/formatting"
	"github.com/hrhller/registro-bot/internal/controller/callbacks/common/keyboard"
	"github.com/hrhller/registro-bot/internal/controller/flow"
	"github.com/hrhller/registro-bot/internal/controller/state"
	"github.com/hrhller/registro-bot/internal/model"
)

// Screen builders shared by the command handlers and callback handlers.
// All user-facing text is plain (no parse mode) so names with special
// characters never break rendering.

// MainMenuKeyboard is the menu for a registered chat.
func MainMenuKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("📋 Ver mis datos", ViewStudents)).
		Row(keyboard.Button("➕ Agregar otro estudiante", NewStudentStart)).
		Row(keyboard.Button("✏️ Editar datos", EditMenu)).
		Row(keyboard.Button("🗑️ Eliminar registros", DeleteConfirm)).
		Build()
}

// RegisterKeyboard is the menu for an unregistered chat.
func RegisterKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("📝 Registrarme", RegisterStart)).
		Build()
}

// ResumeKeyboard offers continue/restart for an interrupted registration.
func ResumeKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("▶️ Continuar registro", ContinueRegister)).
		Row(keyboard.Button("🔄 Reiniciar registro", RestartRegister)).
		Build()
}

// MainMenuText renders the registered main-menu body.
func MainMenuText(count int) string {
	return fmt.Sprintf("Tienes %s en el sistema.\n¿Qué deseas hacer?",
		formatting.CountStudents(count))
}

// ProgressChecklist renders the ✅/⏳ registration checklist from the
// values captured so far.
func ProgressChecklist(snapshot map[state.Step]string) string {
	var sb strings.Builder
	for _, step := range flow.RegistrationSteps {
		if _, done := snapshot[step]; done {
			sb.WriteString("✅ ")
		} else {
			sb.WriteString("⏳ ")
		}
		sb.WriteString(flow.StepLabel(step))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ResumeScreen renders the in-progress registration screen with the
// continue/restart choice.
func ResumeScreen(snapshot map[state.Step]string) (string, *models.InlineKeyboardMarkup) {
	text := "📝 Registro en progreso\n\n" +
		ProgressChecklist(snapshot) +
		"\n¿Qué deseas hacer?"
	return text, ResumeKeyboard()
}

// StudentListText renders all students of a chat for the view screen.
func StudentListText(telegramID int64, students []*model.StudentRecord) string {
	var sb strings.Builder
	sb.WriteString("📋 Mis Estudiantes Registrados\n\n")
	sb.WriteString(fmt.Sprintf("🆔 ID Telegram: %d\n", telegramID))
	sb.WriteString(fmt.Sprintf("📊 Total: %s\n\n", formatting.CountStudents(len(students))))

	for i, student := range students {
		sb.WriteString(fmt.Sprintf("👨‍🎓 Estudiante #%d\n", i+1))
		sb.WriteString(fmt.Sprintf("🏫 Instituto: %s\n", student.ClaveInstituto))
		sb.WriteString(fmt.Sprintf("📝 Nombre: %s\n", student.FullName()))
		sb.WriteString(fmt.Sprintf("👤 Autorizado: %s %s\n", student.ContactNombre, student.ContactApellidos))
		sb.WriteString(fmt.Sprintf("📅 Registrado: %s\n", formatting.FormatDate(student.CreatedAt)))
		if i < len(students)-1 {
			sb.WriteString("\n──────────────\n\n")
		}
	}
	return sb.String()
}

// StudentSummary renders one student with their contact, used after
// commits and edits.
func StudentSummary(student *model.StudentRecord) string {
	return fmt.Sprintf(
		"👨‍🎓 %s\n🏫 Instituto: %s\n👤 Autorizado: %s %s",
		student.FullName(),
		student.ClaveInstituto,
		student.ContactNombre,
		student.ContactApellidos,
	)
}

// EditStudentListKeyboard lists students as buttons for the edit menu.
func EditStudentListKeyboard(students []*model.StudentRecord) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	for _, student := range students {
		kb.Row(keyboard.Button("👨‍🎓 "+student.FullName(), EditStudentData(student.ID)))
	}
	kb.Row(keyboard.Button("📋 Ver mis datos", ViewStudents))
	kb.Row(keyboard.Button("🔙 Menú principal", BackToMenu))
	return kb.Build()
}

// EditFieldKeyboard lists the editable fields of one student, student
// fields first, then the contact fields that apply to every student.
func EditFieldKeyboard(studentID int64) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	for _, field := range flow.EditableFields(state.CategoryEstudiante) {
		kb.Row(keyboard.Button(
			"👨‍🎓 "+flow.FieldLabel(state.CategoryEstudiante, field),
			EditFieldData(field, state.CategoryEstudiante, studentID),
		))
	}
	for _, field := range flow.EditableFields(state.CategoryAutorizado) {
		kb.Row(keyboard.Button(
			"👤 "+flow.FieldLabel(state.CategoryAutorizado, field),
			EditFieldData(field, state.CategoryAutorizado, studentID),
		))
	}
	kb.Row(keyboard.Button("🗑️ Eliminar este estudiante", DeleteStudentData(studentID)))
	kb.Row(keyboard.Button("🔙 Volver a selección", EditMenu))
	return kb.Build()
}

// AfterEditKeyboard offers the follow-up actions once an edit landed.
func AfterEditKeyboard(studentID int64) *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("📋 Ver mis datos", ViewStudents)).
		Row(keyboard.Button("✏️ Editar otro campo", EditStudentData(studentID))).
		Row(keyboard.Button("✏️ Editar otro estudiante", EditMenu)).
		Row(keyboard.Button("🔙 Menú principal", BackToMenu)).
		Build()
}
