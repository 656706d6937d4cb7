package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/controller/callbacks/callbacktypes"
	"github.com/hrhller/registro-bot/internal/controller/callbacks/common"
	"github.com/hrhller/registro-bot/internal/controller/callbacks/common/keyboard"
)

// HandleDeleteConfirm asks for confirmation before wiping the chat's
// registration.
func HandleDeleteConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	markup := keyboard.NewBuilder().
		Row(keyboard.ConfirmRow(
			"✅ Sí, eliminar", DeleteConfirmed,
			"❌ No, cancelar", BackToMenu,
		)...).
		Build()

	common.EditOrSend(ctx, b, callback,
		"⚠️ ¿Estás seguro?\n\n"+
			"Esta acción eliminará todos tus datos del sistema.\n"+
			"Esta acción no se puede deshacer.",
		markup, h.Logger)
}

// HandleDeleteStudent asks for confirmation before removing one student.
func HandleDeleteStudent(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	studentID, err := ParseDeleteStudentID(callback.Data)
	if err != nil {
		h.Logger.Warn("Malformed delete_student payload",
			zap.String("data", callback.Data), zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(common.ErrInvalidFormat), nil, h.Logger)
		return
	}

	student, err := h.Service.Student(ctx, telegramID, studentID)
	if err != nil {
		h.Logger.Error("Failed to load student", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}
	if student == nil {
		common.EditOrSend(ctx, b, callback,
			"❌ No se encontró el estudiante seleccionado.", nil, h.Logger)
		return
	}

	markup := keyboard.NewBuilder().
		Row(keyboard.ConfirmRow(
			"✅ Sí, eliminar", DeleteStudentOkData(studentID),
			"❌ No, cancelar", BackToMenu,
		)...).
		Build()

	common.EditOrSend(ctx, b, callback,
		"⚠️ ¿Eliminar este estudiante?\n\n"+
			StudentSummary(student)+
			"\n\nEsta acción no se puede deshacer.",
		markup, h.Logger)
}

// HandleDeleteStudentOk removes one student after confirmation. The
// contact and any other students stay untouched.
func HandleDeleteStudentOk(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	studentID, err := ParseDeleteStudentOkID(callback.Data)
	if err != nil {
		h.Logger.Warn("Malformed delete_student_ok payload",
			zap.String("data", callback.Data), zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(common.ErrInvalidFormat), nil, h.Logger)
		return
	}

	deleted, err := h.Service.DeleteStudent(ctx, telegramID, studentID)
	if err != nil {
		h.Logger.Error("Failed to delete student", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}
	if !deleted {
		common.EditOrSend(ctx, b, callback,
			"❌ No se encontró el estudiante seleccionado.", nil, h.Logger)
		return
	}

	count, err := h.Service.StudentCount(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to count students", zap.Error(err))
		common.EditOrSend(ctx, b, callback, "✅ Estudiante eliminado.", nil, h.Logger)
		return
	}

	common.EditOrSend(ctx, b, callback,
		"✅ Estudiante eliminado\n\n"+MainMenuText(count),
		MainMenuKeyboard(), h.Logger)
}

// HandleDeleteConfirmed removes the contact; students go with it through
// the schema cascade.
func HandleDeleteConfirmed(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	deleted, err := h.Service.DeleteRegistration(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to delete registration", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}

	if !deleted {
		common.EditOrSend(ctx, b, callback,
			"❌ No se encontraron registros para eliminar.", nil, h.Logger)
		return
	}

	// Any in-flight conversation refers to rows that no longer exist.
	h.StateManager.Clear(telegramID)

	common.EditOrSend(ctx, b, callback,
		"✅ Registro eliminado\n\nTus datos han sido eliminados del sistema.",
		RegisterKeyboard(), h.Logger)
}
