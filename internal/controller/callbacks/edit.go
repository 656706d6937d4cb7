package callbacks

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/controller/callbacks/callbacktypes"
	"github.com/hrhller/registro-bot/internal/controller/callbacks/common"
	"github.com/hrhller/registro-bot/internal/controller/flow"
	"github.com/hrhller/registro-bot/internal/controller/state"
)

// HandleEditMenu lists the chat's students so one can be picked for
// editing.
func HandleEditMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	students, err := h.Service.Students(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to list students for edit", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}

	if len(students) == 0 {
		common.EditOrSend(ctx, b, callback,
			"❌ No se encontraron estudiantes para editar.\n\nUsa /start para registrarte.",
			nil, h.Logger)
		return
	}

	common.EditOrSend(ctx, b, callback,
		"✏️ Menú de Edición\n\nSelecciona el estudiante que deseas editar:",
		EditStudentListKeyboard(students), h.Logger)
}

// HandleEditStudentSelect shows the field menu for the chosen student.
func HandleEditStudentSelect(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	studentID, err := ParseStudentID(callback.Data)
	if err != nil {
		h.Logger.Warn("Malformed edit_student payload",
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

	text := "✏️ Editar Estudiante\n\n" +
		StudentSummary(student) +
		"\n\nSelecciona el campo que deseas modificar:"

	common.EditOrSend(ctx, b, callback, text, EditFieldKeyboard(studentID), h.Logger)
}

// HandleEditFieldSelect parses the edit target and enters the edit flow,
// waiting for one text value.
func HandleEditFieldSelect(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	target, err := ParseEditTarget(callback.Data)
	if err != nil {
		h.Logger.Warn("Malformed edit_field payload",
			zap.String("data", callback.Data), zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(common.ErrInvalidFormat), nil, h.Logger)
		return
	}

	if err := h.StateManager.Begin(telegramID, state.FlowEdit); err != nil {
		if errors.Is(err, state.ErrFlowActive) {
			text, markup := ResumeScreen(h.StateManager.Snapshot(telegramID))
			common.EditOrSend(ctx, b, callback, text, markup, h.Logger)
			return
		}
		h.Logger.Error("Failed to begin edit flow", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}

	h.StateManager.SetStep(telegramID, state.StepEditValue)
	h.StateManager.SetEditTarget(telegramID, target)

	h.Logger.Info("Edit flow started",
		zap.Int64("telegram_id", telegramID),
		zap.String("field", target.Field),
		zap.String("category", string(target.Category)),
		zap.Int64("student_id", target.StudentID))

	label := flow.FieldLabel(target.Category, target.Field)
	common.EditOrSend(ctx, b, callback,
		fmt.Sprintf("✏️ Editar %s\n\nIngresa el nuevo valor:\n\nEscribe /cancel para cancelar.", label),
		nil, h.Logger)
}
