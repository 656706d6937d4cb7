package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/catalog"
	"github.com/hrhller/registro-bot/internal/controller/callbacks"
	"github.com/hrhller/registro-bot/internal/controller/callbacks/common"
	"github.com/hrhller/registro-bot/internal/controller/flow"
	"github.com/hrhller/registro-bot/internal/controller/state"
	"github.com/hrhller/registro-bot/internal/service"
)

// checkAnswer validates one free-text answer. It returns the trimmed
// value and, when the answer is rejected, the re-prompt text.
func checkAnswer(text string) (value, reject string) {
	value = strings.TrimSpace(text)
	if value == "" {
		return "", "⚠️ El valor no puede estar vacío.\n\nIntenta de nuevo o usa /cancel para cancelar."
	}
	if len(value) > MaxFieldLength {
		return "", fmt.Sprintf("⚠️ El valor es demasiado largo (máximo %d caracteres).\n\nIntenta de nuevo o usa /cancel para cancelar.", MaxFieldLength)
	}
	return value, ""
}

// checkClave validates an institute code against the catalog and returns
// it normalized.
func (h *Handlers) checkClave(text string) (value, reject string) {
	value, reject = checkAnswer(text)
	if reject != "" {
		return "", reject
	}

	value = catalog.Normalize(value)
	if !h.catalog.Valid(value) {
		return "", "⚠️ Esa clave de instituto no está en el catálogo.\n\n" +
			"Verifícala con la dirección del instituto e intenta de nuevo, " +
			"o usa /cancel para cancelar."
	}
	return value, ""
}

// handleRegistrationStep captures one answer of the initial registration
// flow and either asks for the next field or commits.
func (h *Handlers) handleRegistrationStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	step := h.stateManager.Step(telegramID)

	var value, reject string
	if step == state.StepClaveInstituto {
		value, reject = h.checkClave(update.Message.Text)
	} else {
		value, reject = checkAnswer(update.Message.Text)
	}
	if reject != "" {
		h.sendText(ctx, b, chatID, reject, nil)
		return
	}

	h.stateManager.SetValue(telegramID, step, value)

	if next, ok := flow.Next(state.FlowRegistration, step); ok {
		h.stateManager.SetStep(telegramID, next)
		h.sendText(ctx, b, chatID, flow.Prompt(state.FlowRegistration, next), nil)
		return
	}

	h.commitRegistration(ctx, b, chatID, telegramID)
}

// commitRegistration writes the collected registration to storage. State
// is cleared on every outcome so a failed commit never wedges the chat.
func (h *Handlers) commitRegistration(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	snapshot := h.stateManager.Snapshot(telegramID)
	h.stateManager.Clear(telegramID)

	data := service.RegistrationData{
		ClaveInstituto:      snapshot[state.StepClaveInstituto],
		ApellidosEstudiante: snapshot[state.StepApellidosEstudiante],
		NombreEstudiante:    snapshot[state.StepNombreEstudiante],
		ApellidosAutorizado: snapshot[state.StepApellidosAutorizado],
		NombreAutorizado:    snapshot[state.StepNombreAutorizado],
	}

	student, err := h.service.CompleteRegistration(ctx, telegramID, data)
	if err != nil {
		h.logger.Error("Failed to complete registration",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendText(ctx, b, chatID, common.ErrorMessage(err), callbacks.RegisterKeyboard())
		return
	}

	h.sendText(ctx, b, chatID,
		"🎉 ¡Registro completado!\n\n"+
			callbacks.StudentSummary(student)+
			"\n\n¿Qué deseas hacer ahora?",
		callbacks.MainMenuKeyboard())
}

// handleNewStudentStep captures one answer of the additional-student flow.
func (h *Handlers) handleNewStudentStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	step := h.stateManager.Step(telegramID)

	var value, reject string
	if step == state.StepNuevaClave {
		value, reject = h.checkClave(update.Message.Text)
	} else {
		value, reject = checkAnswer(update.Message.Text)
	}
	if reject != "" {
		h.sendText(ctx, b, chatID, reject, nil)
		return
	}

	h.stateManager.SetValue(telegramID, step, value)

	if next, ok := flow.Next(state.FlowNewStudent, step); ok {
		h.stateManager.SetStep(telegramID, next)
		h.sendText(ctx, b, chatID, flow.Prompt(state.FlowNewStudent, next), nil)
		return
	}

	snapshot := h.stateManager.Snapshot(telegramID)
	h.stateManager.Clear(telegramID)

	student, err := h.service.AddStudent(ctx, telegramID,
		snapshot[state.StepNuevaClave],
		snapshot[state.StepNuevosApellidos],
		snapshot[state.StepNuevoNombre])
	if err != nil {
		h.logger.Error("Failed to add student",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendText(ctx, b, chatID, common.ErrorMessage(err), callbacks.MainMenuKeyboard())
		return
	}

	h.sendText(ctx, b, chatID,
		"✅ ¡Estudiante agregado!\n\n"+
			callbacks.StudentSummary(student)+
			"\n\n¿Qué deseas hacer ahora?",
		callbacks.MainMenuKeyboard())
}

// handleEditValueStep applies the single text answer of the edit flow to
// the stored edit target.
func (h *Handlers) handleEditValueStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	target, ok := h.stateManager.EditTarget(telegramID)
	if !ok {
		h.logger.Warn("Edit flow without target", zap.Int64("telegram_id", telegramID))
		h.stateManager.Clear(telegramID)
		h.sendText(ctx, b, chatID, "❌ La edición expiró. Vuelve a intentarlo desde el menú.", callbacks.MainMenuKeyboard())
		return
	}

	var value, reject string
	if target.Category == state.CategoryEstudiante && target.Field == "clave" {
		value, reject = h.checkClave(update.Message.Text)
	} else {
		value, reject = checkAnswer(update.Message.Text)
	}
	if reject != "" {
		h.sendText(ctx, b, chatID, reject, nil)
		return
	}

	h.stateManager.Clear(telegramID)

	column, ok := flow.EditColumn(target.Category, target.Field)
	if !ok {
		h.logger.Warn("Unmapped edit target",
			zap.String("category", string(target.Category)),
			zap.String("field", target.Field))
		h.sendText(ctx, b, chatID, "❌ Ese campo no se puede editar.", callbacks.MainMenuKeyboard())
		return
	}

	var updated bool
	var err error
	if target.Category == state.CategoryAutorizado {
		updated, err = h.service.UpdateContactField(ctx, telegramID, column, value)
	} else {
		updated, err = h.service.UpdateStudentField(ctx, telegramID, target.StudentID, column, value)
	}
	if err != nil {
		h.logger.Error("Failed to apply edit",
			zap.Int64("telegram_id", telegramID),
			zap.String("column", column),
			zap.Error(err))
		h.sendText(ctx, b, chatID, common.ErrorMessage(err), callbacks.MainMenuKeyboard())
		return
	}
	if !updated {
		h.sendText(ctx, b, chatID,
			"❌ No encontramos el registro a editar. Puede que haya sido eliminado.",
			callbacks.MainMenuKeyboard())
		return
	}

	text := fmt.Sprintf("✅ Campo actualizado: %s\n\n",
		flow.FieldLabel(target.Category, target.Field))

	if student, err := h.service.Student(ctx, telegramID, target.StudentID); err == nil && student != nil {
		text += callbacks.StudentSummary(student) + "\n\n"
	}
	text += "¿Qué deseas hacer ahora?"

	h.sendText(ctx, b, chatID, text, callbacks.AfterEditKeyboard(target.StudentID))
}
