package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/controller/callbacks"
	"github.com/hrhller/registro-bot/internal/controller/flow"
	"github.com/hrhller/registro-bot/internal/controller/state"
)

// HandleStart handles the /start command. Registered chats get the main
// menu, chats with an interrupted registration get the resume screen and
// everyone else gets the welcome.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	registered, err := h.service.IsRegistered(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to check registration", zap.Error(err))
		h.sendText(ctx, b, chatID, "❌ Ocurrió un error. Intenta nuevamente.", nil)
		return
	}

	if registered {
		count, err := h.service.StudentCount(ctx, telegramID)
		if err != nil {
			h.logger.Error("Failed to count students", zap.Error(err))
			h.sendText(ctx, b, chatID, "❌ Ocurrió un error. Intenta nuevamente.", nil)
			return
		}

		h.sendText(ctx, b, chatID,
			"👋 ¡Hola de nuevo!\n\n"+callbacks.MainMenuText(count),
			callbacks.MainMenuKeyboard())
		return
	}

	if h.stateManager.Flow(telegramID) == state.FlowRegistration {
		text, keyboard := callbacks.ResumeScreen(h.stateManager.Snapshot(telegramID))
		h.sendText(ctx, b, chatID, text, keyboard)
		return
	}

	h.sendText(ctx, b, chatID,
		"👋 ¡Bienvenido al sistema de registro de estudiantes!\n\n"+
			"Aquí puedes registrar a los estudiantes a tu cargo y mantener "+
			"actualizados sus datos.\n\n"+
			"Para comenzar, presiona el botón de abajo:",
		callbacks.RegisterKeyboard())
}

// HandleMiID handles the /miid command.
func (h *Handlers) HandleMiID(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendText(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("🆔 Tu ID de Telegram es: %d\n\n"+
			"Guárdalo por si necesitas soporte.", update.Message.From.ID),
		nil)
}

// HandleMiEstado handles the /miestado command: registered chats see
// their records, chats mid-registration see the checklist, the rest are
// pointed at registration.
func (h *Handlers) HandleMiEstado(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	registered, err := h.service.IsRegistered(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to check registration", zap.Error(err))
		h.sendText(ctx, b, chatID, "❌ Ocurrió un error. Intenta nuevamente.", nil)
		return
	}

	if registered {
		students, err := h.service.Students(ctx, telegramID)
		if err != nil {
			h.logger.Error("Failed to list students", zap.Error(err))
			h.sendText(ctx, b, chatID, "❌ Ocurrió un error. Intenta nuevamente.", nil)
			return
		}

		h.sendText(ctx, b, chatID,
			"✅ Estado: registrado\n\n"+callbacks.StudentListText(telegramID, students),
			callbacks.MainMenuKeyboard())
		return
	}

	if h.stateManager.Flow(telegramID) == state.FlowRegistration {
		snapshot := h.stateManager.Snapshot(telegramID)
		step := h.stateManager.Step(telegramID)

		text := "📝 Estado: registro en progreso\n\n" +
			callbacks.ProgressChecklist(snapshot) +
			"\n" + flow.Prompt(state.FlowRegistration, step)
		h.sendText(ctx, b, chatID, text, nil)
		return
	}

	h.sendText(ctx, b, chatID,
		"❌ Estado: sin registro\n\n"+
			"Aún no has registrado ningún estudiante.\n"+
			"Para comenzar, presiona el botón de abajo:",
		callbacks.RegisterKeyboard())
}

// HandleCancel handles the /cancel command. Idempotent: cancelling with
// nothing in progress just says so.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	if !h.stateManager.InProgress(telegramID) {
		h.sendText(ctx, b, chatID, "ℹ️ No hay ninguna operación en curso.", nil)
		return
	}

	h.stateManager.Clear(telegramID)
	h.logger.Info("Flow cancelled", zap.Int64("telegram_id", telegramID))

	h.sendText(ctx, b, chatID,
		"✅ Operación cancelada.\n\nUsa /start para volver al menú.", nil)
}

// HandleTextMessage routes free text to the step handler of the active
// flow. Text outside any flow is ignored.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Commands are handled by their own handlers.
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID

	switch h.stateManager.Flow(telegramID) {
	case state.FlowRegistration:
		h.handleRegistrationStep(ctx, b, update)
	case state.FlowNewStudent:
		h.handleNewStudentStep(ctx, b, update)
	case state.FlowEdit:
		h.handleEditValueStep(ctx, b, update)
	default:
		h.logger.Debug("Text outside any flow, ignoring",
			zap.Int64("telegram_id", telegramID))
	}
}
