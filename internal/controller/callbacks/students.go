package callbacks

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/controller/callbacks/callbacktypes"
	"github.com/hrhller/registro-bot/internal/controller/callbacks/common"
	"github.com/hrhller/registro-bot/internal/controller/callbacks/common/keyboard"
	"github.com/hrhller/registro-bot/internal/controller/flow"
	"github.com/hrhller/registro-bot/internal/controller/state"
)

// HandleViewStudents shows every student registered by the chat.
func HandleViewStudents(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	students, err := h.Service.Students(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to list students", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}

	if len(students) == 0 {
		common.EditOrSend(ctx, b, callback,
			"❌ No se encontraron estudiantes registrados.\n\nUsa /start para registrarte.",
			nil, h.Logger)
		return
	}

	markup := keyboard.NewBuilder().
		Row(keyboard.Button("✏️ Editar datos", EditMenu)).
		Row(keyboard.Button("🔙 Menú principal", BackToMenu)).
		Build()

	common.EditOrSend(ctx, b, callback, StudentListText(telegramID, students), markup, h.Logger)
}

// HandleNewStudentStart begins the additional-student flow. Entry is
// gated on a completed registration: the flow itself assumes the contact
// row exists.
func HandleNewStudentStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	registered, err := h.Service.IsRegistered(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to check registration", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}
	if !registered {
		common.EditOrSend(ctx, b, callback,
			"❌ Primero completa tu registro.\n\nUsa /start para comenzar.",
			RegisterKeyboard(), h.Logger)
		return
	}

	if err := h.StateManager.Begin(telegramID, state.FlowNewStudent); err != nil {
		if errors.Is(err, state.ErrFlowActive) {
			text, markup := ResumeScreen(h.StateManager.Snapshot(telegramID))
			common.EditOrSend(ctx, b, callback, text, markup, h.Logger)
			return
		}
		h.Logger.Error("Failed to begin new-student flow", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}

	first := flow.First(state.FlowNewStudent)
	h.StateManager.SetStep(telegramID, first)

	h.Logger.Info("New-student flow started", zap.Int64("telegram_id", telegramID))

	common.EditOrSend(ctx, b, callback,
		"➕ Agregar Nuevo Estudiante\n\n"+
			flow.Prompt(state.FlowNewStudent, first)+
			"\n\n🔍 Usa /miestado para ver tu progreso\nEscribe /cancel para cancelar.",
		nil, h.Logger)
}
