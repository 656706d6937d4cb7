package callbacks

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/controller/callbacks/callbacktypes"
	"github.com/hrhller/registro-bot/internal/controller/callbacks/common"
	"github.com/hrhller/registro-bot/internal/controller/flow"
	"github.com/hrhller/registro-bot/internal/controller/state"
)

// HandleRegisterStart begins a fresh initial registration.
func HandleRegisterStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	if err := h.StateManager.Begin(telegramID, state.FlowRegistration); err != nil {
		if errors.Is(err, state.ErrFlowActive) {
			// Never replace an active flow silently; let the user decide.
			text, markup := ResumeScreen(h.StateManager.Snapshot(telegramID))
			common.EditOrSend(ctx, b, callback, text, markup, h.Logger)
			return
		}
		h.Logger.Error("Failed to begin registration", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}

	first := flow.First(state.FlowRegistration)
	h.StateManager.SetStep(telegramID, first)

	h.Logger.Info("Registration started", zap.Int64("telegram_id", telegramID))

	common.EditOrSend(ctx, b, callback,
		"📝 Proceso de Registro\n\n"+
			flow.Prompt(state.FlowRegistration, first)+
			"\n\n🔍 Usa /miestado para ver tu progreso\nEscribe /cancel para cancelar.",
		nil, h.Logger)
}

// HandleContinueRegister resumes an interrupted registration at the
// first step that has no captured value.
func HandleContinueRegister(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	snapshot := h.StateManager.Snapshot(telegramID)
	if h.StateManager.Flow(telegramID) != state.FlowRegistration {
		// Nothing to continue; behave like a fresh start.
		h.StateManager.Clear(telegramID)
		HandleRegisterStart(ctx, b, callback, h)
		return
	}

	next := flow.ResumeStep(snapshot)
	h.StateManager.SetStep(telegramID, next)

	h.Logger.Info("Registration resumed",
		zap.Int64("telegram_id", telegramID),
		zap.String("step", string(next)))

	common.EditOrSend(ctx, b, callback,
		"📝 Continuando Registro\n\n"+flow.Prompt(state.FlowRegistration, next),
		nil, h.Logger)
}

// HandleRestartRegister discards any partial progress and re-enters the
// registration flow at its first step.
func HandleRestartRegister(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	h.StateManager.Clear(telegramID)
	if err := h.StateManager.Begin(telegramID, state.FlowRegistration); err != nil {
		h.Logger.Error("Failed to restart registration", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}

	first := flow.First(state.FlowRegistration)
	h.StateManager.SetStep(telegramID, first)

	h.Logger.Info("Registration restarted", zap.Int64("telegram_id", telegramID))

	common.EditOrSend(ctx, b, callback,
		"🔄 Reiniciando Registro\n\n"+flow.Prompt(state.FlowRegistration, first),
		nil, h.Logger)
}
