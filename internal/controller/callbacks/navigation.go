package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/controller/callbacks/callbacktypes"
	"github.com/hrhller/registro-bot/internal/controller/callbacks/common"
)

// HandleBackToMenu re-renders the main menu in place.
func HandleBackToMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	registered, err := h.Service.IsRegistered(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to check registration", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}

	if !registered {
		common.EditOrSend(ctx, b, callback,
			"🏠 Menú Principal\n\nNo estás registrado en el sistema.\nPara comenzar, presiona el botón de abajo:",
			RegisterKeyboard(), h.Logger)
		return
	}

	count, err := h.Service.StudentCount(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to count students", zap.Error(err))
		common.EditOrSend(ctx, b, callback, common.ErrorMessage(err), nil, h.Logger)
		return
	}

	common.EditOrSend(ctx, b, callback,
		"🏠 Menú Principal\n\n"+MainMenuText(count),
		MainMenuKeyboard(), h.Logger)
}
