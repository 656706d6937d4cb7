package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/controller/callbacks/callbacktypes"
	"github.com/hrhller/registro-bot/internal/controller/callbacks/common"
)

// Route dispatches a callback query to its handler. Every handler first
// answers the query; an expired query ends the turn without touching
// conversation state.
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("telegram_id", callback.From.ID))

	if !common.AnswerCallback(ctx, b, callback, h.Logger) {
		return
	}

	switch {
	// ===== Registration entry points =====
	case data == RegisterStart:
		HandleRegisterStart(ctx, b, callback, h)
	case data == ContinueRegister:
		HandleContinueRegister(ctx, b, callback, h)
	case data == RestartRegister:
		HandleRestartRegister(ctx, b, callback, h)

	// ===== Students =====
	case data == ViewStudents:
		HandleViewStudents(ctx, b, callback, h)
	case data == NewStudentStart:
		HandleNewStudentStart(ctx, b, callback, h)

	// ===== Edit =====
	case data == EditMenu:
		HandleEditMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, EditFieldPrefix):
		HandleEditFieldSelect(ctx, b, callback, h)
	case strings.HasPrefix(data, EditStudentPrefix):
		HandleEditStudentSelect(ctx, b, callback, h)

	// ===== Delete =====
	case data == DeleteConfirm:
		HandleDeleteConfirm(ctx, b, callback, h)
	case data == DeleteConfirmed:
		HandleDeleteConfirmed(ctx, b, callback, h)
	// The ok prefix contains the plain prefix, so it must match first.
	case strings.HasPrefix(data, DeleteStudentOkPrefix):
		HandleDeleteStudentOk(ctx, b, callback, h)
	case strings.HasPrefix(data, DeleteStudentPrefix):
		HandleDeleteStudent(ctx, b, callback, h)

	// ===== Navigation =====
	case data == BackToMenu:
		HandleBackToMenu(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback data", zap.String("data", data))
	}
}
