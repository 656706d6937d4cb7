package common

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// AnswerCallback acknowledges a callback query. Returns false when the
// query expired or could not be answered; the caller should end the turn
// without touching conversation state.
func AnswerCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, logger *zap.Logger) bool {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
	})
	if err != nil {
		if IsExpiredQuery(err) {
			logger.Warn("Callback query expired",
				zap.Int64("telegram_id", callback.From.ID),
				zap.String("data", callback.Data))
		} else {
			logger.Error("Failed to answer callback query", zap.Error(err))
		}
		return false
	}
	return true
}

// IsExpiredQuery reports whether err is Telegram telling us the callback
// prompt is no longer valid.
func IsExpiredQuery(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "query is too old") ||
		strings.Contains(msg, "query ID is invalid") ||
		strings.Contains(msg, "QUERY_ID_INVALID")
}

// GetMessageFromCallback extracts the accessible message of a callback.
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// EditOrSend edits the message the callback came from, falling back to a
// fresh message when the edit is rejected (message too old or unchanged).
func EditOrSend(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, text string, markup *models.InlineKeyboardMarkup, logger *zap.Logger) {
	message := GetMessageFromCallback(callback)
	if message == nil {
		logger.Warn("Callback without accessible message",
			zap.Int64("telegram_id", callback.From.ID))
		return
	}

	editParams := &bot.EditMessageTextParams{
		ChatID:    message.Chat.ID,
		MessageID: message.ID,
		Text:      text,
	}
	if markup != nil {
		editParams.ReplyMarkup = markup
	}

	if _, err := b.EditMessageText(ctx, editParams); err != nil {
		logger.Debug("Edit failed, sending new message", zap.Error(err))

		sendParams := &bot.SendMessageParams{
			ChatID: message.Chat.ID,
			Text:   text,
		}
		if markup != nil {
			sendParams.ReplyMarkup = markup
		}
		if _, err := b.SendMessage(ctx, sendParams); err != nil {
			logger.Error("Failed to send message", zap.Error(err))
		}
	}
}
