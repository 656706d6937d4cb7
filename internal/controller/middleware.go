package controller

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TraceRequests tags every update with a trace id and logs how long its
// handler took.
func TraceRequests(logger *zap.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			traceID := uuid.NewString()
			start := time.Now()

			log := logger.With(
				zap.String("trace_id", traceID),
				zap.Int64("update_id", update.ID))

			switch {
			case update.Message != nil:
				log.Debug("Update received",
					zap.String("kind", "message"),
					zap.Int64("telegram_id", update.Message.From.ID))
			case update.CallbackQuery != nil:
				log.Debug("Update received",
					zap.String("kind", "callback"),
					zap.Int64("telegram_id", update.CallbackQuery.From.ID),
					zap.String("data", update.CallbackQuery.Data))
			}

			next(ctx, b, update)

			log.Debug("Update handled", zap.Duration("took", time.Since(start)))
		}
	}
}
