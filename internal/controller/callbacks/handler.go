package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/catalog"
	"github.com/hrhller/registro-bot/internal/controller/callbacks/callbacktypes"
	"github.com/hrhller/registro-bot/internal/service"
)

// Handler is the update-level entry point for callback queries.
type Handler struct {
	deps *callbacktypes.Handler
}

func NewHandler(
	service *service.RegistrationService,
	catalog *catalog.Catalog,
	stateManager callbacktypes.StateManager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		deps: &callbacktypes.Handler{
			Service:      service,
			Catalog:      catalog,
			StateManager: stateManager,
			Logger:       logger,
		},
	}
}

// HandleCallbackQuery unwraps the update and hands the query to the router.
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	Route(ctx, b, update.CallbackQuery, h.deps)
}
