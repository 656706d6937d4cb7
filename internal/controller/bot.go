package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/catalog"
	"github.com/hrhller/registro-bot/internal/controller/callbacks"
	"github.com/hrhller/registro-bot/internal/controller/handlers"
	"github.com/hrhller/registro-bot/internal/controller/state"
	"github.com/hrhller/registro-bot/internal/service"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	registrationService *service.RegistrationService,
	cctCatalog *catalog.Catalog,
	stateManager *state.Manager,
	logger *zap.Logger,
) *BotController {
	cmdHandlers := handlers.NewHandlers(registrationService, cctCatalog, stateManager, logger)

	callbackHandler := callbacks.NewHandler(registrationService, cctCatalog, stateManager, logger)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers registers the command, text and callback handlers.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/miid", bot.MatchTypeExact, c.handlers.HandleMiID)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/miestado", bot.MatchTypeExact, c.handlers.HandleMiEstado)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Free text feeds the active conversation flow, if any.
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Inline keyboard presses.
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands publishes the command menu shown by the Telegram client.
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Iniciar el bot"},
		{Command: "miid", Description: "🆔 Ver mi ID de Telegram"},
		{Command: "miestado", Description: "📊 Ver mi estado de registro"},
		{Command: "cancel", Description: "❌ Cancelar la operación en curso"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start runs the long-polling loop until the context is cancelled.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
