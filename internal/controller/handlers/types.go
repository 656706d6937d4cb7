package handlers

import (
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/catalog"
	"github.com/hrhller/registro-bot/internal/controller/state"
	"github.com/hrhller/registro-bot/internal/service"
)

// Handlers holds the dependencies of the command and text handlers.
type Handlers struct {
	service      *service.RegistrationService
	catalog      *catalog.Catalog
	stateManager *state.Manager
	logger       *zap.Logger
}

func NewHandlers(
	service *service.RegistrationService,
	catalog *catalog.Catalog,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		service:      service,
		catalog:      catalog,
		stateManager: stateManager,
		logger:       logger,
	}
}
