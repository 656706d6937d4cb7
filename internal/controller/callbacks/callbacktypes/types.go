package callbacktypes

import (
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/catalog"
	"github.com/hrhller/registro-bot/internal/controller/state"
	"github.com/hrhller/registro-bot/internal/service"
)

// StateManager is the slice of the conversation state tracker the
// callback handlers use.
type StateManager interface {
	Begin(telegramID int64, flow state.Flow) error
	Flow(telegramID int64) state.Flow
	InProgress(telegramID int64) bool
	Step(telegramID int64) state.Step
	SetStep(telegramID int64, step state.Step)
	SetValue(telegramID int64, step state.Step, value string)
	Snapshot(telegramID int64) map[state.Step]string
	SetEditTarget(telegramID int64, target state.EditTarget)
	Clear(telegramID int64)
}

// Handler carries the shared dependencies of all callback handlers.
type Handler struct {
	Service      *service.RegistrationService
	Catalog      *catalog.Catalog
	StateManager StateManager
	Logger       *zap.Logger
}
