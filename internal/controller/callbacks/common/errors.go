package common

import (
	"errors"

	"github.com/hrhller/registro-bot/internal/repository"
)

// Handler-level errors.
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage maps an error to the user-facing text. Raw errors never
// reach the chat; every path ends in one of these.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, repository.ErrStudentExists):
		return "❌ Ese estudiante ya está registrado con esos datos."
	case errors.Is(err, repository.ErrContactMissing):
		return "❌ No encontramos tus datos de autorizado. Usa /start para registrarte."
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Datos no válidos."
	default:
		return "❌ Ocurrió un error. Intenta nuevamente."
	}
}
