package model

import "time"

// AuthorizedContact is the adult authorized to register students.
// Exactly one row exists per Telegram chat.
type AuthorizedContact struct {
	TelegramID int64     `json:"telegram_id"`
	Apellidos  string    `json:"apellidos_autorizado"`
	Nombre     string    `json:"nombre_autorizado"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FullName returns "Nombre Apellidos" for display.
func (c *AuthorizedContact) FullName() string {
	return c.Nombre + " " + c.Apellidos
}
