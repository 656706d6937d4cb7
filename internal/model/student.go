package model

import "time"

// StudentRecord is one student registered under an authorized contact.
// The triple (telegram_id, apellidos, nombre) is unique per contact.
type StudentRecord struct {
	ID             int64     `json:"id"`
	TelegramID     int64     `json:"telegram_id"`
	ClaveInstituto string    `json:"clave_instituto"`
	Apellidos      string    `json:"apellidos_estudiante"`
	Nombre         string    `json:"nombre_estudiante"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Contact columns joined in for display. Contact data lives only in the
	// users table, so edits to the contact show up here on the next read.
	ContactApellidos string `json:"apellidos_autorizado,omitempty"`
	ContactNombre    string `json:"nombre_autorizado,omitempty"`
}

// FullName returns "Nombre Apellidos" for display.
func (s *StudentRecord) FullName() string {
	return s.Nombre + " " + s.Apellidos
}
