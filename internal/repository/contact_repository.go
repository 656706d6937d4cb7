package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hrhller/registro-bot/internal/model"
	"github.com/hrhller/registro-bot/internal/repository/base"
)

// contactColumns is the whitelist of user columns an edit may touch.
// UpdateField refuses anything else, so the column name can be
// interpolated into the query safely.
var contactColumns = map[string]struct{}{
	"apellidos_autorizado": {},
	"nombre_autorizado":    {},
}

type ContactRepository struct {
	*base.Repository
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{Repository: base.NewRepository(pool)}
}

// Exists reports whether a contact row exists for the chat.
func (r *ContactRepository) Exists(ctx context.Context, telegramID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE telegram_id = $1)`

	var exists bool
	if err := r.QueryRow(ctx, query, telegramID).Scan(&exists); err != nil {
		return false, fmt.Errorf("contact exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new contact. Timestamps are set by the store.
// Returns ErrContactExists when the chat already has a contact row.
func (r *ContactRepository) Create(ctx context.Context, telegramID int64, apellidos, nombre string) (*model.AuthorizedContact, error) {
	query := `
		INSERT INTO users (telegram_id, apellidos_autorizado, nombre_autorizado)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	contact := &model.AuthorizedContact{
		TelegramID: telegramID,
		Apellidos:  apellidos,
		Nombre:     nombre,
	}

	err := r.QueryRow(ctx, query, telegramID, apellidos, nombre).
		Scan(&contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		if isPgCode(err, pgUniqueViolation) {
			return nil, ErrContactExists
		}
		return nil, fmt.Errorf("create contact: %w", err)
	}

	return contact, nil
}

// Get returns the contact for the chat, or nil when none exists.
func (r *ContactRepository) Get(ctx context.Context, telegramID int64) (*model.AuthorizedContact, error) {
	query := `
		SELECT telegram_id, apellidos_autorizado, nombre_autorizado, created_at, updated_at
		FROM users
		WHERE telegram_id = $1
	`

	var contact model.AuthorizedContact
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&contact.TelegramID,
		&contact.Apellidos,
		&contact.Nombre,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}

	return &contact, nil
}

// UpdateField sets one whitelisted contact column and bumps updated_at.
// Returns false when no row changed.
func (r *ContactRepository) UpdateField(ctx context.Context, telegramID int64, column, value string) (bool, error) {
	if _, ok := contactColumns[column]; !ok {
		return false, fmt.Errorf("update contact: column %q not editable", column)
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s = $1, updated_at = now() WHERE telegram_id = $2`,
		column,
	)

	affected, err := r.ExecAffected(ctx, query, value, telegramID)
	if err != nil {
		return false, fmt.Errorf("update contact: %w", err)
	}
	return affected > 0, nil
}

// Delete removes the contact row; students cascade at the schema level.
func (r *ContactRepository) Delete(ctx context.Context, telegramID int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM users WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	return affected > 0, nil
}
