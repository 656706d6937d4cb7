package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hrhller/registro-bot/internal/model"
	"github.com/hrhller/registro-bot/internal/repository/base"
)

// studentColumns is the whitelist of student columns an edit may touch.
var studentColumns = map[string]struct{}{
	"clave_instituto":      {},
	"apellidos_estudiante": {},
	"nombre_estudiante":    {},
}

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a new student under an existing contact.
// Returns ErrContactMissing when the chat has no contact row and
// ErrStudentExists when the (chat, apellidos, nombre) triple collides.
func (r *StudentRepository) Create(ctx context.Context, telegramID int64, clave, apellidos, nombre string) (*model.StudentRecord, error) {
	query := `
		INSERT INTO students (telegram_id, clave_instituto, apellidos_estudiante, nombre_estudiante)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	student := &model.StudentRecord{
		TelegramID:     telegramID,
		ClaveInstituto: clave,
		Apellidos:      apellidos,
		Nombre:         nombre,
	}

	err := r.QueryRow(ctx, query, telegramID, clave, apellidos, nombre).
		Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if isPgCode(err, pgUniqueViolation) {
			return nil, ErrStudentExists
		}
		if isPgCode(err, pgForeignKeyViolation) {
			return nil, ErrContactMissing
		}
		return nil, fmt.Errorf("create student: %w", err)
	}

	return student, nil
}

// Get returns one student of the chat, joined with the contact columns.
// Returns nil when the student does not exist or belongs to another chat.
func (r *StudentRepository) Get(ctx context.Context, telegramID, studentID int64) (*model.StudentRecord, error) {
	query := `
		SELECT s.id, s.telegram_id, s.clave_instituto, s.apellidos_estudiante, s.nombre_estudiante,
		       s.created_at, s.updated_at, u.apellidos_autorizado, u.nombre_autorizado
		FROM students s
		JOIN users u ON u.telegram_id = s.telegram_id
		WHERE s.telegram_id = $1 AND s.id = $2
	`

	var student model.StudentRecord
	err := r.QueryRow(ctx, query, telegramID, studentID).Scan(
		&student.ID,
		&student.TelegramID,
		&student.ClaveInstituto,
		&student.Apellidos,
		&student.Nombre,
		&student.CreatedAt,
		&student.UpdatedAt,
		&student.ContactApellidos,
		&student.ContactNombre,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student: %w", err)
	}

	return &student, nil
}

// ListByContact returns all students of the chat ordered by creation time,
// joined with the contact columns for display.
func (r *StudentRepository) ListByContact(ctx context.Context, telegramID int64) ([]*model.StudentRecord, error) {
	query := `
		SELECT s.id, s.telegram_id, s.clave_instituto, s.apellidos_estudiante, s.nombre_estudiante,
		       s.created_at, s.updated_at, u.apellidos_autorizado, u.nombre_autorizado
		FROM students s
		JOIN users u ON u.telegram_id = s.telegram_id
		WHERE s.telegram_id = $1
		ORDER BY s.created_at ASC
	`

	rows, err := r.Query(ctx, query, telegramID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []*model.StudentRecord
	for rows.Next() {
		var student model.StudentRecord
		err := rows.Scan(
			&student.ID,
			&student.TelegramID,
			&student.ClaveInstituto,
			&student.Apellidos,
			&student.Nombre,
			&student.CreatedAt,
			&student.UpdatedAt,
			&student.ContactApellidos,
			&student.ContactNombre,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return students, nil
}

// CountByContact returns how many students the chat has registered.
func (r *StudentRepository) CountByContact(ctx context.Context, telegramID int64) (int, error) {
	var count int
	err := r.QueryRow(ctx, `SELECT COUNT(*) FROM students WHERE telegram_id = $1`, telegramID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// UpdateField sets one whitelisted student column and bumps updated_at.
// Returns false when the student does not belong to the chat.
func (r *StudentRepository) UpdateField(ctx context.Context, telegramID, studentID int64, column, value string) (bool, error) {
	if _, ok := studentColumns[column]; !ok {
		return false, fmt.Errorf("update student: column %q not editable", column)
	}

	query := fmt.Sprintf(
		`UPDATE students SET %s = $1, updated_at = now() WHERE telegram_id = $2 AND id = $3`,
		column,
	)

	affected, err := r.ExecAffected(ctx, query, value, telegramID, studentID)
	if err != nil {
		return false, fmt.Errorf("update student: %w", err)
	}
	return affected > 0, nil
}

// Delete removes one student of the chat.
func (r *StudentRepository) Delete(ctx context.Context, telegramID, studentID int64) (bool, error) {
	affected, err := r.ExecAffected(ctx,
		`DELETE FROM students WHERE telegram_id = $1 AND id = $2`, telegramID, studentID)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	return affected > 0, nil
}
