package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/model"
	"github.com/hrhller/registro-bot/internal/repository"
)

// ContactRepo is the slice of the contact repository the service needs.
type ContactRepo interface {
	Exists(ctx context.Context, telegramID int64) (bool, error)
	Create(ctx context.Context, telegramID int64, apellidos, nombre string) (*model.AuthorizedContact, error)
	Get(ctx context.Context, telegramID int64) (*model.AuthorizedContact, error)
	UpdateField(ctx context.Context, telegramID int64, column, value string) (bool, error)
	Delete(ctx context.Context, telegramID int64) (bool, error)
}

// StudentRepo is the slice of the student repository the service needs.
type StudentRepo interface {
	Create(ctx context.Context, telegramID int64, clave, apellidos, nombre string) (*model.StudentRecord, error)
	Get(ctx context.Context, telegramID, studentID int64) (*model.StudentRecord, error)
	ListByContact(ctx context.Context, telegramID int64) ([]*model.StudentRecord, error)
	CountByContact(ctx context.Context, telegramID int64) (int, error)
	UpdateField(ctx context.Context, telegramID, studentID int64, column, value string) (bool, error)
	Delete(ctx context.Context, telegramID, studentID int64) (bool, error)
}

// RegistrationData carries the values collected by the initial
// registration flow, ready to commit.
type RegistrationData struct {
	ClaveInstituto      string
	ApellidosEstudiante string
	NombreEstudiante    string
	ApellidosAutorizado string
	NombreAutorizado    string
}

type RegistrationService struct {
	contacts ContactRepo
	students StudentRepo
	logger   *zap.Logger
}

func NewRegistrationService(contacts ContactRepo, students StudentRepo, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		contacts: contacts,
		students: students,
		logger:   logger,
	}
}

// IsRegistered reports whether the chat has a completed registration.
func (s *RegistrationService) IsRegistered(ctx context.Context, telegramID int64) (bool, error) {
	return s.contacts.Exists(ctx, telegramID)
}

// CompleteRegistration commits the initial registration flow: contact
// first, then the student. An already existing contact is not an error —
// the flow may have been restarted after a partial commit — so only the
// student insert decides the outcome.
func (s *RegistrationService) CompleteRegistration(ctx context.Context, telegramID int64, data RegistrationData) (*model.StudentRecord, error) {
	_, err := s.contacts.Create(ctx, telegramID, data.ApellidosAutorizado, data.NombreAutorizado)
	if err != nil && !errors.Is(err, repository.ErrContactExists) {
		return nil, fmt.Errorf("complete registration: %w", err)
	}

	student, err := s.students.Create(ctx, telegramID,
		data.ClaveInstituto, data.ApellidosEstudiante, data.NombreEstudiante)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Registration completed",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("student_id", student.ID),
		zap.String("clave_instituto", student.ClaveInstituto))

	return s.withContact(ctx, telegramID, student), nil
}

// AddStudent registers one more student under an existing contact.
func (s *RegistrationService) AddStudent(ctx context.Context, telegramID int64, clave, apellidos, nombre string) (*model.StudentRecord, error) {
	student, err := s.students.Create(ctx, telegramID, clave, apellidos, nombre)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student added",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("student_id", student.ID))

	return s.withContact(ctx, telegramID, student), nil
}

// withContact re-reads a freshly inserted student so the returned record
// carries the joined contact columns the screens display. Falls back to
// the bare record when the read fails.
func (s *RegistrationService) withContact(ctx context.Context, telegramID int64, student *model.StudentRecord) *model.StudentRecord {
	full, err := s.students.Get(ctx, telegramID, student.ID)
	if err != nil || full == nil {
		return student
	}
	return full
}

// Contact returns the chat's contact, or nil when not registered.
func (s *RegistrationService) Contact(ctx context.Context, telegramID int64) (*model.AuthorizedContact, error) {
	return s.contacts.Get(ctx, telegramID)
}

// Students returns the chat's students ordered by creation time.
func (s *RegistrationService) Students(ctx context.Context, telegramID int64) ([]*model.StudentRecord, error) {
	return s.students.ListByContact(ctx, telegramID)
}

// Student returns one student of the chat, or nil when it does not exist
// or belongs to a different chat.
func (s *RegistrationService) Student(ctx context.Context, telegramID, studentID int64) (*model.StudentRecord, error) {
	return s.students.Get(ctx, telegramID, studentID)
}

// StudentCount returns how many students the chat has registered.
func (s *RegistrationService) StudentCount(ctx context.Context, telegramID int64) (int, error) {
	return s.students.CountByContact(ctx, telegramID)
}

// UpdateContactField sets one contact column. The change shows up for
// every student of the chat since contact data is stored once.
func (s *RegistrationService) UpdateContactField(ctx context.Context, telegramID int64, column, value string) (bool, error) {
	updated, err := s.contacts.UpdateField(ctx, telegramID, column, value)
	if err != nil {
		return false, err
	}
	if updated {
		s.logger.Info("Contact field updated",
			zap.Int64("telegram_id", telegramID),
			zap.String("column", column))
	}
	return updated, nil
}

// UpdateStudentField sets one student column. Returns false when the
// student does not belong to the chat.
func (s *RegistrationService) UpdateStudentField(ctx context.Context, telegramID, studentID int64, column, value string) (bool, error) {
	updated, err := s.students.UpdateField(ctx, telegramID, studentID, column, value)
	if err != nil {
		return false, err
	}
	if updated {
		s.logger.Info("Student field updated",
			zap.Int64("telegram_id", telegramID),
			zap.Int64("student_id", studentID),
			zap.String("column", column))
	}
	return updated, nil
}

// DeleteStudent removes one student of the chat.
func (s *RegistrationService) DeleteStudent(ctx context.Context, telegramID, studentID int64) (bool, error) {
	return s.students.Delete(ctx, telegramID, studentID)
}

// DeleteRegistration removes the contact and, through the schema cascade,
// every student registered under it.
func (s *RegistrationService) DeleteRegistration(ctx context.Context, telegramID int64) (bool, error) {
	deleted, err := s.contacts.Delete(ctx, telegramID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("Registration deleted", zap.Int64("telegram_id", telegramID))
	}
	return deleted, nil
}
