package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/model"
	"github.com/hrhller/registro-bot/internal/repository"
)

// memStore backs both repository fakes with the same relational rules the
// schema enforces: contact uniqueness, the per-contact student triple and
// the delete cascade.
type memStore struct {
	contacts map[int64]*model.AuthorizedContact
	students map[int64]*model.StudentRecord
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		contacts: make(map[int64]*model.AuthorizedContact),
		students: make(map[int64]*model.StudentRecord),
		nextID:   1,
	}
}

type memContactRepo struct{ store *memStore }

func (r *memContactRepo) Exists(_ context.Context, telegramID int64) (bool, error) {
	_, ok := r.store.contacts[telegramID]
	return ok, nil
}

func (r *memContactRepo) Create(_ context.Context, telegramID int64, apellidos, nombre string) (*model.AuthorizedContact, error) {
	if _, ok := r.store.contacts[telegramID]; ok {
		return nil, repository.ErrContactExists
	}
	contact := &model.AuthorizedContact{
		TelegramID: telegramID,
		Apellidos:  apellidos,
		Nombre:     nombre,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	r.store.contacts[telegramID] = contact
	return contact, nil
}

func (r *memContactRepo) Get(_ context.Context, telegramID int64) (*model.AuthorizedContact, error) {
	return r.store.contacts[telegramID], nil
}

func (r *memContactRepo) UpdateField(_ context.Context, telegramID int64, column, value string) (bool, error) {
	contact, ok := r.store.contacts[telegramID]
	if !ok {
		return false, nil
	}
	switch column {
	case "apellidos_autorizado":
		contact.Apellidos = value
	case "nombre_autorizado":
		contact.Nombre = value
	default:
		return false, nil
	}
	return true, nil
}

func (r *memContactRepo) Delete(_ context.Context, telegramID int64) (bool, error) {
	if _, ok := r.store.contacts[telegramID]; !ok {
		return false, nil
	}
	delete(r.store.contacts, telegramID)
	for id, student := range r.store.students {
		if student.TelegramID == telegramID {
			delete(r.store.students, id)
		}
	}
	return true, nil
}

type memStudentRepo struct{ store *memStore }

func (r *memStudentRepo) Create(_ context.Context, telegramID int64, clave, apellidos, nombre string) (*model.StudentRecord, error) {
	if _, ok := r.store.contacts[telegramID]; !ok {
		return nil, repository.ErrContactMissing
	}
	for _, existing := range r.store.students {
		if existing.TelegramID == telegramID &&
			existing.Apellidos == apellidos &&
			existing.Nombre == nombre {
			return nil, repository.ErrStudentExists
		}
	}

	student := &model.StudentRecord{
		ID:             r.store.nextID,
		TelegramID:     telegramID,
		ClaveInstituto: clave,
		Apellidos:      apellidos,
		Nombre:         nombre,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	r.store.nextID++
	r.store.students[student.ID] = student
	return r.withContact(student), nil
}

// withContact mirrors the join the real repository does.
func (r *memStudentRepo) withContact(student *model.StudentRecord) *model.StudentRecord {
	out := *student
	if contact, ok := r.store.contacts[student.TelegramID]; ok {
		out.ContactApellidos = contact.Apellidos
		out.ContactNombre = contact.Nombre
	}
	return &out
}

func (r *memStudentRepo) Get(_ context.Context, telegramID, studentID int64) (*model.StudentRecord, error) {
	student, ok := r.store.students[studentID]
	if !ok || student.TelegramID != telegramID {
		return nil, nil
	}
	return r.withContact(student), nil
}

func (r *memStudentRepo) ListByContact(_ context.Context, telegramID int64) ([]*model.StudentRecord, error) {
	var out []*model.StudentRecord
	for _, student := range r.store.students {
		if student.TelegramID == telegramID {
			out = append(out, r.withContact(student))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memStudentRepo) CountByContact(ctx context.Context, telegramID int64) (int, error) {
	students, _ := r.ListByContact(ctx, telegramID)
	return len(students), nil
}

func (r *memStudentRepo) UpdateField(_ context.Context, telegramID, studentID int64, column, value string) (bool, error) {
	student, ok := r.store.students[studentID]
	if !ok || student.TelegramID != telegramID {
		return false, nil
	}
	switch column {
	case "clave_instituto":
		student.ClaveInstituto = value
	case "apellidos_estudiante":
		student.Apellidos = value
	case "nombre_estudiante":
		student.Nombre = value
	default:
		return false, nil
	}
	return true, nil
}

func (r *memStudentRepo) Delete(_ context.Context, telegramID, studentID int64) (bool, error) {
	student, ok := r.store.students[studentID]
	if !ok || student.TelegramID != telegramID {
		return false, nil
	}
	delete(r.store.students, studentID)
	return true, nil
}

func newTestService() (*RegistrationService, *memStore) {
	store := newMemStore()
	svc := NewRegistrationService(
		&memContactRepo{store: store},
		&memStudentRepo{store: store},
		zap.NewNop(),
	)
	return svc, store
}

func testData() RegistrationData {
	return RegistrationData{
		ClaveInstituto:      "INST-1",
		ApellidosEstudiante: "Pérez",
		NombreEstudiante:    "Ana",
		ApellidosAutorizado: "Gómez",
		NombreAutorizado:    "Luis",
	}
}

func TestCompleteRegistration(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.IsRegistered(ctx, 42)
	require.NoError(t, err)
	require.False(t, registered)

	student, err := svc.CompleteRegistration(ctx, 42, testData())
	require.NoError(t, err)
	require.Equal(t, "Pérez", student.Apellidos)
	require.Equal(t, "Ana", student.Nombre)
	require.Equal(t, "INST-1", student.ClaveInstituto)
	require.Equal(t, "Gómez", student.ContactApellidos)
	require.Equal(t, "Luis", student.ContactNombre)

	registered, err = svc.IsRegistered(ctx, 42)
	require.NoError(t, err)
	require.True(t, registered)

	count, err := svc.StudentCount(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestCompleteRegistrationToleratesExistingContact(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CompleteRegistration(ctx, 42, testData())
	require.NoError(t, err)

	// A restarted registration re-creates the contact, only the student
	// insert decides the outcome.
	second := testData()
	second.ApellidosEstudiante = "López"
	second.NombreEstudiante = "Marta"

	_, err = svc.CompleteRegistration(ctx, 42, second)
	require.NoError(t, err)

	count, err := svc.StudentCount(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestDuplicateStudentRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CompleteRegistration(ctx, 42, testData())
	require.NoError(t, err)

	// Same full name under the same contact, even at another institute.
	_, err = svc.AddStudent(ctx, 42, "INST-2", "Pérez", "Ana")
	require.ErrorIs(t, err, repository.ErrStudentExists)

	// A different name goes through.
	added, err := svc.AddStudent(ctx, 42, "INST-1", "Pérez", "Marta")
	require.NoError(t, err)
	require.Equal(t, "Marta", added.Nombre)

	// The same name under a different contact is fine too.
	other := testData()
	_, err = svc.CompleteRegistration(ctx, 99, other)
	require.NoError(t, err)
}

func TestAddStudentRequiresContact(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddStudent(context.Background(), 42, "INST-1", "Pérez", "Ana")
	require.ErrorIs(t, err, repository.ErrContactMissing)
}

func TestUpdateContactFieldReflectsOnAllStudents(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CompleteRegistration(ctx, 42, testData())
	require.NoError(t, err)
	_, err = svc.AddStudent(ctx, 42, "INST-1", "Pérez", "Marta")
	require.NoError(t, err)

	updated, err := svc.UpdateContactField(ctx, 42, "apellidos_autorizado", "García")
	require.NoError(t, err)
	require.True(t, updated)

	students, err := svc.Students(ctx, 42)
	require.NoError(t, err)
	require.Len(t, students, 2)
	for _, student := range students {
		require.Equal(t, "García", student.ContactApellidos)
	}
}

func TestUpdateStudentFieldScopedToOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	student, err := svc.CompleteRegistration(ctx, 42, testData())
	require.NoError(t, err)

	// Another chat cannot touch the record.
	updated, err := svc.UpdateStudentField(ctx, 99, student.ID, "nombre_estudiante", "Eva")
	require.NoError(t, err)
	require.False(t, updated)

	updated, err = svc.UpdateStudentField(ctx, 42, student.ID, "nombre_estudiante", "Eva")
	require.NoError(t, err)
	require.True(t, updated)

	got, err := svc.Student(ctx, 42, student.ID)
	require.NoError(t, err)
	require.Equal(t, "Eva", got.Nombre)
}

func TestDeleteStudentScopedToOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.CompleteRegistration(ctx, 42, testData())
	require.NoError(t, err)
	second, err := svc.AddStudent(ctx, 42, "INST-1", "Pérez", "Marta")
	require.NoError(t, err)

	// Another chat cannot delete the record.
	deleted, err := svc.DeleteStudent(ctx, 99, first.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = svc.DeleteStudent(ctx, 42, first.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	// The sibling and the contact survive.
	students, err := svc.Students(ctx, 42)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, second.ID, students[0].ID)

	registered, err := svc.IsRegistered(ctx, 42)
	require.NoError(t, err)
	require.True(t, registered)
}

func TestDeleteRegistrationCascades(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := svc.CompleteRegistration(ctx, 42, testData())
	require.NoError(t, err)
	_, err = svc.AddStudent(ctx, 42, "INST-1", "Pérez", "Marta")
	require.NoError(t, err)

	deleted, err := svc.DeleteRegistration(ctx, 42)
	require.NoError(t, err)
	require.True(t, deleted)

	registered, err := svc.IsRegistered(ctx, 42)
	require.NoError(t, err)
	require.False(t, registered)
	require.Empty(t, store.students)

	// Deleting again is a clean no-op.
	deleted, err = svc.DeleteRegistration(ctx, 42)
	require.NoError(t, err)
	require.False(t, deleted)
}
