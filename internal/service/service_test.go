package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativecommunity/registration/internal/model"
	"github.com/creativecommunity/registration/internal/notify"
	"github.com/creativecommunity/registration/internal/repository"
)

// memStore is an in-memory RegistrationStore enforcing the mobile_number
// unique constraint the way the real table does.
type memStore struct {
	regs      []model.Registration
	createErr error
}

func (m *memStore) Create(ctx context.Context, rec model.Registration) (*model.Registration, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, r := range m.regs {
		if r.MobileNumber == rec.MobileNumber {
			return nil, repository.ErrDuplicateMobile
		}
	}
	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()
	m.regs = append(m.regs, rec)
	return &rec, nil
}

func (m *memStore) ExistsByMobileNumber(ctx context.Context, number string) (bool, error) {
	for _, r := range m.regs {
		if r.MobileNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) List(ctx context.Context) ([]model.Registration, error) {
	return m.regs, nil
}

func (m *memStore) ListByGroup(ctx context.Context, groupName string) ([]model.Registration, error) {
	var out []model.Registration
	for _, r := range m.regs {
		if r.GroupName == groupName {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) DeleteByID(ctx context.Context, id string) error {
	for i, r := range m.regs {
		if r.ID == id {
			m.regs = append(m.regs[:i], m.regs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) DeleteAll(ctx context.Context) error {
	m.regs = nil
	return nil
}

func (m *memStore) Count(ctx context.Context) (int, error) {
	return len(m.regs), nil
}

type fakeNotifier struct {
	jobs []notify.Job
}

func (f *fakeNotifier) Enqueue(job notify.Job) {
	f.jobs = append(f.jobs, job)
}

func validDraft() model.Draft {
	return model.Draft{
		FirstName:         " Ravi ",
		MiddleName:        "Kantibhai",
		LastName:          "Kumar ",
		MobileNumber:      " 9876543210 ",
		RoomNumber:        " A-101 ",
		GroupName:         "Pavitra",
		WingCommanderName: " Rajesh Kumar ",
		StageVibes:        []string{"singing"},
	}
}

func TestSubmit_NormalizesScalars(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	svc := NewRegistrationService(store, &fakeNotifier{})

	created, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	assert.Equal(t, "Ravi", created.FirstName)
	assert.Equal(t, "Kumar", created.LastName)
	assert.Equal(t, "Ravi Kumar Kantibhai", created.FullName)
	assert.Equal(t, "9876543210", created.MobileNumber)
	assert.Equal(t, "A-101", created.RoomNumber)
	assert.Equal(t, "Rajesh Kumar", created.WingCommanderName)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestSubmit_FullNameOmitsBlankMiddleName(t *testing.T) {
	t.Parallel()

	draft := validDraft()
	draft.MiddleName = "  "
	svc := NewRegistrationService(&memStore{}, &fakeNotifier{})

	created, err := svc.Submit(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", created.FullName)
	assert.Equal(t, "", created.MiddleName)
}

func TestSubmit_MergesCustomEntriesIntoLists(t *testing.T) {
	t.Parallel()

	draft := validDraft()
	draft.Interests = []string{"Designing"}
	draft.CustomInterest = " Animation "
	draft.Software = nil
	draft.CustomSoftware = "GIMP"
	draft.StageVibes = []string{"singing"}
	draft.CustomStageVibe = ""

	svc := NewRegistrationService(&memStore{}, &fakeNotifier{})
	created, err := svc.Submit(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, []string{"Designing", "Animation"}, created.Interests)
	require.NotNil(t, created.CustomInterest)
	assert.Equal(t, "Animation", *created.CustomInterest)

	assert.Equal(t, []string{"GIMP"}, created.Software)
	require.NotNil(t, created.CustomSoftware)
	assert.Equal(t, "GIMP", *created.CustomSoftware)

	assert.Equal(t, []string{"singing"}, created.StageVibes)
	assert.Nil(t, created.CustomStageVibe)
}

func TestSubmit_EmptyListsPersistAsAbsent(t *testing.T) {
	t.Parallel()

	draft := validDraft()
	draft.Interests = []string{}
	draft.CustomInterest = "  "

	svc := NewRegistrationService(&memStore{}, &fakeNotifier{})
	created, err := svc.Submit(context.Background(), draft)
	require.NoError(t, err)

	assert.Nil(t, created.Interests, "empty selection with blank custom must be absent, not empty")
	assert.Nil(t, created.CustomInterest)
	assert.Nil(t, created.Software)
}

func TestSubmit_CreatesOneRecordAndOneNotification(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	notifier := &fakeNotifier{}
	svc := NewRegistrationService(store, notifier)

	draft := validDraft()
	draft.Interests = []string{"Designing"}
	draft.CustomInterest = "Animation"

	created, err := svc.Submit(context.Background(), draft)
	require.NoError(t, err)

	require.Len(t, store.regs, 1)
	assert.Equal(t, "9876543210", store.regs[0].MobileNumber)

	require.Len(t, notifier.jobs, 1)
	job := notifier.jobs[0]
	assert.Equal(t, "9876543210", job.MobileNumber)
	assert.Equal(t, "Ravi", job.FirstName)
	assert.Equal(t, []string{"Designing", "Animation"}, job.Interests, "notification carries the augmented list")
	assert.Equal(t, []string{"singing"}, job.StageVibes)

	// A later duplicate attempt with identical data fails with the
	// duplicate-specific error and creates no second record.
	_, err = svc.Submit(context.Background(), draft)
	assert.ErrorIs(t, err, repository.ErrDuplicateMobile)
	assert.Len(t, store.regs, 1)
	assert.Len(t, notifier.jobs, 1, "a failed submission must not notify")

	created2, err := svc.Submit(context.Background(), func() model.Draft {
		d := validDraft()
		d.MobileNumber = "9123456780"
		return d
	}())
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, created2.ID)
}

func TestSubmit_StoreFailureDoesNotNotify(t *testing.T) {
	t.Parallel()

	store := &memStore{createErr: errors.New("connection reset")}
	notifier := &fakeNotifier{}
	svc := NewRegistrationService(store, notifier)

	_, err := svc.Submit(context.Background(), validDraft())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Empty(t, notifier.jobs)
}

func TestList_RejectsUnknownGroup(t *testing.T) {
	t.Parallel()

	svc := NewRegistrationService(&memStore{}, &fakeNotifier{})

	_, err := svc.List(context.Background(), "Nonexistent")
	assert.Error(t, err)

	_, err = svc.List(context.Background(), "Pavitra")
	assert.NoError(t, err)
}

func TestDelete_EmptyIDIsNotFound(t *testing.T) {
	t.Parallel()

	svc := NewRegistrationService(&memStore{}, &fakeNotifier{})
	assert.ErrorIs(t, svc.Delete(context.Background(), ""), repository.ErrNotFound)
}
