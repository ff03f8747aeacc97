// Package service implements the submission pipeline and the
// administrative operations, orchestrating between HTTP handlers, the
// repository layer, and the notification dispatcher.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/creativecommunity/registration/internal/model"
	"github.com/creativecommunity/registration/internal/notify"
	"github.com/creativecommunity/registration/internal/repository"
)

// RegistrationStore is the record-store surface the service consumes.
// *repository.RegistrationRepository satisfies it.
type RegistrationStore interface {
	Create(ctx context.Context, rec model.Registration) (*model.Registration, error)
	ExistsByMobileNumber(ctx context.Context, number string) (bool, error)
	List(ctx context.Context) ([]model.Registration, error)
	ListByGroup(ctx context.Context, groupName string) ([]model.Registration, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// Notifier queues a post-registration notification. Enqueue must not
// block; delivery is best effort.
type Notifier interface {
	Enqueue(job notify.Job)
}

// RegistrationService owns the submission pipeline and admin operations.
type RegistrationService struct {
	store    RegistrationStore
	notifier Notifier
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(store RegistrationStore, notifier Notifier) *RegistrationService {
	return &RegistrationService{store: store, notifier: notifier}
}

// Submit normalizes a fully validated draft, persists it, and queues the
// welcome notification after the record is committed. The notification is
// decoupled from the result: only persistence failures fail a submission.
func (s *RegistrationService) Submit(ctx context.Context, draft model.Draft) (*model.Registration, error) {
	rec := buildRecord(draft)

	created, err := s.store.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateMobile) {
			return nil, err
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	slog.Info("registration_created", "id", created.ID, "group_name", created.GroupName)
	s.notifier.Enqueue(notify.Job{
		MobileNumber: created.MobileNumber,
		FirstName:    created.FirstName,
		Interests:    created.Interests,
		Software:     created.Software,
		StageVibes:   created.StageVibes,
	})
	return created, nil
}

// ExistsByMobileNumber exposes the uniqueness check for the wizard.
func (s *RegistrationService) ExistsByMobileNumber(ctx context.Context, number string) (bool, error) {
	return s.store.ExistsByMobileNumber(ctx, number)
}

// List returns all registrations, newest first. An optional group name
// narrows the result to one team.
func (s *RegistrationService) List(ctx context.Context, groupName string) ([]model.Registration, error) {
	if groupName == "" {
		return s.store.List(ctx)
	}
	if !model.IsKnownGroup(groupName) {
		return nil, fmt.Errorf("unknown group %q", groupName)
	}
	return s.store.ListByGroup(ctx, groupName)
}

// Delete removes one registration by ID.
func (s *RegistrationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return repository.ErrNotFound
	}
	return s.store.DeleteByID(ctx, id)
}

// DeleteAll removes every registration.
func (s *RegistrationService) DeleteAll(ctx context.Context) error {
	return s.store.DeleteAll(ctx)
}

// Count returns the total number of registrations.
func (s *RegistrationService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// buildRecord shapes a draft into its persisted form: scalars trimmed,
// each custom free-text entry folded into a copy of its selection list,
// empty lists and blank customs represented as absent.
func buildRecord(draft model.Draft) model.Registration {
	first := strings.TrimSpace(draft.FirstName)
	middle := strings.TrimSpace(draft.MiddleName)
	last := strings.TrimSpace(draft.LastName)

	return model.Registration{
		FullName:          strings.TrimSpace(first + " " + last + " " + middle),
		FirstName:         first,
		MiddleName:        middle,
		LastName:          last,
		MobileNumber:      strings.TrimSpace(draft.MobileNumber),
		RoomNumber:        strings.TrimSpace(draft.RoomNumber),
		GroupName:         strings.TrimSpace(draft.GroupName),
		WingCommanderName: strings.TrimSpace(draft.WingCommanderName),
		Interests:         withCustom(draft.Interests, draft.CustomInterest),
		CustomInterest:    blankAsNil(draft.CustomInterest),
		Software:          withCustom(draft.Software, draft.CustomSoftware),
		CustomSoftware:    blankAsNil(draft.CustomSoftware),
		StageVibes:        withCustom(draft.StageVibes, draft.CustomStageVibe),
		CustomStageVibe:   blankAsNil(draft.CustomStageVibe),
	}
}

// withCustom copies the selection list and appends the trimmed custom
// entry when present. An empty result is nil so it persists as absent.
func withCustom(selected []string, custom string) []string {
	out := append([]string(nil), selected...)
	if c := strings.TrimSpace(custom); c != "" {
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func blankAsNil(s string) *string {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return &v
}
