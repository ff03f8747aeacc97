// Package wizard implements the multi-step registration form: the fixed
// step sequence, the per-session draft state, and the validation gate that
// controls advancement between steps.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/creativecommunity/registration/internal/model"
	"github.com/creativecommunity/registration/internal/validate"
)

// StepID tags one screen of the wizard. Validation dispatches on it
// exhaustively rather than by field-name lookup.
type StepID int

const (
	StepPersonalInfo StepID = iota
	StepContact
	StepLocation
	StepTeam
	StepWingCommander
	StepSkills
	StepStageVibes
)

// Step is one entry of the fixed step sequence. Fields lists the draft
// fields the step governs, in display order; the first failing field in
// this order becomes the surfaced error.
type Step struct {
	ID     StepID
	Title  string
	Fields []model.Field
}

var steps = []Step{
	{StepPersonalInfo, "Personal Info", []model.Field{model.FieldFirstName, model.FieldMiddleName, model.FieldLastName}},
	{StepContact, "Contact", []model.Field{model.FieldMobileNumber}},
	{StepLocation, "Location", []model.Field{model.FieldRoomNumber}},
	{StepTeam, "Team", []model.Field{model.FieldGroupName}},
	{StepWingCommander, "Wing Commander", []model.Field{model.FieldWingCommanderName}},
	{StepSkills, "Skills", []model.Field{model.FieldInterests, model.FieldSoftware}},
	{StepStageVibes, "Stage Vibes", []model.Field{model.FieldStageVibes}},
}

// Steps returns the fixed step sequence.
func Steps() []Step {
	return steps
}

// MobileChecker is the uniqueness check against the record store.
type MobileChecker interface {
	ExistsByMobileNumber(ctx context.Context, number string) (bool, error)
}

// Submitter finalizes a fully validated draft.
type Submitter interface {
	Submit(ctx context.Context, draft model.Draft) (*model.Registration, error)
}

// ErrBusy is returned when Next is invoked while a previous Next is still
// awaiting the uniqueness check or the submission. No second check is
// issued in that case.
var ErrBusy = errors.New("validation already in progress")

// ErrCheckUnavailable is returned when the uniqueness check itself fails;
// the step does not advance and the caller may retry.
var ErrCheckUnavailable = errors.New("Error checking mobile number, please try again")

// ErrUnknownField is returned for a field the wizard does not manage.
var ErrUnknownField = errors.New("unknown field")

// ValidationError carries the per-field errors of a rejected step. First
// is the message for the first failing field in display order.
type ValidationError struct {
	Fields map[model.Field]string
	First  string
}

func (e *ValidationError) Error() string {
	return e.First
}

// NextResult reports the outcome of a successful Next call.
type NextResult struct {
	Step         int
	Submitted    bool
	Registration *model.Registration
}

// Session holds the draft and wizard position for one registration
// attempt. All state is session-scoped; a mutex guards it because HTTP
// requests for the same session may overlap.
type Session struct {
	mu        sync.Mutex
	id        string
	step      int
	busy      bool
	draft     model.Draft
	errs      map[model.Field]string
	checker   MobileChecker
	submitter Submitter
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State is a read-only snapshot of a session for API consumers.
type State struct {
	ID          string                 `json:"id"`
	Step        int                    `json:"step"`
	StepCount   int                    `json:"step_count"`
	StepTitle   string                 `json:"step_title"`
	Checking    bool                   `json:"checking"`
	Draft       model.Draft            `json:"draft"`
	FieldErrors map[model.Field]string `json:"field_errors,omitempty"`
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := make(map[model.Field]string, len(s.errs))
	for f, msg := range s.errs {
		errs[f] = msg
	}
	if len(errs) == 0 {
		errs = nil
	}
	return State{
		ID:          s.id,
		Step:        s.step,
		StepCount:   len(steps),
		StepTitle:   steps[s.step].Title,
		Checking:    s.busy,
		Draft:       s.draft,
		FieldErrors: errs,
	}
}

// SetField overwrites one scalar draft field and clears any validation
// error recorded for it.
func (s *Session) SetField(field model.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case model.FieldFirstName:
		s.draft.FirstName = value
	case model.FieldMiddleName:
		s.draft.MiddleName = value
	case model.FieldLastName:
		s.draft.LastName = value
	case model.FieldMobileNumber:
		if s.busy {
			return ErrBusy
		}
		s.draft.MobileNumber = value
	case model.FieldRoomNumber:
		s.draft.RoomNumber = value
	case model.FieldGroupName:
		s.draft.GroupName = value
	case model.FieldWingCommanderName:
		s.draft.WingCommanderName = value
	case model.FieldCustomInterest:
		s.draft.CustomInterest = value
	case model.FieldCustomSoftware:
		s.draft.CustomSoftware = value
	case model.FieldCustomStageVibe:
		s.draft.CustomStageVibe = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	delete(s.errs, field)
	return nil
}

// Toggle adds or removes an option from one of the set-valued fields.
// Toggling the same option twice restores the original selection.
func (s *Session) Toggle(field model.Field, option string, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case model.FieldInterests:
		s.draft.Interests = toggle(s.draft.Interests, option, selected)
	case model.FieldSoftware:
		s.draft.Software = toggle(s.draft.Software, option, selected)
	case model.FieldStageVibes:
		s.draft.StageVibes = toggle(s.draft.StageVibes, option, selected)
	default:
		return fmt.Errorf("%w: %s is not a multi-select field", ErrUnknownField, field)
	}
	delete(s.errs, field)
	return nil
}

func toggle(options []string, option string, selected bool) []string {
	for i, o := range options {
		if o == option {
			if selected {
				return options
			}
			return append(options[:i:i], options[i+1:]...)
		}
	}
	if selected {
		return append(options, option)
	}
	return options
}

// Previous moves one step back. It performs no validation and is a no-op
// on the first step.
func (s *Session) Previous() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step > 0 {
		s.step--
	}
	return s.step
}

// Checking reports whether a Next call is currently awaiting the
// uniqueness check or the submission. Consumers should treat the mobile
// number input as non-editable while it is set.
func (s *Session) Checking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Next validates the current step and, on success, advances to the next
// step or submits from the last one. On a validation failure the step
// errors are recorded on the session and a *ValidationError is returned.
//
// While a Next call is awaiting the uniqueness check or the submission,
// further Next calls return ErrBusy without issuing another check.
func (s *Session) Next(ctx context.Context) (NextResult, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return NextResult{}, ErrBusy
	}
	s.busy = true
	step := steps[s.step]
	draft := s.draft
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	fieldErrs := map[model.Field]string{}
	first := ""
	record := func(field model.Field, err error) {
		if err == nil {
			return
		}
		if first == "" {
			first = err.Error()
		}
		fieldErrs[field] = err.Error()
	}

	switch step.ID {
	case StepPersonalInfo:
		record(model.FieldFirstName, validate.FirstName(draft.FirstName))
		record(model.FieldMiddleName, validate.MiddleName(draft.MiddleName))
		record(model.FieldLastName, validate.LastName(draft.LastName))
	case StepContact:
		if err := validate.MobileNumber(draft.MobileNumber); err != nil {
			record(model.FieldMobileNumber, err)
		} else {
			exists, err := s.checker.ExistsByMobileNumber(ctx, strings.TrimSpace(draft.MobileNumber))
			if err != nil {
				slog.Error("mobile_check_failed", "session_id", s.id, "error", err)
				return NextResult{}, ErrCheckUnavailable
			}
			if exists {
				record(model.FieldMobileNumber, errors.New("This mobile number is already registered"))
			}
		}
	case StepLocation:
		record(model.FieldRoomNumber, validate.RoomNumber(draft.RoomNumber))
	case StepTeam:
		if err := validate.GroupName(draft.GroupName); err != nil {
			record(model.FieldGroupName, err)
		} else if !model.IsKnownGroup(strings.TrimSpace(draft.GroupName)) {
			// API callers are not a trusted UI; enforce the fixed group set.
			record(model.FieldGroupName, errors.New("Please select your group"))
		}
	case StepWingCommander:
		record(model.FieldWingCommanderName, validate.WingCommanderName(draft.WingCommanderName))
	case StepSkills:
		// Interests and software are optional.
	case StepStageVibes:
		record(model.FieldStageVibes, validate.StageVibes(draft.StageVibes, draft.CustomStageVibe))
	}

	if len(fieldErrs) > 0 {
		s.mu.Lock()
		s.errs = fieldErrs
		s.mu.Unlock()
		return NextResult{}, &ValidationError{Fields: fieldErrs, First: first}
	}

	s.mu.Lock()
	s.errs = nil
	last := s.step == len(steps)-1
	if !last {
		s.step++
	}
	current := s.step
	s.mu.Unlock()

	if !last {
		return NextResult{Step: current}, nil
	}

	reg, err := s.submitter.Submit(ctx, draft)
	if err != nil {
		return NextResult{}, err
	}
	return NextResult{Step: current, Submitted: true, Registration: reg}, nil
}

// Sessions is an in-memory, UUID-keyed store of active wizard sessions.
type Sessions struct {
	mu        sync.Mutex
	byID      map[string]*Session
	checker   MobileChecker
	submitter Submitter
}

// ErrSessionNotFound is returned for an unknown or closed session ID.
var ErrSessionNotFound = errors.New("session not found")

// NewSessions constructs a session store wired to the given collaborators.
func NewSessions(checker MobileChecker, submitter Submitter) *Sessions {
	return &Sessions{
		byID:      make(map[string]*Session),
		checker:   checker,
		submitter: submitter,
	}
}

// Create opens a new session positioned on the first step.
func (s *Sessions) Create() *Session {
	sess := &Session{
		id:        uuid.New().String(),
		checker:   s.checker,
		submitter: s.submitter,
	}
	s.mu.Lock()
	s.byID[sess.id] = sess
	s.mu.Unlock()
	return sess
}

// Get returns an active session or ErrSessionNotFound.
func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete closes a session. Deleting an unknown ID is a no-op.
func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
}
