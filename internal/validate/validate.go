// Package validate contains the pure per-field validation rules for a
// registration draft. Each validator takes the raw value and returns nil
// when the value is acceptable, or an error carrying the user-visible
// message. Validators never mutate their input.
package validate

import (
	"errors"
	"regexp"
	"strings"
)

var (
	namePattern   = regexp.MustCompile(`^[A-Za-z ]+$`)
	mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	roomPattern   = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

func name(value, label string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New(label + " is required")
	}
	if len(v) < 2 {
		return errors.New(label + " must be at least 2 characters long")
	}
	if !namePattern.MatchString(v) {
		return errors.New(label + " should only contain letters and spaces")
	}
	return nil
}

// FirstName validates the required first-name field.
func FirstName(value string) error {
	return name(value, "First name")
}

// MiddleName validates the optional middle-name field. A blank value is
// valid; a non-blank value follows the same rules as the other names.
func MiddleName(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return name(value, "Middle name")
}

// LastName validates the required last-name field.
func LastName(value string) error {
	return name(value, "Last name")
}

// WingCommanderName validates the required wing-commander-name field.
func WingCommanderName(value string) error {
	return name(value, "Wing Commander name")
}

// MobileNumber validates a 10-digit Indian mobile number (leading digit 6-9).
func MobileNumber(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New("Mobile number is required")
	}
	if !mobilePattern.MatchString(v) {
		return errors.New("Please enter a valid 10-digit Indian mobile number")
	}
	return nil
}

// RoomNumber validates the room number: letters, digits and hyphens only.
func RoomNumber(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New("Room number is required")
	}
	if !roomPattern.MatchString(v) {
		return errors.New("Room number should only contain letters, numbers, and hyphens")
	}
	return nil
}

// GroupName validates that a group has been selected. IsKnownGroup is
// enforced by the caller's option set; here only presence is required.
func GroupName(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("Please select your group")
	}
	return nil
}

// StageVibes validates the stage-vibes step: at least one selected vibe or
// a non-blank custom entry.
func StageVibes(selected []string, custom string) error {
	if len(selected) == 0 && strings.TrimSpace(custom) == "" {
		return errors.New("Please select at least one stage vibe or specify other")
	}
	return nil
}
