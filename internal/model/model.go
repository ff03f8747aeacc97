// Package model defines the core domain types for the registration service.
package model

import "time"

// Field identifies a single draft field. Handlers and the wizard use it
// instead of raw strings so dispatch stays exhaustive.
type Field string

const (
	FieldFirstName         Field = "first_name"
	FieldMiddleName        Field = "middle_name"
	FieldLastName          Field = "last_name"
	FieldMobileNumber      Field = "mobile_number"
	FieldRoomNumber        Field = "room_number"
	FieldGroupName         Field = "group_name"
	FieldWingCommanderName Field = "wing_commander_name"
	FieldInterests         Field = "interests"
	FieldCustomInterest    Field = "custom_interest"
	FieldSoftware          Field = "software"
	FieldCustomSoftware    Field = "custom_software"
	FieldStageVibes        Field = "stage_vibes"
	FieldCustomStageVibe   Field = "custom_stage_vibe"
)

// GroupNames is the fixed set of team names a registrant can pick from.
var GroupNames = []string{"Pavitra", "Param", "Pulkit", "Parmanand"}

// CreativeInterests is the fixed set of selectable creative interests.
var CreativeInterests = []string{
	"Video Editing",
	"Designing",
	"Sketching",
	"Photography",
	"Video Shooting",
}

// SoftwareOptions is the fixed set of selectable editing/design tools.
var SoftwareOptions = []string{
	"Adobe Premiere Pro",
	"After Effects",
	"Filmora",
	"CapCut",
	"VN",
	"Photoshop",
	"Canva",
	"Lightroom",
}

// StageVibeOptions is the fixed set of selectable stage talents.
var StageVibeOptions = []string{
	"singing",
	"acting",
	"mimicry",
	"instrumental/instruments",
	"dancing",
}

// IsKnownGroup reports whether name is one of the fixed team names.
func IsKnownGroup(name string) bool {
	for _, g := range GroupNames {
		if g == name {
			return true
		}
	}
	return false
}

// Draft is the in-progress registration data for one wizard session.
// It is owned by the session and never persisted as-is.
type Draft struct {
	FirstName         string   `json:"first_name"`
	MiddleName        string   `json:"middle_name"`
	LastName          string   `json:"last_name"`
	MobileNumber      string   `json:"mobile_number"`
	RoomNumber        string   `json:"room_number"`
	GroupName         string   `json:"group_name"`
	WingCommanderName string   `json:"wing_commander_name"`
	Interests         []string `json:"interests"`
	CustomInterest    string   `json:"custom_interest"`
	Software          []string `json:"software"`
	CustomSoftware    string   `json:"custom_software"`
	StageVibes        []string `json:"stage_vibes"`
	CustomStageVibe   string   `json:"custom_stage_vibe"`
}

// Registration is a finalized registration record. List-valued fields are
// nil (absent) rather than empty, and custom free-text fields are nil when
// the registrant left them blank.
type Registration struct {
	ID                string    `json:"id"`
	FullName          string    `json:"full_name"`
	FirstName         string    `json:"first_name"`
	MiddleName        string    `json:"middle_name"`
	LastName          string    `json:"last_name"`
	MobileNumber      string    `json:"mobile_number"`
	RoomNumber        string    `json:"room_number"`
	GroupName         string    `json:"group_name"`
	WingCommanderName string    `json:"wing_commander_name"`
	Interests         []string  `json:"interests,omitempty"`
	CustomInterest    *string   `json:"custom_interest,omitempty"`
	Software          []string  `json:"software,omitempty"`
	CustomSoftware    *string   `json:"custom_software,omitempty"`
	StageVibes        []string  `json:"stage_vibes,omitempty"`
	CustomStageVibe   *string   `json:"custom_stage_vibe,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// SetFieldRequest is the payload for overwriting a scalar draft field.
type SetFieldRequest struct {
	Field Field  `json:"field"`
	Value string `json:"value"`
}

// ToggleRequest is the payload for adding or removing a multi-select option.
type ToggleRequest struct {
	Field    Field  `json:"field"`
	Option   string `json:"option"`
	Selected bool   `json:"selected"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error       string           `json:"error"`
	FieldErrors map[Field]string `json:"field_errors,omitempty"`
}
