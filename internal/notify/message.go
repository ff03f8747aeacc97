package notify

import "strings"

// GroupLinks holds the invite links appended to welcome messages.
type GroupLinks struct {
	Creativity string
	StageVibe  string
}

// Job is one post-registration notification to deliver. The list fields are
// the persisted (custom-augmented) selections.
type Job struct {
	MobileNumber string
	FirstName    string
	Interests    []string
	Software     []string
	StageVibes   []string
}

// BuildMessage composes the welcome message for a job: a personalized
// greeting, then the creativity-group link when the registrant picked
// interests or software, the stage-vibe link when they picked stage vibes,
// or a generic notice when neither applies.
func BuildMessage(job Job, links GroupLinks) string {
	var b strings.Builder
	b.WriteString("Hello " + job.FirstName + "! 👋\n\nThank you for registering.")

	hasSkills := len(job.Interests) > 0 || len(job.Software) > 0
	hasStageVibes := len(job.StageVibes) > 0

	if hasSkills {
		b.WriteString("\n\nCreativity Group: " + links.Creativity)
	}
	if hasStageVibes {
		b.WriteString("\n\nStage Vibe Group: " + links.StageVibe)
	}
	if !hasSkills && !hasStageVibes {
		b.WriteString("\n\nYou can join our groups later from your dashboard.")
	}
	return b.String()
}

// TargetNumber formats a national mobile number for the gateway by
// replacing a single leading "0" with the country code.
func TargetNumber(mobile, countryCode string) string {
	if strings.HasPrefix(mobile, "0") {
		return countryCode + mobile[1:]
	}
	return mobile
}
