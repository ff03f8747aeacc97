package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testLinks = GroupLinks{
	Creativity: "https://chat.example.com/creativity",
	StageVibe:  "https://chat.example.com/stagevibe",
}

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		job         Job
		wantCreate  bool
		wantStage   bool
		wantGeneric bool
	}{
		{
			name:       "interests only",
			job:        Job{FirstName: "Ravi", Interests: []string{"Designing"}},
			wantCreate: true,
		},
		{
			name:       "software only",
			job:        Job{FirstName: "Ravi", Software: []string{"Canva"}},
			wantCreate: true,
		},
		{
			name:      "stage vibes only",
			job:       Job{FirstName: "Ravi", StageVibes: []string{"singing"}},
			wantStage: true,
		},
		{
			name:       "both groups",
			job:        Job{FirstName: "Ravi", Interests: []string{"Designing"}, StageVibes: []string{"acting"}},
			wantCreate: true,
			wantStage:  true,
		},
		{
			name:        "neither",
			job:         Job{FirstName: "Ravi"},
			wantGeneric: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			msg := BuildMessage(tc.job, testLinks)

			assert.Contains(t, msg, "Hello Ravi! 👋")
			assert.Contains(t, msg, "Thank you for registering.")
			assert.Equal(t, tc.wantCreate, strings.Contains(msg, testLinks.Creativity))
			assert.Equal(t, tc.wantStage, strings.Contains(msg, testLinks.StageVibe))
			assert.Equal(t, tc.wantGeneric, strings.Contains(msg, "You can join our groups later"))
		})
	}
}

func TestTargetNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "919876543210", TargetNumber("09876543210", "91"))
	assert.Equal(t, "9876543210", TargetNumber("9876543210", "91"), "no leading zero, unchanged")
	assert.Equal(t, "91098", TargetNumber("0098", "91"), "only the first zero is replaced")
}
