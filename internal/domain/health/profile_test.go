package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr error
	}{
		{"no issues needs nothing", Profile{}, nil},
		{"no issues ignores other fields", Profile{Age: -5}, nil},
		{"issues require disease", Profile{HasIssues: true}, ErrMissingDisease},
		{"valid flagged profile", Profile{HasIssues: true, DiseaseName: "Diabetes", Stage: StageBeginning, Age: 40}, nil},
		{"empty stage allowed", Profile{HasIssues: true, DiseaseName: "Diabetes"}, nil},
		{"bad stage", Profile{HasIssues: true, DiseaseName: "Diabetes", Stage: "4"}, ErrInvalidStage},
		{"negative age", Profile{HasIssues: true, DiseaseName: "Diabetes", Age: -1}, ErrInvalidAge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestStageIsValid(t *testing.T) {
	assert.True(t, StageBeginning.IsValid())
	assert.True(t, StageIntermediate.IsValid())
	assert.True(t, StageAdvanced.IsValid())
	assert.False(t, Stage("0").IsValid())
	assert.False(t, Stage("").IsValid())
}
