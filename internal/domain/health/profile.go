// Package health contains the user health profile model used to gate
// personalized recommendations and food safety checks.
package health

import "errors"

// Stage represents the declared progression of a condition.
type Stage string

const (
	StageBeginning    Stage = "1"
	StageIntermediate Stage = "2"
	StageAdvanced     Stage = "3"
)

// IsValid reports whether the stage is one of the declared values.
func (s Stage) IsValid() bool {
	return s == StageBeginning || s == StageIntermediate || s == StageAdvanced
}

// Profile is the user-declared medical condition data. It is supplied by
// value into every engine call; engines never mutate it, and DiseaseName is
// only consulted when HasIssues is true.
type Profile struct {
	HasIssues   bool   `json:"hasIssues"`
	DiseaseName string `json:"diseaseName,omitempty"`
	Stage       Stage  `json:"stage,omitempty"`
	Medicines   string `json:"medicines,omitempty"`
	Age         int    `json:"age,omitempty"`
	DietaryMemo string `json:"dietaryMemo,omitempty"`
}

var (
	ErrMissingDisease = errors.New("disease name is required when health issues are declared")
	ErrInvalidStage   = errors.New("stage must be 1, 2 or 3")
	ErrInvalidAge     = errors.New("age must be positive")
)

// Validate checks structural invariants of the profile.
func (p Profile) Validate() error {
	if !p.HasIssues {
		return nil
	}
	if p.DiseaseName == "" {
		return ErrMissingDisease
	}
	if p.Stage != "" && !p.Stage.IsValid() {
		return ErrInvalidStage
	}
	if p.Age < 0 {
		return ErrInvalidAge
	}
	return nil
}
