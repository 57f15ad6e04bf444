// Package outbound defines interfaces for external services and persistence.
package outbound

import (
	"context"

	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/domain/menu"
)

// SafetyVerdict is the answer to "is this item safe for this profile".
// Reason is empty or generic when Safe is true.
type SafetyVerdict struct {
	Safe   bool   `json:"safe"`
	Reason string `json:"reason"`
}

// ProfileValidation is the result of validating a declared health profile.
// DietaryMemo carries free-text dietary guidance for later prompts.
type ProfileValidation struct {
	Valid       bool   `json:"valid"`
	Reason      string `json:"reason"`
	DietaryMemo string `json:"dietaryMemo"`
}

// ChatTurn is one prior exchange in the assistant conversation.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// AdvisoryClient wraps the remote generative AI advisory service. Every
// method is fail-closed: any transport, credential or parsing problem is
// returned as a typed advisory error, never propagated raw.
type AdvisoryClient interface {
	// Available reports whether a remote attempt is worth making at all
	// (credential configured and connectivity not known to be down).
	Available() bool

	// Recommend asks the remote service for personalized dish
	// recommendations for the given profile.
	Recommend(ctx context.Context, profile health.Profile) ([]menu.FoodItem, error)

	// SafetyCheck asks the remote service for a per-item safety verdict.
	SafetyCheck(ctx context.Context, item menu.FoodItem, profile health.Profile) (SafetyVerdict, error)

	// ValidateProfile validates a declared condition and produces a
	// dietary memo.
	ValidateProfile(ctx context.Context, profile health.Profile) (ProfileValidation, error)

	// Chat returns a free-text assistant reply. History is bounded to the
	// most recent turns by the implementation.
	Chat(ctx context.Context, message string, profile health.Profile, history []ChatTurn) (string, error)
}
