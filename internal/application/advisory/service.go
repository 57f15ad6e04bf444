package advisory

import (
	"context"

	"go.uber.org/zap"

	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/domain/menu"
	"github.com/zaikabox/v1/internal/ports/outbound"
)

// Mode tells the caller which path produced a result.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// OfflineNotice is the user-facing message attached to recommendation
// results produced by the local engine.
const OfflineNotice = "Showing offline recommendations due to network issues."

// offlineChatReply is returned when the assistant cannot reach the remote
// service.
const offlineChatReply = "I am currently offline. Please check your internet connection."

// RecommendationsResult is the envelope for a recommendation request. Mode
// rides on the envelope rather than shared state so concurrent requests
// cannot race on it.
type RecommendationsResult struct {
	Items  []menu.FoodItem `json:"items"`
	Mode   Mode            `json:"mode"`
	Notice string          `json:"notice,omitempty"`
}

// SafetyResult is the envelope for a per-item safety check. Checked is
// false only when neither path could produce a verdict; the caller must
// then fail open.
type SafetyResult struct {
	Verdict outbound.SafetyVerdict `json:"verdict"`
	Mode    Mode                   `json:"mode"`
	Checked bool                   `json:"checked"`
}

// ValidationResult is the envelope for health profile validation.
type ValidationResult struct {
	outbound.ProfileValidation
	Mode Mode `json:"mode"`
}

// ChatResult is the envelope for an assistant reply.
type ChatResult struct {
	Reply string `json:"reply"`
	Mode  Mode   `json:"mode"`
}

// Service is the dual-path coordinator: every operation attempts the remote
// advisory first and deterministically falls back to the local rule engines
// on any failure. The service holds no cache and no sticky offline state;
// each call re-attempts the remote path whenever it is available.
type Service struct {
	client      outbound.AdvisoryClient
	recommender *Recommender
	catalog     *menu.Catalog
	logger      *zap.Logger
}

// NewService creates the coordinator.
func NewService(client outbound.AdvisoryClient, recommender *Recommender, catalog *menu.Catalog, logger *zap.Logger) *Service {
	return &Service{
		client:      client,
		recommender: recommender,
		catalog:     catalog,
		logger:      logger.Named("advisory"),
	}
}

// Recommendations returns personalized dish recommendations. Profiles
// without declared issues get an empty online result without any remote
// call.
func (s *Service) Recommendations(ctx context.Context, profile health.Profile) RecommendationsResult {
	if !profile.HasIssues || profile.DiseaseName == "" {
		return RecommendationsResult{Items: []menu.FoodItem{}, Mode: ModeOnline}
	}

	if s.client.Available() {
		items, err := s.client.Recommend(ctx, profile)
		if err == nil {
			s.logger.Info("remote recommendations served",
				zap.Int("count", len(items)))
			return RecommendationsResult{Items: items, Mode: ModeOnline}
		}
		s.logger.Warn("remote advisory failed, switching to offline heuristic engine",
			zap.Error(err))
	} else {
		s.logger.Debug("remote advisory unavailable, skipping straight to local engine")
	}

	items := s.recommender.Recommend(profile, s.catalog.Items())
	return RecommendationsResult{
		Items:  items,
		Mode:   ModeOffline,
		Notice: OfflineNotice,
	}
}

// CheckSafety returns a safety verdict for one item. Remote failures fall
// back to the local rule engine silently; an unexpected local engine panic
// fails open with Checked=false so commerce is never blocked by the checker
// itself.
func (s *Service) CheckSafety(ctx context.Context, item menu.FoodItem, profile health.Profile) (result SafetyResult) {
	if !profile.HasIssues {
		return SafetyResult{Verdict: outbound.SafetyVerdict{Safe: true}, Mode: ModeOnline, Checked: true}
	}

	if s.client.Available() {
		verdict, err := s.client.SafetyCheck(ctx, item, profile)
		if err == nil {
			return SafetyResult{Verdict: verdict, Mode: ModeOnline, Checked: true}
		}
		s.logger.Warn("remote safety check failed, using local rules",
			zap.String("item", item.Name),
			zap.Error(err))
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("local safety rules panicked, failing open",
				zap.Any("panic", r))
			result = SafetyResult{
				Verdict: outbound.SafetyVerdict{Safe: true, Reason: "Safety verification unavailable."},
				Mode:    ModeOffline,
				Checked: false,
			}
		}
	}()

	verdict := EvaluateSafety(item, profile)
	return SafetyResult{Verdict: verdict, Mode: ModeOffline, Checked: true}
}

// ValidateProfile validates a declared condition and produces a dietary
// memo. Validation is advisory: when the remote path fails the profile is
// accepted as-is so registration is never blocked by connectivity.
func (s *Service) ValidateProfile(ctx context.Context, profile health.Profile) ValidationResult {
	if s.client.Available() {
		validation, err := s.client.ValidateProfile(ctx, profile)
		if err == nil {
			return ValidationResult{ProfileValidation: validation, Mode: ModeOnline}
		}
		s.logger.Warn("remote profile validation failed, skipping", zap.Error(err))
	}

	return ValidationResult{
		ProfileValidation: outbound.ProfileValidation{
			Valid:  true,
			Reason: "Offline validation skipped.",
		},
		Mode: ModeOffline,
	}
}

// Chat returns an assistant reply, or the canned offline reply when the
// remote service cannot be reached.
func (s *Service) Chat(ctx context.Context, message string, profile health.Profile, history []outbound.ChatTurn) ChatResult {
	if s.client.Available() {
		reply, err := s.client.Chat(ctx, message, profile, history)
		if err == nil {
			return ChatResult{Reply: reply, Mode: ModeOnline}
		}
		s.logger.Warn("remote chat failed", zap.Error(err))
	}

	return ChatResult{Reply: offlineChatReply, Mode: ModeOffline}
}
