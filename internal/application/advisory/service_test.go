package advisory

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/domain/menu"
	"github.com/zaikabox/v1/internal/ports/outbound"
)

// stubClient is a scriptable advisory client.
type stubClient struct {
	available bool

	recommendItems []menu.FoodItem
	recommendErr   error

	verdict   outbound.SafetyVerdict
	safetyErr error

	validation    outbound.ProfileValidation
	validationErr error

	chatReply string
	chatErr   error

	calls int
}

func (s *stubClient) Available() bool { return s.available }

func (s *stubClient) Recommend(ctx context.Context, profile health.Profile) ([]menu.FoodItem, error) {
	s.calls++
	return s.recommendItems, s.recommendErr
}

func (s *stubClient) SafetyCheck(ctx context.Context, item menu.FoodItem, profile health.Profile) (outbound.SafetyVerdict, error) {
	s.calls++
	return s.verdict, s.safetyErr
}

func (s *stubClient) ValidateProfile(ctx context.Context, profile health.Profile) (outbound.ProfileValidation, error) {
	s.calls++
	return s.validation, s.validationErr
}

func (s *stubClient) Chat(ctx context.Context, message string, profile health.Profile, history []outbound.ChatTurn) (string, error) {
	s.calls++
	return s.chatReply, s.chatErr
}

func newTestService(client outbound.AdvisoryClient) *Service {
	catalog := menu.NewCatalog(testCatalog())
	recommender := NewRecommender(rand.New(rand.NewSource(1)))
	return NewService(client, recommender, catalog, zap.NewNop())
}

func TestRecommendationsOnlinePath(t *testing.T) {
	remote := []menu.FoodItem{{ID: "rec_1", Name: "Quinoa Bowl", Category: menu.CategoryHealthyCombo}}
	client := &stubClient{available: true, recommendItems: remote}

	result := newTestService(client).Recommendations(context.Background(), flaggedProfile("Diabetes"))

	assert.Equal(t, ModeOnline, result.Mode)
	assert.Equal(t, remote, result.Items)
	assert.Empty(t, result.Notice)
}

func TestRecommendationsFallsBackOnRemoteFailure(t *testing.T) {
	client := &stubClient{available: true, recommendErr: errors.New("boom")}

	result := newTestService(client).Recommendations(context.Background(), flaggedProfile("Diabetes"))

	assert.Equal(t, ModeOffline, result.Mode)
	assert.Equal(t, OfflineNotice, result.Notice)
	require.GreaterOrEqual(t, len(result.Items), MinRecommendations)
	require.LessOrEqual(t, len(result.Items), MaxRecommendations)
}

func TestRecommendationsOfflineClientSkipsRemote(t *testing.T) {
	client := &stubClient{available: false}

	result := newTestService(client).Recommendations(context.Background(), flaggedProfile("Diabetes"))

	assert.Equal(t, ModeOffline, result.Mode)
	assert.Zero(t, client.calls)
}

func TestRecommendationsHealthyProfileShortCircuits(t *testing.T) {
	client := &stubClient{available: true}

	result := newTestService(client).Recommendations(context.Background(), health.Profile{HasIssues: false})

	assert.Equal(t, ModeOnline, result.Mode)
	assert.Empty(t, result.Items)
	assert.Zero(t, client.calls)
}

func TestRecommendationsRetriesRemoteEachCall(t *testing.T) {
	// A failed attempt must not latch the service offline: the next call
	// with a working remote goes online again.
	client := &stubClient{available: true, recommendErr: errors.New("timeout")}
	svc := newTestService(client)

	first := svc.Recommendations(context.Background(), flaggedProfile("Diabetes"))
	assert.Equal(t, ModeOffline, first.Mode)

	client.recommendErr = nil
	client.recommendItems = []menu.FoodItem{{ID: "rec_1", Name: "Oats Bowl"}}

	second := svc.Recommendations(context.Background(), flaggedProfile("Diabetes"))
	assert.Equal(t, ModeOnline, second.Mode)
}

func TestCheckSafetyOnlinePath(t *testing.T) {
	client := &stubClient{
		available: true,
		verdict:   outbound.SafetyVerdict{Safe: false, Reason: "High sugar content."},
	}

	result := newTestService(client).CheckSafety(context.Background(),
		menu.FoodItem{ID: "ITEM-1", Name: "Gulab Jamun"}, flaggedProfile("Diabetes"))

	assert.Equal(t, ModeOnline, result.Mode)
	assert.True(t, result.Checked)
	assert.False(t, result.Verdict.Safe)
}

func TestCheckSafetyFallsBackToLocalRules(t *testing.T) {
	client := &stubClient{available: true, safetyErr: errors.New("network down")}

	result := newTestService(client).CheckSafety(context.Background(),
		menu.FoodItem{ID: "ITEM-1", Name: "Butter Chicken"}, flaggedProfile("High Blood Pressure"))

	assert.Equal(t, ModeOffline, result.Mode)
	assert.True(t, result.Checked)
	assert.False(t, result.Verdict.Safe)
	assert.Equal(t, "High sodium or saturated fats.", result.Verdict.Reason)
}

func TestCheckSafetyHealthyProfileShortCircuits(t *testing.T) {
	client := &stubClient{available: true}

	result := newTestService(client).CheckSafety(context.Background(),
		menu.FoodItem{ID: "ITEM-1", Name: "Gulab Jamun"}, health.Profile{HasIssues: false})

	assert.True(t, result.Verdict.Safe)
	assert.True(t, result.Checked)
	assert.Zero(t, client.calls)
}

func TestValidateProfileOfflineAcceptsProfile(t *testing.T) {
	client := &stubClient{available: false}

	result := newTestService(client).ValidateProfile(context.Background(), flaggedProfile("Diabetes"))

	assert.Equal(t, ModeOffline, result.Mode)
	assert.True(t, result.Valid)
}

func TestValidateProfileRemoteRejection(t *testing.T) {
	client := &stubClient{
		available:  true,
		validation: outbound.ProfileValidation{Valid: false, Reason: "Not a recognized condition"},
	}

	result := newTestService(client).ValidateProfile(context.Background(), flaggedProfile("xyzzy"))

	assert.Equal(t, ModeOnline, result.Mode)
	assert.False(t, result.Valid)
}

func TestChatOfflineReply(t *testing.T) {
	client := &stubClient{available: true, chatErr: errors.New("boom")}

	result := newTestService(client).Chat(context.Background(), "hello", flaggedProfile("Diabetes"), nil)

	assert.Equal(t, ModeOffline, result.Mode)
	assert.Equal(t, offlineChatReply, result.Reply)
}

func TestChatOnlineReply(t *testing.T) {
	client := &stubClient{available: true, chatReply: "Try the millet bowl."}

	result := newTestService(client).Chat(context.Background(), "what should I eat?", flaggedProfile("Diabetes"), nil)

	assert.Equal(t, ModeOnline, result.Mode)
	assert.Equal(t, "Try the millet bowl.", result.Reply)
}
