package user

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/zaikabox/v1/pkg/errors"

	"github.com/zaikabox/v1/internal/application/advisory"
	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/domain/menu"
	"github.com/zaikabox/v1/internal/domain/user"
	"github.com/zaikabox/v1/internal/ports/outbound"
)

// fakeUserRepo is an in-memory user store.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User)}
}

func (r *fakeUserRepo) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return apperrors.NewUsernameExistsError(u.Username)
	}
	r.users[u.Username] = u
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; !ok {
		return apperrors.NewUserNotFoundError(u.Username)
	}
	r.users[u.Username] = u
	return nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, apperrors.NewUserNotFoundError(username)
	}
	return u, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[username]
	return ok, nil
}

// stubAdvisoryClient scripts the remote validation outcome.
type stubAdvisoryClient struct {
	available  bool
	validation outbound.ProfileValidation
	err        error
}

func (c *stubAdvisoryClient) Available() bool { return c.available }
func (c *stubAdvisoryClient) Recommend(ctx context.Context, profile health.Profile) ([]menu.FoodItem, error) {
	return nil, apperrors.NewAIConfigurationError()
}
func (c *stubAdvisoryClient) SafetyCheck(ctx context.Context, item menu.FoodItem, profile health.Profile) (outbound.SafetyVerdict, error) {
	return outbound.SafetyVerdict{}, apperrors.NewAIConfigurationError()
}
func (c *stubAdvisoryClient) ValidateProfile(ctx context.Context, profile health.Profile) (outbound.ProfileValidation, error) {
	if c.err != nil {
		return outbound.ProfileValidation{}, c.err
	}
	return c.validation, nil
}
func (c *stubAdvisoryClient) Chat(ctx context.Context, message string, profile health.Profile, history []outbound.ChatTurn) (string, error) {
	return "", apperrors.NewAIConfigurationError()
}

func newTestService(client outbound.AdvisoryClient) (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	advisorySvc := advisory.NewService(
		client,
		advisory.NewRecommender(rand.New(rand.NewSource(1))),
		menu.NewCatalog(nil),
		zap.NewNop(),
	)
	return NewService(repo, advisorySvc, "test-secret", zap.NewNop()), repo
}

func registerCmd() RegisterCommand {
	return RegisterCommand{
		Username: "asha",
		Password: "secret123",
		HealthProfile: health.Profile{
			HasIssues:   true,
			DiseaseName: "Diabetes",
			Stage:       health.StageBeginning,
		},
	}
}

func TestRegisterSuccess(t *testing.T) {
	svc, repo := newTestService(&stubAdvisoryClient{available: false})

	resp, err := svc.Register(context.Background(), registerCmd())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int((24 * 60 * 60)), resp.ExpiresIn)
	assert.Equal(t, "asha", resp.User.Username)
	assert.NotEqual(t, "secret123", resp.User.PasswordHash)

	stored, err := repo.FindByUsername(context.Background(), "asha")
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("secret123"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(&stubAdvisoryClient{})

	_, err := svc.Register(context.Background(), registerCmd())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerCmd())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUsernameExists))
}

func TestRegisterRejectedProfile(t *testing.T) {
	svc, _ := newTestService(&stubAdvisoryClient{
		available:  true,
		validation: outbound.ProfileValidation{Valid: false, Reason: "Not a recognized medical condition."},
	})

	_, err := svc.Register(context.Background(), registerCmd())

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	assert.Contains(t, err.Error(), "Not a recognized medical condition.")
}

func TestRegisterAttachesDietaryMemo(t *testing.T) {
	svc, repo := newTestService(&stubAdvisoryClient{
		available:  true,
		validation: outbound.ProfileValidation{Valid: true, DietaryMemo: "Limit refined sugar."},
	})

	_, err := svc.Register(context.Background(), registerCmd())
	require.NoError(t, err)

	stored, err := repo.FindByUsername(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, "Limit refined sugar.", stored.HealthProfile.DietaryMemo)
}

func TestRegisterProceedsWhenAdvisorUnreachable(t *testing.T) {
	svc, _ := newTestService(&stubAdvisoryClient{
		available: true,
		err:       apperrors.NewAINetworkError(errors.New("connection refused")),
	})

	resp, err := svc.Register(context.Background(), registerCmd())

	require.NoError(t, err)
	assert.Equal(t, advisory.ModeOffline, resp.Advisory)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newTestService(&stubAdvisoryClient{})

	cmd := registerCmd()
	cmd.Password = "abc"
	_, err := svc.Register(context.Background(), cmd)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService(&stubAdvisoryClient{})

	_, err := svc.Register(context.Background(), registerCmd())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginCommand{Username: "asha", Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "asha", resp.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(&stubAdvisoryClient{})

	_, err := svc.Register(context.Background(), registerCmd())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginCommand{Username: "asha", Password: "wrong"})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidCredentials))
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(&stubAdvisoryClient{})

	_, err := svc.Login(context.Background(), LoginCommand{Username: "nobody", Password: "secret123"})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidCredentials),
		"missing user must look identical to a wrong password")
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _ := newTestService(&stubAdvisoryClient{})

	resp, err := svc.Register(context.Background(), registerCmd())
	require.NoError(t, err)

	claims, err := svc.ParseToken(resp.AccessToken)

	require.NoError(t, err)
	assert.Equal(t, "asha", claims.Username)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestParseTokenRejectsForgedSecret(t *testing.T) {
	issuer, _ := newTestService(&stubAdvisoryClient{})
	resp, err := issuer.Register(context.Background(), registerCmd())
	require.NoError(t, err)

	verifier := &Service{jwtSecret: "other-secret", logger: zap.NewNop()}
	_, err = verifier.ParseToken(resp.AccessToken)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(&stubAdvisoryClient{})

	_, err := svc.ParseToken("not-a-token")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
}

func TestUpdateHealthProfile(t *testing.T) {
	svc, repo := newTestService(&stubAdvisoryClient{})

	_, err := svc.Register(context.Background(), registerCmd())
	require.NoError(t, err)

	updated, err := svc.UpdateHealthProfile(context.Background(), "asha", health.Profile{
		HasIssues:   true,
		DiseaseName: "High Blood Pressure",
		Stage:       health.StageIntermediate,
	})

	require.NoError(t, err)
	assert.Equal(t, "High Blood Pressure", updated.HealthProfile.DiseaseName)

	stored, err := repo.FindByUsername(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, "High Blood Pressure", stored.HealthProfile.DiseaseName)
}

func TestUpdateHealthProfileRejected(t *testing.T) {
	svc, _ := newTestService(&stubAdvisoryClient{})

	_, err := svc.Register(context.Background(), registerCmd())
	require.NoError(t, err)

	_, err = svc.UpdateHealthProfile(context.Background(), "asha", health.Profile{HasIssues: true})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
}
