// Package user provides the application layer for account management.
package user

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/zaikabox/v1/pkg/errors"

	"github.com/zaikabox/v1/internal/application/advisory"
	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/domain/user"
	"github.com/zaikabox/v1/internal/ports/outbound"
)

const tokenTTL = 24 * time.Hour

// Service implements the account use cases.
type Service struct {
	userRepo  outbound.UserRepository
	advisory  *advisory.Service
	jwtSecret string
	logger    *zap.Logger
}

// NewService creates a new account service.
func NewService(
	userRepo outbound.UserRepository,
	advisorySvc *advisory.Service,
	jwtSecret string,
	logger *zap.Logger,
) *Service {
	return &Service{
		userRepo:  userRepo,
		advisory:  advisorySvc,
		jwtSecret: jwtSecret,
		logger:    logger.Named("user-service"),
	}
}

// RegisterCommand contains the registration payload.
type RegisterCommand struct {
	Username      string         `json:"username" validate:"required,min=3,max=50"`
	Password      string         `json:"password" validate:"required,min=6"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email" validate:"omitempty,email"`
	Phone         string         `json:"phone"`
	Address       user.Address   `json:"address"`
	HealthProfile health.Profile `json:"healthProfile"`
}

// LoginCommand contains the login payload.
type LoginCommand struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User        *user.User    `json:"user"`
	AccessToken string        `json:"accessToken"`
	ExpiresIn   int           `json:"expiresIn"`
	Advisory    advisory.Mode `json:"advisoryMode"`
}

// Claims are the JWT claims carried by access tokens.
type Claims struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// Register creates a new account. The declared health profile is checked
// against the remote advisor when one is reachable; a rejected profile
// blocks registration, an unreachable advisor does not.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*AuthResponse, error) {
	s.logger.Info("Registering new user", zap.String("username", cmd.Username))

	exists, err := s.userRepo.ExistsByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewUsernameExistsError(cmd.Username)
	}

	validation := s.advisory.ValidateProfile(ctx, cmd.HealthProfile)
	if !validation.Valid {
		return nil, apperrors.NewValidationError(validation.Reason)
	}
	if validation.DietaryMemo != "" {
		cmd.HealthProfile.DietaryMemo = validation.DietaryMemo
	}

	newUser, err := user.New(cmd.Username, cmd.Password, cmd.HealthProfile)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	newUser.FirstName = cmd.FirstName
	newUser.LastName = cmd.LastName
	newUser.Email = cmd.Email
	newUser.Phone = cmd.Phone
	newUser.Address = cmd.Address

	if err := s.userRepo.Save(ctx, newUser); err != nil {
		return nil, err
	}

	token, err := s.generateToken(newUser)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate token")
	}

	s.logger.Info("User registered",
		zap.String("user_id", newUser.ID.String()),
		zap.String("username", newUser.Username),
		zap.String("advisory_mode", string(validation.Mode)),
	)

	return &AuthResponse{
		User:        newUser,
		AccessToken: token,
		ExpiresIn:   int(tokenTTL.Seconds()),
		Advisory:    validation.Mode,
	}, nil
}

// Login authenticates an account.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (*AuthResponse, error) {
	account, err := s.userRepo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeUserNotFound) {
			return nil, apperrors.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if !account.CheckPassword(cmd.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", cmd.Username))
		return nil, apperrors.NewInvalidCredentialsError()
	}

	token, err := s.generateToken(account)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate token")
	}

	s.logger.Info("User logged in", zap.String("username", account.Username))

	return &AuthResponse{
		User:        account,
		AccessToken: token,
		ExpiresIn:   int(tokenTTL.Seconds()),
	}, nil
}

// GetByUsername loads one account.
func (s *Service) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

// UpdateHealthProfile replaces an account's health profile. The same
// remote validation rules as registration apply.
func (s *Service) UpdateHealthProfile(ctx context.Context, username string, profile health.Profile) (*user.User, error) {
	account, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	validation := s.advisory.ValidateProfile(ctx, profile)
	if !validation.Valid {
		return nil, apperrors.NewValidationError(validation.Reason)
	}
	if validation.DietaryMemo != "" {
		profile.DietaryMemo = validation.DietaryMemo
	}

	if err := account.UpdateHealthProfile(profile); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Health profile updated", zap.String("username", username))
	return account, nil
}

// ParseToken validates an access token and returns its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.CodeUnauthorized, "Invalid or expired token", "")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.NewAppError(apperrors.CodeUnauthorized, "Invalid or expired token", "")
	}
	return claims, nil
}

func (s *Service) generateToken(account *user.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   account.ID,
		Username: account.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			Subject:   account.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
