package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"riseadvertising/internal/auth"
	"riseadvertising/internal/model"
	"riseadvertising/internal/notify"
	"riseadvertising/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 8
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when changing to an email another user has.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrInvalidResetToken is returned when a password reset link is unknown or used.
	ErrInvalidResetToken = errors.New("invalid or expired reset link")
	// ErrWeakPassword is returned for passwords shorter than minPasswordLength.
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters", minPasswordLength)
)

var resetTmpl = template.Must(template.New("reset").Parse(`<p>Someone asked to reset the password for the Rise Advertising admin account {{.Email}}.</p>
<p><a href="{{.Link}}">Choose a new password</a></p>
<p>The link expires in one hour. If you did not ask for this, ignore this e-mail.</p>`))

// TokenPair is what a successful sign-in returns.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// UserUpdate changes the signed-in user's email and/or password.
type UserUpdate struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password"`
}

// AuthService handles admin authentication and the session lifecycle.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*TokenPair, *model.User, error)
	SignInWithEmail(ctx context.Context, email string) (*TokenPair, *model.User, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	SignOut(ctx context.Context, refreshToken string, session *auth.Session) error
	GetSession(ctx context.Context, accessToken string) (*auth.Session, error)
	UpdateUser(ctx context.Context, id uuid.UUID, upd UserUpdate) (*model.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	mailer     notify.Mailer
	siteURL    string
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, mailer notify.Mailer, siteURL string) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		mailer:     mailer,
		siteURL:    strings.TrimRight(siteURL, "/"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignIn verifies the password and issues an access/refresh token pair.
func (s *authService) SignIn(ctx context.Context, email, password string) (*TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// SignInWithEmail signs in an existing user whose email was verified by an
// external identity provider. Unknown emails are rejected, never created.
func (s *authService) SignInWithEmail(ctx context.Context, email string) (*TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *authService) issue(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(auth.AccessTokenExpiry.Seconds()),
	}, nil
}

// Refresh validates a refresh token and returns a new access token. The role
// is re-read from the users table so demotions apply on the next refresh.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedUserID.String() != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, storedUserID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// SignOut forgets the refresh token and blacklists the current access token
// for the rest of its lifetime. Both inputs are optional.
func (s *authService) SignOut(ctx context.Context, refreshToken string, session *auth.Session) error {
	if refreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
		if err != nil {
			return ErrInvalidRefreshToken
		}
		if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
	}

	if session != nil && session.TokenID != "" {
		ttl := time.Until(session.ExpiresAt)
		if ttl > 0 {
			if err := s.tokenStore.BlacklistAccessToken(ctx, session.TokenID, ttl); err != nil {
				return fmt.Errorf("blacklist access token: %w", err)
			}
		}
	}
	return nil
}

// GetSession returns the session for an access token, or nil when the token
// is missing, invalid, expired or signed out.
func (s *authService) GetSession(ctx context.Context, accessToken string) (*auth.Session, error) {
	if accessToken == "" {
		return nil, nil
	}
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, nil
	}
	session, err := auth.SessionFromClaims(claims)
	if err != nil {
		return nil, nil
	}
	blacklisted, err := s.tokenStore.IsAccessTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check blacklist: %w", err)
	}
	if blacklisted {
		return nil, nil
	}
	return session, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *authService) UpdateUser(ctx context.Context, id uuid.UUID, upd UserUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		if email != user.Email {
			existing, err := s.userRepo.FindByEmail(ctx, email)
			if err == nil && existing != nil {
				return nil, ErrEmailTaken
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("check email: %w", err)
			}
			user.Email = email
		}
	}

	if upd.Password != nil {
		hashed, err := hashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// ForgotPassword e-mails a one-hour reset link. Unknown addresses are
// silently ignored so the response does not reveal which accounts exist.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("forgot password lookup failed")
		}
		return nil
	}

	token := strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")
	if err := s.tokenStore.StorePasswordReset(ctx, token, user.ID, auth.PasswordResetExpiry); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	var body strings.Builder
	link := s.siteURL + "/admin/reset-password?token=" + token
	if err := resetTmpl.Execute(&body, map[string]string{"Email": user.Email, "Link": link}); err != nil {
		return fmt.Errorf("render reset e-mail: %w", err)
	}
	if err := s.mailer.Send(ctx, user.Email, "Reset your Rise Advertising admin password", body.String()); err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("send reset e-mail failed")
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}

	userID, err := s.tokenStore.ConsumePasswordReset(ctx, token)
	if err != nil {
		return ErrInvalidResetToken
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrInvalidResetToken
	}
	user.PasswordHash = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
