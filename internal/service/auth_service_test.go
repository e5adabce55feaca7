package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"riseadvertising/internal/auth"
	"riseadvertising/internal/model"
)

func newUser(t *testing.T, email, password string, role model.Role) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{ID: uuid.New(), Email: email, PasswordHash: string(hashed), Role: role}
}

func TestAuthService_SignIn(t *testing.T) {
	editor := newUser(t, "editor@rise.example", "password123", model.RoleEditor)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful sign in",
			email:    " Editor@Rise.example ",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "editor@rise.example").Return(editor, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), editor.ID, editor.Email, auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:     "wrong password",
			email:    "editor@rise.example",
			password: "nope-nope",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "editor@rise.example").Return(editor, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			email:    "ghost@rise.example",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "ghost@rise.example").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore, new(MockMailer), "https://rise.example")

			pair, user, err := service.SignIn(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, pair)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, pair.AccessToken)
				assert.NotEmpty(t, pair.RefreshToken)
				assert.Equal(t, int(auth.AccessTokenExpiry.Seconds()), pair.ExpiresIn)

				claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, editor.ID.String(), claims.UserID)
				assert.Equal(t, model.RoleEditor, claims.Role)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := newUser(t, "admin@rise.example", "password123", model.RoleAdmin)
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(user)
	require.NoError(t, err)
	accessToken, err := jwtService.GenerateAccessToken(user)
	require.NoError(t, err)

	t.Run("issues a new access token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(user.ID, user.Email, nil)
		mockRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		service := NewAuthService(mockRepo, jwtService, mockTokenStore, new(MockMailer), "")
		token, err := service.Refresh(context.Background(), refreshToken)
		require.NoError(t, err)
		_, err = jwtService.ValidateAccessToken(token)
		assert.NoError(t, err)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uuid.Nil, "", assert.AnError)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, new(MockMailer), "")
		_, err := service.Refresh(context.Background(), refreshToken)
		assert.Equal(t, ErrInvalidRefreshToken, err)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore), new(MockMailer), "")
		_, err := service.Refresh(context.Background(), accessToken)
		assert.Equal(t, ErrInvalidRefreshToken, err)
	})
}

func TestAuthService_SignOutAndGetSession(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := newUser(t, "editor@rise.example", "password123", model.RoleEditor)
	accessToken, err := jwtService.GenerateAccessToken(user)
	require.NoError(t, err)
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(user)
	require.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, new(MockMailer), "")

	mockTokenStore.On("IsAccessTokenBlacklisted", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()
	session, err := service.GetSession(context.Background(), accessToken)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.UserID)
	assert.True(t, session.IsEditor)
	assert.False(t, session.IsAdmin)

	mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
	mockTokenStore.On("BlacklistAccessToken", mock.Anything, session.TokenID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= auth.AccessTokenExpiry
	})).Return(nil)
	require.NoError(t, service.SignOut(context.Background(), refreshToken, session))

	mockTokenStore.On("IsAccessTokenBlacklisted", mock.Anything, session.TokenID).Return(true, nil)
	session, err = service.GetSession(context.Background(), accessToken)
	assert.NoError(t, err)
	assert.Nil(t, session)

	mockTokenStore.AssertExpectations(t)
}

func TestAuthService_GetSessionWithoutToken(t *testing.T) {
	service := NewAuthService(new(MockUserRepository), auth.NewJWTService("test-secret"), new(MockTokenStore), new(MockMailer), "")

	session, err := service.GetSession(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, session)

	session, err = service.GetSession(context.Background(), "not-a-jwt")
	assert.NoError(t, err)
	assert.Nil(t, session)
}

func TestAuthService_UpdateUser(t *testing.T) {
	user := newUser(t, "editor@rise.example", "password123", model.RoleEditor)
	newEmail := "New@Rise.example"
	newPassword := "longer-password"
	short := "short"
	taken := "admin@rise.example"

	tests := []struct {
		name          string
		upd           UserUpdate
		setupMock     func(*MockUserRepository, *model.User)
		expectedError error
	}{
		{
			name: "email and password",
			upd:  UserUpdate{Email: &newEmail, Password: &newPassword},
			setupMock: func(m *MockUserRepository, u *model.User) {
				m.On("FindByID", mock.Anything, u.ID).Return(u, nil)
				m.On("FindByEmail", mock.Anything, "new@rise.example").Return(nil, gorm.ErrRecordNotFound)
				m.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "new@rise.example" &&
						bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(newPassword)) == nil
				})).Return(nil)
			},
		},
		{
			name: "password too short",
			upd:  UserUpdate{Password: &short},
			setupMock: func(m *MockUserRepository, u *model.User) {
				m.On("FindByID", mock.Anything, u.ID).Return(u, nil)
			},
			expectedError: ErrWeakPassword,
		},
		{
			name: "email taken",
			upd:  UserUpdate{Email: &taken},
			setupMock: func(m *MockUserRepository, u *model.User) {
				m.On("FindByID", mock.Anything, u.ID).Return(u, nil)
				m.On("FindByEmail", mock.Anything, taken).Return(&model.User{Email: taken}, nil)
			},
			expectedError: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			copyUser := *user
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo, &copyUser)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), new(MockMailer), "")
			updated, err := service.UpdateUser(context.Background(), user.ID, tt.upd)
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "new@rise.example", updated.Email)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ForgotPassword(t *testing.T) {
	user := newUser(t, "editor@rise.example", "password123", model.RoleEditor)

	t.Run("known email gets a reset link", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		mockTokenStore.On("StorePasswordReset", mock.Anything, mock.AnythingOfType("string"), user.ID, auth.PasswordResetExpiry).Return(nil)
		mockMailer.On("Send", mock.Anything, user.Email, mock.Anything, mock.MatchedBy(func(html string) bool {
			return strings.Contains(html, "https://rise.example/admin/reset-password?token=")
		})).Return(nil)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore, mockMailer, "https://rise.example/")
		require.NoError(t, service.ForgotPassword(context.Background(), user.Email))

		mockTokenStore.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
	})

	t.Run("unknown email is silently accepted", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmail", mock.Anything, "ghost@rise.example").Return(nil, gorm.ErrRecordNotFound)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), mockMailer, "https://rise.example")
		assert.NoError(t, service.ForgotPassword(context.Background(), "ghost@rise.example"))
		mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	user := newUser(t, "editor@rise.example", "password123", model.RoleEditor)

	mockRepo := new(MockUserRepository)
	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("ConsumePasswordReset", mock.Anything, "good").Return(user.ID, nil)
	mockTokenStore.On("ConsumePasswordReset", mock.Anything, "used").Return(uuid.Nil, assert.AnError)
	mockRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore, new(MockMailer), "")

	require.NoError(t, service.ResetPassword(context.Background(), "good", "brand-new-pass"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("brand-new-pass")))

	assert.Equal(t, ErrInvalidResetToken, service.ResetPassword(context.Background(), "used", "brand-new-pass"))
	assert.Equal(t, ErrWeakPassword, service.ResetPassword(context.Background(), "good", "short"))
}
