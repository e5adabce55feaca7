package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"riseadvertising/internal/auth"
	"riseadvertising/internal/catalog"
	apperrors "riseadvertising/internal/errors"
	"riseadvertising/internal/model"
	"riseadvertising/internal/service"
	"riseadvertising/internal/validation"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return validation.Struct(tv.v, i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validation.New()}
	return e
}

func do(e *echo.Echo, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// MockQuoteService is a mock implementation of QuoteService.
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Validate(in service.QuoteInput) error {
	return m.Called(in).Error(0)
}

func (m *MockQuoteService) Submit(ctx context.Context, in service.QuoteInput) (*model.QuoteRequest, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuoteRequest), args.Error(1)
}

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ServiceCategory), args.Error(1)
}

func (m *MockCatalogService) ListServices(ctx context.Context) ([]model.Service, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *MockCatalogService) GetServiceBySlug(ctx context.Context, slug string) (*model.Service, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockCatalogService) Overview(ctx context.Context) (*service.Overview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Overview), args.Error(1)
}

func (m *MockCatalogService) Browse(ctx context.Context, query, letter string) (*catalog.View, error) {
	args := m.Called(ctx, query, letter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.View), args.Error(1)
}

func (m *MockCatalogService) ListPortfolio(ctx context.Context, tag string) ([]model.PortfolioItem, error) {
	args := m.Called(ctx, tag)
	return args.Get(0).([]model.PortfolioItem), args.Error(1)
}

func (m *MockCatalogService) FeaturedPortfolio(ctx context.Context) ([]model.PortfolioItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.PortfolioItem), args.Error(1)
}

func (m *MockCatalogService) GetSettings(ctx context.Context) (map[string]datatypes.JSON, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]datatypes.JSON), args.Error(1)
}

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*service.TokenPair, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.TokenPair), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) SignInWithEmail(ctx context.Context, email string) (*service.TokenPair, *model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.TokenPair), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, refreshToken string, session *auth.Session) error {
	return m.Called(ctx, refreshToken, session).Error(0)
}

func (m *MockAuthService) GetSession(ctx context.Context, accessToken string) (*auth.Session, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthService) UpdateUser(ctx context.Context, id uuid.UUID, upd service.UserUpdate) (*model.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

// MockCategoryService is a mock implementation of CategoryService.
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]model.ServiceCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ServiceCategory), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id uuid.UUID) (*model.ServiceCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ServiceCategory), args.Error(1)
}

func (m *MockCategoryService) Draft(ctx context.Context) (*model.ServiceCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).(*model.ServiceCategory), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, in service.CategoryInput) (*model.ServiceCategory, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ServiceCategory), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id uuid.UUID, in service.CategoryInput) (*model.ServiceCategory, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ServiceCategory), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	return m.Called(ctx, id, confirmed).Error(0)
}

func (m *MockCategoryService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*model.ServiceCategory, error) {
	args := m.Called(ctx, id, published)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ServiceCategory), args.Error(1)
}

func TestQuoteHandler_Submit(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMock    func(*MockQuoteService)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "stored request answers submitted",
			body: `{"name":"Abebe","email":"abebe@example.com","services":["Signage"],"message":"Need a shop sign"}`,
			setupMock: func(m *MockQuoteService) {
				m.On("Submit", mock.Anything, mock.MatchedBy(func(in service.QuoteInput) bool {
					return in.Name == "Abebe" && len(in.Services) == 1
				})).Return(&model.QuoteRequest{ID: uuid.New(), Name: "Abebe", Status: model.QuoteStatusNew}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "field errors are returned per field",
			body: `{"name":"A"}`,
			setupMock: func(m *MockQuoteService) {
				m.On("Submit", mock.Anything, mock.Anything).
					Return(nil, apperrors.NewValidationError(map[string]string{"name": "must be at least 2 characters"}))
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_ERROR",
		},
		{
			name:         "malformed body",
			body:         `{"name":`,
			setupMock:    func(m *MockQuoteService) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes := new(MockQuoteService)
			tt.setupMock(quotes)
			e := newEcho()
			e.POST("/api/quotes", NewQuoteHandler(quotes, nil).Submit)

			rec := do(e, http.MethodPost, "/api/quotes", tt.body, nil)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedErr != "" {
				body := decodeError(t, rec)
				assert.Equal(t, tt.expectedErr, body.Code)
				if tt.expectedErr == "VALIDATION_ERROR" {
					assert.Contains(t, body.Fields, "name")
				}
			} else {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "submitted", resp["state"])
				assert.NotNil(t, resp["quote"])
			}
			quotes.AssertExpectations(t)
		})
	}
}

func TestSiteHandler_GetService(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("GetServiceBySlug", mock.Anything, "roll-up-banners").
		Return(&model.Service{Title: "Roll-up Banners", Slug: "roll-up-banners"}, nil)
	svc.On("GetServiceBySlug", mock.Anything, "missing").
		Return(nil, apperrors.ErrServiceNotFound)

	e := newEcho()
	e.GET("/api/site/services/:slug", NewSiteHandler(svc).GetService)

	rec := do(e, http.MethodGet, "/api/site/services/roll-up-banners", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Roll-up Banners")

	rec = do(e, http.MethodGet, "/api/site/services/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SERVICE_NOT_FOUND", decodeError(t, rec).Code)
	svc.AssertExpectations(t)
}

func TestSiteHandler_Content(t *testing.T) {
	e := newEcho()
	e.GET("/api/site/content", NewSiteHandler(nil).Content)

	rec := do(e, http.MethodGet, "/api/site/content", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var content catalog.Content
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &content))
	assert.Len(t, content.Categories, len(catalog.DefaultCategories))
}

func TestAuthHandler_Login(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "admin@example.com", Role: model.RoleAdmin}

	tests := []struct {
		name         string
		body         string
		setupMock    func(*MockAuthService)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "valid credentials set the session cookies",
			body: `{"email":"admin@example.com","password":"secret123"}`,
			setupMock: func(m *MockAuthService) {
				m.On("SignIn", mock.Anything, "admin@example.com", "secret123").
					Return(&service.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, user, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"email":"admin@example.com","password":"nope"}`,
			setupMock: func(m *MockAuthService) {
				m.On("SignIn", mock.Anything, "admin@example.com", "nope").
					Return(nil, nil, service.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  "INVALID_CREDENTIALS",
		},
		{
			name:         "missing email",
			body:         `{"password":"secret123"}`,
			setupMock:    func(m *MockAuthService) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := new(MockAuthService)
			tt.setupMock(authSvc)
			e := newEcho()
			e.POST("/api/auth/login", NewAuthHandler(authSvc, nil, false).Login)

			rec := do(e, http.MethodPost, "/api/auth/login", tt.body, nil)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decodeError(t, rec).Code)
				return
			}
			cookies := rec.Result().Cookies()
			names := make([]string, 0, len(cookies))
			for _, ck := range cookies {
				names = append(names, ck.Name)
				assert.True(t, ck.HttpOnly)
			}
			assert.ElementsMatch(t, []string{auth.AccessTokenCookie, "refresh_token"}, names)
			authSvc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_SessionIsNullWhenSignedOut(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("GetSession", mock.Anything, "").Return(nil, nil)

	e := newEcho()
	e.GET("/api/auth/session", NewAuthHandler(authSvc, nil, false).Session)

	rec := do(e, http.MethodGet, "/api/auth/session", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"session":null}`, rec.Body.String())
}

func TestAuthHandler_SessionReadsCookie(t *testing.T) {
	session := &auth.Session{UserID: uuid.New(), Email: "ed@example.com", Role: model.RoleEditor, IsEditor: true}
	authSvc := new(MockAuthService)
	authSvc.On("GetSession", mock.Anything, "tok").Return(session, nil)

	e := newEcho()
	e.GET("/api/auth/session", NewAuthHandler(authSvc, nil, false).Session)

	rec := do(e, http.MethodGet, "/api/auth/session", "", map[string]string{"Cookie": auth.AccessTokenCookie + "=tok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_editor":true`)
}

func TestAuthHandler_ForgotPasswordAlwaysSucceeds(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("ForgotPassword", mock.Anything, "nobody@example.com").Return(nil)

	e := newEcho()
	e.POST("/api/auth/forgot-password", NewAuthHandler(authSvc, nil, false).ForgotPassword)

	rec := do(e, http.MethodPost, "/api/auth/forgot-password", `{"email":"nobody@example.com"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	authSvc.AssertExpectations(t)
}

func TestAuthHandler_GoogleLoginNotConfigured(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(new(MockAuthService), nil, false)
	e.GET("/api/auth/google/login", h.GoogleLogin)
	e.GET("/api/auth/google/callback", h.GoogleCallback)

	rec := do(e, http.MethodGet, "/api/auth/google/login", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/api/auth/google/callback?state=x&code=y", "", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login?error=google", rec.Header().Get(echo.HeaderLocation))
}

func TestCategoryHandler_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name         string
		query        string
		confirmed    bool
		err          error
		expectedCode int
	}{
		{name: "confirmed delete", query: "?confirm=true", confirmed: true, expectedCode: http.StatusOK},
		{name: "unconfirmed delete", query: "", confirmed: false, err: apperrors.ErrConfirmationRequired, expectedCode: http.StatusBadRequest},
		{name: "unknown category", query: "?confirm=true", confirmed: true, err: apperrors.ErrCategoryNotFound, expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCategoryService)
			svc.On("Delete", mock.Anything, id, tt.confirmed).Return(tt.err)
			e := newEcho()
			e.DELETE("/api/admin/categories/:id", NewCategoryHandler(svc).Delete)

			rec := do(e, http.MethodDelete, "/api/admin/categories/"+id.String()+tt.query, "", nil)

			assert.Equal(t, tt.expectedCode, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestCategoryHandler_InvalidID(t *testing.T) {
	e := newEcho()
	e.GET("/api/admin/categories/:id", NewCategoryHandler(new(MockCategoryService)).Get)

	rec := do(e, http.MethodGet, "/api/admin/categories/not-a-uuid", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_UUID", decodeError(t, rec).Code)
}

func TestPageHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>shell</html>"), 0o644))

	e := newEcho()
	h := NewPageHandler(dir)
	e.GET("/", h.Shell)
	e.RouteNotFound("/*", h.NotFound)

	rec := do(e, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shell")

	rec = do(e, http.MethodGet, "/no-such-page", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	missing := NewPageHandler(filepath.Join(dir, "missing"))
	e2 := newEcho()
	e2.RouteNotFound("/*", missing.NotFound)
	rec = do(e2, http.MethodGet, "/x", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}
