package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"riseadvertising/internal/auth"
	"riseadvertising/internal/errors"
	"riseadvertising/internal/validation"
)

// SessionResolver turns an access token into a session. It returns nil, nil
// when the token is missing, invalid or revoked.
type SessionResolver interface {
	GetSession(ctx context.Context, accessToken string) (*auth.Session, error)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator returns the validator used by every handler.
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validator: validation.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return validation.Struct(cv.validator, i)
}

// requestLogger logs one zerolog line per request.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

var errNoSession = echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
	Error: "sign in to continue",
	Code:  "UNAUTHORIZED",
})

// requireSession guards the admin API. The token comes from the bearer header
// or the access token cookie; the resolved session is placed in the request
// context for handlers.
func requireSession(sessions SessionResolver) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + auth.AccessTokenCookie,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			session, err := sessions.GetSession(c.Request().Context(), token)
			if err != nil {
				return nil, err
			}
			if session == nil {
				return nil, auth.ErrInvalidToken
			}
			c.SetRequest(c.Request().WithContext(auth.WithSession(c.Request().Context(), session)))
			return session, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			log.Debug().Err(err).Str("path", c.Path()).Msg("admin request without session")
			return errNoSession
		},
	})
}

// requireEditor rejects sessions without the editor role when enforce is set.
func requireEditor(enforce bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enforce {
				return next(c)
			}
			session := auth.SessionFrom(c.Request().Context())
			if session == nil {
				return errNoSession
			}
			if !session.IsEditor {
				httpErr := errors.MapErrorToHTTP(errors.ErrForbidden)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// pageGate protects admin pages. Signed-out visitors are sent to the login
// page before any protected body is written.
func pageGate(sessions SessionResolver, enforceEditor bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			session, err := sessions.GetSession(ctx, auth.TokenFromRequest(c.Request()))
			if err != nil {
				log.Error().Err(err).Msg("page gate session lookup failed")
			}
			if session == nil {
				return c.Redirect(http.StatusSeeOther, "/admin/login")
			}
			if enforceEditor && !session.IsEditor {
				return c.Redirect(http.StatusSeeOther, "/admin/login?error=forbidden")
			}
			c.SetRequest(c.Request().WithContext(auth.WithSession(c.Request().Context(), session)))
			return next(c)
		}
	}
}
