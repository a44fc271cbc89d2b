package auth

import (
	"net/http"
	"net/url"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "agenda/internal/errors"
	"agenda/internal/model"
	"agenda/internal/repository"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "session"

	claimsContextKey = "session_claims"
	userContextKey   = "current_user"
)

// SessionMiddleware validates the signed session cookie. Requests without a
// valid token are redirected to the login page with the original path in the
// next parameter.
func SessionMiddleware(tokens *TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + SessionCookieName,
		ContextKey:  claimsContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.VerifySession(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return redirectToLogin(c)
		},
	})
}

// LoadUser resolves the authenticated user behind a validated session token:
// the session record must still exist in Redis and the user must still exist
// in the store. On success the user is placed in the request context.
func LoadUser(sessions SessionStoreInterface, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*Claims)
			if !ok {
				return redirectToLogin(c)
			}

			ctx := c.Request().Context()
			userID, err := sessions.Get(ctx, claims.ID)
			if err != nil || userID != claims.UserID {
				// Session revoked by logout or expired server-side.
				return redirectToLogin(c)
			}

			user, err := users.FindByID(ctx, claims.UserID)
			if err != nil {
				return redirectToLogin(c)
			}

			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// OptionalSession resolves the current user when a valid session cookie is
// present but lets anonymous requests through. Used by the password-reset
// pages, which redirect already-authenticated users home.
func OptionalSession(tokens *TokenService, sessions SessionStoreInterface, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims, err := tokens.VerifySession(cookie.Value)
			if err != nil {
				return next(c)
			}

			ctx := c.Request().Context()
			userID, err := sessions.Get(ctx, claims.ID)
			if err != nil || userID != claims.UserID {
				return next(c)
			}

			user, err := users.FindByID(ctx, claims.UserID)
			if err != nil {
				return next(c)
			}

			c.Set(claimsContextKey, claims)
			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// SetCurrentUser places the resolved user in the request context.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the authenticated user set by LoadUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// SessionClaims returns the validated session claims, or nil outside an
// authenticated request.
func SessionClaims(c echo.Context) *Claims {
	claims, _ := c.Get(claimsContextKey).(*Claims)
	return claims
}

// RequireOwnership is the single authorization rule for contact access:
// only the owner may read the edit view, update, or delete a contact.
func RequireOwnership(user *model.User, ownerID uint) error {
	if user == nil || user.ID != ownerID {
		return apperrors.ErrForbidden
	}
	return nil
}

func redirectToLogin(c echo.Context) error {
	// RequestURI keeps the query string so search and page survive the
	// login round-trip.
	next := c.Request().URL.RequestURI()
	return c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(next))
}
