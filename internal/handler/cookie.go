package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"agenda/internal/auth"
)

const flashCookieName = "flash"

// setSessionCookie installs the signed session token as an HTTP-only cookie.
func setSessionCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie removes the session cookie.
func clearSessionCookie(c echo.Context) {
	setSessionCookie(c, "", -1)
}

// setFlash stores a one-shot message shown on the next rendered page.
func setFlash(c echo.Context, message, category string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash consumes the pending flash message, clearing its cookie.
func popFlash(c echo.Context) (message, category string) {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return "", ""
	}

	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", ""
	}
	category, message, found := strings.Cut(decoded, "|")
	if !found {
		return decoded, "info"
	}
	return message, category
}

// safeNextPath returns the next redirect target if it is a local path,
// otherwise home. Prevents open redirects through the next parameter.
func safeNextPath(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
