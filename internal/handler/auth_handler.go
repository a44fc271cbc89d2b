package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"agenda/internal/auth"
	apperrors "agenda/internal/errors"
	"agenda/internal/service"
)

// AuthHandler handles registration, login, logout, and password reset pages.
type AuthHandler struct {
	authService   service.AuthService
	sessionMaxAge int
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessionMaxAge int) *AuthHandler {
	return &AuthHandler{authService: authService, sessionMaxAge: sessionMaxAge}
}

// LoginForm mirrors the legacy login form fields and rules.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email,max=60"`
	Password string `form:"password" validate:"required,max=60"`
}

// RegisterForm mirrors the legacy registration form fields and rules.
type RegisterForm struct {
	Username        string `form:"username" validate:"required,min=2,max=20"`
	Email           string `form:"email" validate:"required,email,max=60"`
	Password        string `form:"password" validate:"required,max=60"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// ResetRequestForm carries the email for a password-reset request.
type ResetRequestForm struct {
	Email string `form:"email" validate:"required,email,max=60"`
}

// ResetPasswordForm carries the replacement password.
type ResetPasswordForm struct {
	Password        string `form:"password" validate:"required,max=60"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return h.renderLogin(c, "")
}

// Login authenticates the submitted credentials and establishes a session.
// On success the user is sent to the originally requested page, or home.
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return h.renderLogin(c, "Login unsuccessful. Please check email and password.")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderLogin(c, "Login unsuccessful. Please check email and password.")
	}

	token, _, err := h.authService.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		if err == apperrors.ErrInvalidCredentials {
			return h.renderLogin(c, "Login unsuccessful. Please check email and password.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	setSessionCookie(c, token, h.sessionMaxAge)
	return c.Redirect(http.StatusFound, safeNextPath(c.QueryParam("next")))
}

// Logout revokes the session and clears the cookie. Always succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	if claims := auth.SessionClaims(c); claims != nil {
		_ = h.authService.Logout(c.Request().Context(), claims.ID)
	}
	clearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/login")
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return h.renderRegister(c, "")
}

// Register creates a new account. Uniqueness violations come back as
// field-specific form errors; success redirects to login.
func (h *AuthHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		return h.renderRegister(c, "Please check the submitted fields.")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderRegister(c, "Please check the submitted fields.")
	}

	_, err := h.authService.Register(c.Request().Context(), form.Username, form.Email, form.Password)
	if err != nil {
		switch err {
		case apperrors.ErrUsernameTaken, apperrors.ErrEmailTaken:
			return h.renderRegister(c, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
		}
	}

	setFlash(c, "Your account has been created!", "success")
	return c.Redirect(http.StatusFound, "/login")
}

// ResetRequestPage renders the reset-request form. Authenticated users are
// sent home instead.
func (h *AuthHandler) ResetRequestPage(c echo.Context) error {
	if auth.CurrentUser(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}
	message, category := popFlash(c)
	return c.Render(http.StatusOK, "reset_request.html", echo.Map{
		"Flash":         message,
		"FlashCategory": category,
	})
}

// ResetRequest issues a reset token and mails it. The response is identical
// whether or not the email belongs to an account.
func (h *AuthHandler) ResetRequest(c echo.Context) error {
	if auth.CurrentUser(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}

	var form ResetRequestForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusOK, "reset_request.html", echo.Map{"Error": "Please enter a valid email address."})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "reset_request.html", echo.Map{"Error": "Please enter a valid email address."})
	}

	if err := h.authService.RequestPasswordReset(c.Request().Context(), form.Email); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "reset request failed")
	}

	setFlash(c, "An email has been sent with instructions to reset your password.", "info")
	return c.Redirect(http.StatusFound, "/")
}

// ResetPasswordPage verifies the token and renders the new-password form.
// Invalid or expired tokens bounce back to the request step with a warning.
func (h *AuthHandler) ResetPasswordPage(c echo.Context) error {
	if auth.CurrentUser(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}

	token := c.Param("token")
	if _, err := h.authService.VerifyResetToken(c.Request().Context(), token); err != nil {
		setFlash(c, "There is an invalid or expired token", "warning")
		return c.Redirect(http.StatusFound, "/reset_request")
	}

	message, category := popFlash(c)
	return c.Render(http.StatusOK, "reset_password.html", echo.Map{
		"Token":         token,
		"Flash":         message,
		"FlashCategory": category,
	})
}

// ResetPassword replaces the password behind a valid token.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	if auth.CurrentUser(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}

	token := c.Param("token")
	var form ResetPasswordForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusOK, "reset_password.html", echo.Map{"Token": token, "Error": "Passwords must match."})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "reset_password.html", echo.Map{"Token": token, "Error": "Passwords must match."})
	}

	if err := h.authService.ResetPassword(c.Request().Context(), token, form.Password); err != nil {
		if err == apperrors.ErrTokenInvalid {
			setFlash(c, "There is an invalid or expired token", "warning")
			return c.Redirect(http.StatusFound, "/reset_request")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "password reset failed")
	}

	setFlash(c, "Your password has been reset.", "info")
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) renderLogin(c echo.Context, formError string) error {
	message, category := popFlash(c)
	return c.Render(http.StatusOK, "login.html", echo.Map{
		"Error":         formError,
		"Flash":         message,
		"FlashCategory": category,
		"Next":          url.QueryEscape(c.QueryParam("next")),
	})
}

func (h *AuthHandler) renderRegister(c echo.Context, formError string) error {
	message, category := popFlash(c)
	return c.Render(http.StatusOK, "register.html", echo.Map{
		"Error":         formError,
		"Flash":         message,
		"FlashCategory": category,
	})
}
