package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"agenda/internal/auth"
	"agenda/internal/handler"
	"agenda/internal/repository"
)

// Register wires routes and middleware. The route table mirrors the legacy
// surface: public auth pages, public reset pages, and a login-gated group
// for everything touching contacts.
func Register(
	e *echo.Echo,
	tokens *auth.TokenService,
	sessions auth.SessionStoreInterface,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	contactHandler *handler.ContactHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Public routes
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)

	// Reset pages are public but redirect authenticated users home, so they
	// resolve the session when one is present. Logout sits here too: an
	// anonymous hit must not bounce through /login?next=/logout and undo the
	// session it just established.
	optional := e.Group("", auth.OptionalSession(tokens, sessions, users))
	optional.GET("/logout", authHandler.Logout)
	optional.GET("/reset_request", authHandler.ResetRequestPage)
	optional.POST("/reset_request", authHandler.ResetRequest)
	optional.GET("/reset_password/:token", authHandler.ResetPasswordPage)
	optional.POST("/reset_password/:token", authHandler.ResetPassword)

	// Secured routes (require an authenticated session)
	secured := e.Group("", auth.SessionMiddleware(tokens), auth.LoadUser(sessions, users))
	secured.GET("/", contactHandler.Index)
	secured.GET("/dashboard", contactHandler.DashboardPage)
	secured.POST("/dashboard", contactHandler.CreateContact)
	secured.GET("/update/:id", contactHandler.UpdatePage)
	secured.POST("/update/:id", contactHandler.UpdateContact)
	secured.GET("/delete/:id", contactHandler.DeleteContact)
	secured.POST("/delete/:id", contactHandler.DeleteContact)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
