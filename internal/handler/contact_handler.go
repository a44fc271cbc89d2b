package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agenda/internal/auth"
	apperrors "agenda/internal/errors"
	"agenda/internal/service"
)

// ContactHandler handles the contact list and the create/update/delete pages.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactForm mirrors the legacy contact form fields and rules. Number is
// the phone number, integer-valued with a large range.
type ContactForm struct {
	FirstName string `form:"first_name" validate:"required,max=30"`
	LastName  string `form:"last_name" validate:"max=30"`
	Email     string `form:"email" validate:"required,email,max=60"`
	Number    int64  `form:"number" validate:"required"`
}

// Index renders the paginated contact list, optionally narrowed by search.
func (h *ContactHandler) Index(c echo.Context) error {
	user := auth.CurrentUser(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	search := c.QueryParam("search")

	contactPage, err := h.contactService.List(c.Request().Context(), user.ID, search, page)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list contacts")
	}

	message, category := popFlash(c)
	return c.Render(http.StatusOK, "index.html", echo.Map{
		"Page":          contactPage,
		"PrevPage":      contactPage.Page - 1,
		"NextPage":      contactPage.Page + 1,
		"Flash":         message,
		"FlashCategory": category,
	})
}

// DashboardPage renders the create-contact form.
func (h *ContactHandler) DashboardPage(c echo.Context) error {
	message, category := popFlash(c)
	return c.Render(http.StatusOK, "dashboard.html", echo.Map{
		"Flash":         message,
		"FlashCategory": category,
	})
}

// CreateContact creates a contact owned by the current user.
func (h *ContactHandler) CreateContact(c echo.Context) error {
	user := auth.CurrentUser(c)

	var form ContactForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusOK, "dashboard.html", echo.Map{"Error": "Please check the submitted fields."})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "dashboard.html", echo.Map{"Error": "Please check the submitted fields."})
	}

	_, err := h.contactService.Create(c.Request().Context(), user.ID, service.ContactInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Number:    form.Number,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create contact")
	}

	setFlash(c, "Contact created successfully", "success")
	return c.Redirect(http.StatusFound, "/")
}

// UpdatePage renders the update form pre-filled with the stored contact.
// Non-mutating; ownership is still enforced before anything is shown.
func (h *ContactHandler) UpdatePage(c echo.Context) error {
	user := auth.CurrentUser(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	contact, err := h.contactService.Get(c.Request().Context(), user, id)
	if err != nil {
		return htmlError(err)
	}

	message, category := popFlash(c)
	return c.Render(http.StatusOK, "update.html", echo.Map{
		"Contact":       contact,
		"Flash":         message,
		"FlashCategory": category,
	})
}

// UpdateContact applies the submitted fields to an owned contact.
func (h *ContactHandler) UpdateContact(c echo.Context) error {
	user := auth.CurrentUser(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var form ContactForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusOK, "update.html", echo.Map{"Error": "Please check the submitted fields."})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "update.html", echo.Map{"Error": "Please check the submitted fields."})
	}

	_, err = h.contactService.Update(c.Request().Context(), user, id, service.ContactInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Number:    form.Number,
	})
	if err != nil {
		return htmlError(err)
	}

	setFlash(c, "Your contact has been updated.", "info")
	return c.Redirect(http.StatusFound, "/")
}

// DeleteContact destroys an owned contact.
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	user := auth.CurrentUser(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.contactService.Delete(c.Request().Context(), user, id); err != nil {
		return htmlError(err)
	}

	setFlash(c, "Your contact has been deleted.", "info")
	return c.Redirect(http.StatusFound, "/")
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// htmlError converts a domain error into the matching HTTP failure.
func htmlError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
}
