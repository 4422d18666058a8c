package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/contact-import/internal/application/contact"
)

type ContactHandler struct {
	getContact app.GetContact
}

func NewContactHandler(getContact app.GetContact) *ContactHandler {
	return &ContactHandler{getContact: getContact}
}

func (h *ContactHandler) GetContactByID(c echo.Context) error {
	out, err := h.getContact.Execute(c.Request().Context(), app.GetContactInput{
		ID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidContactID) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_contact_id",
				Message: "id must be a valid UUID",
			}})
		}
		if errors.Is(err, app.ErrContactNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "contact not found",
			}})
		}

		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get contact",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
