package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/contact-import/internal/application/contact"
)

type SettingsHandler struct {
	settings app.ManageSettings
}

func NewSettingsHandler(settings app.ManageSettings) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) GetSettings(c echo.Context) error {
	out, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to load settings",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var req app.UpdateSettingsInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}

	out, err := h.settings.Update(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportAction) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_action",
				Message: "default_duplicate_action must be skip, update or force_add",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to save settings",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
