package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/contact-import/internal/application/contact"
)

type ImportHandler struct {
	startImport app.StartImport
	getStatus   app.GetImportStatus
}

type importContactsRequest struct {
	SourcePath    string `json:"source_path"`
	DefaultAction string `json:"default_duplicate_action"`
	CountryCode   string `json:"default_country_code"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func NewImportHandler(startImport app.StartImport, getStatus app.GetImportStatus) *ImportHandler {
	return &ImportHandler{startImport: startImport, getStatus: getStatus}
}

func (h *ImportHandler) ImportContacts(c echo.Context) error {
	var req importContactsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}

	out, err := h.startImport.Execute(c.Request().Context(), app.StartImportInput{
		SourcePath:    req.SourcePath,
		DefaultAction: req.DefaultAction,
		CountryCode:   req.CountryCode,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportSource) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_source",
				Message: "source_path must be a .csv or .xlsx file",
			}})
		}
		if errors.Is(err, app.ErrInvalidImportAction) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_action",
				Message: "default_duplicate_action must be skip, update or force_add",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to enqueue import job",
		}})
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}

func (h *ImportHandler) GetImportStatus(c echo.Context) error {
	out, err := h.getStatus.Execute(c.Request().Context(), app.GetImportStatusInput{
		JobID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "import job not found",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get import status",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
