package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/contact-import/internal/application/contact"
)

type ExportHandler struct {
	exportContacts app.ExportContacts
	listFiles      app.ListExportFiles
	removeFile     app.RemoveExportFile
}

type exportContactsRequest struct {
	Format      string `json:"format"`
	Deduplicate bool   `json:"deduplicate"`
}

func NewExportHandler(exportContacts app.ExportContacts, listFiles app.ListExportFiles, removeFile app.RemoveExportFile) *ExportHandler {
	return &ExportHandler{exportContacts: exportContacts, listFiles: listFiles, removeFile: removeFile}
}

func (h *ExportHandler) ExportContacts(c echo.Context) error {
	var req exportContactsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}

	out, err := h.exportContacts.Execute(c.Request().Context(), app.ExportContactsInput{
		Format:      req.Format,
		Deduplicate: req.Deduplicate,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidExportFormat):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_format",
				Message: "format must be vcf, csv or xlsx",
			}})
		case errors.Is(err, app.ErrExportNoContacts):
			return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{
				Code:    "no_contacts",
				Message: "there are no contacts to export",
			}})
		case errors.Is(err, app.ErrExportStorageFull):
			return c.JSON(http.StatusInsufficientStorage, apiResponse{Error: &errorBody{
				Code:    "storage_full",
				Message: "not enough storage to write the export file",
			}})
		case errors.Is(err, app.ErrExportPermission):
			return c.JSON(http.StatusForbidden, apiResponse{Error: &errorBody{
				Code:    "permission_denied",
				Message: "no permission to write the export file",
			}})
		default:
			return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
				Code:    "internal_error",
				Message: "failed to export contacts",
			}})
		}
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *ExportHandler) ListExportFiles(c echo.Context) error {
	files, err := h.listFiles.Execute(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to list export files",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: files})
}

func (h *ExportHandler) RemoveExportFile(c echo.Context) error {
	name := c.Param("name")
	if err := h.removeFile.Execute(c.Request().Context(), name); err != nil {
		if errors.Is(err, app.ErrExportFileNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "export file not found",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to remove export file",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: map[string]string{"file_name": name}})
}
