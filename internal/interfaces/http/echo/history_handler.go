package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/contact-import/internal/application/contact"
)

type HistoryHandler struct {
	listHistory app.ListHistory
	undoImport  app.UndoImport
}

func NewHistoryHandler(listHistory app.ListHistory, undoImport app.UndoImport) *HistoryHandler {
	return &HistoryHandler{listHistory: listHistory, undoImport: undoImport}
}

func (h *HistoryHandler) ListHistory(c echo.Context) error {
	out, err := h.listHistory.Execute(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to list import history",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *HistoryHandler) UndoImport(c echo.Context) error {
	out, err := h.undoImport.Execute(c.Request().Context(), app.UndoImportInput{
		RecordID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "import record not found",
			}})
		}
		if errors.Is(err, app.ErrRecordNotUndoable) {
			return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{
				Code:    "not_undoable",
				Message: "import record cannot be undone",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to undo import",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
