package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(
	server *e.Echo,
	importHandler *ImportHandler,
	contactHandler *ContactHandler,
	historyHandler *HistoryHandler,
	exportHandler *ExportHandler,
	settingsHandler *SettingsHandler,
) {
	server.POST("/api/v1/imports/contacts", importHandler.ImportContacts)
	server.GET("/api/v1/imports/contacts/:id", importHandler.GetImportStatus)
	server.GET("/api/v1/imports/history", historyHandler.ListHistory)
	server.POST("/api/v1/imports/history/:id/undo", historyHandler.UndoImport)
	server.GET("/api/v1/contacts/:id", contactHandler.GetContactByID)
	server.POST("/api/v1/exports/contacts", exportHandler.ExportContacts)
	server.GET("/api/v1/exports/files", exportHandler.ListExportFiles)
	server.DELETE("/api/v1/exports/files/:name", exportHandler.RemoveExportFile)
	server.GET("/api/v1/settings", settingsHandler.GetSettings)
	server.PUT("/api/v1/settings", settingsHandler.UpdateSettings)
}
