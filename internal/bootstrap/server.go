package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	app "github.com/mohammadpnp/contact-import/internal/application/contact"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/file"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/repository"
	httpecho "github.com/mohammadpnp/contact-import/internal/interfaces/http/echo"
	"github.com/mohammadpnp/contact-import/internal/phone"
	"gorm.io/gorm"
)

func NewHTTPServer(db *gorm.DB, pool *pgxpool.Pool, exportStore *file.ExportStore, normalizer *phone.Normalizer) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("10M"))

	importJobRepo := repository.NewImportJobRepository(db)
	contactStore := repository.NewContactStore(pool, normalizer)
	historyRepo := repository.NewHistoryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	importHandler := httpecho.NewImportHandler(
		app.NewStartImport(importJobRepo),
		app.NewGetImportStatus(importJobRepo),
	)
	contactHandler := httpecho.NewContactHandler(app.NewGetContact(contactStore))
	historyHandler := httpecho.NewHistoryHandler(
		app.NewListHistory(historyRepo),
		app.NewUndoImport(historyRepo, contactStore, normalizer),
	)
	exportHandler := httpecho.NewExportHandler(
		app.NewExportContacts(contactStore, exportStore, normalizer),
		app.NewListExportFiles(exportStore),
		app.NewRemoveExportFile(exportStore),
	)
	settingsHandler := httpecho.NewSettingsHandler(app.NewManageSettings(settingsRepo))

	httpecho.RegisterRoutes(server, importHandler, contactHandler, historyHandler, exportHandler, settingsHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
