package echo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/contact-import/internal/application/contact"
	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	httpecho "github.com/mohammadpnp/contact-import/internal/interfaces/http/echo"
)

type fakeSettingsUseCase struct {
	settings domain.Settings
	err      error
}

func (f *fakeSettingsUseCase) Get(ctx context.Context) (domain.Settings, error) {
	if f.err != nil {
		return domain.Settings{}, f.err
	}
	return f.settings, nil
}

func (f *fakeSettingsUseCase) Update(ctx context.Context, in app.UpdateSettingsInput) (domain.Settings, error) {
	if f.err != nil {
		return domain.Settings{}, f.err
	}
	return domain.Settings{
		BatchSize:     in.BatchSize,
		DefaultAction: domain.DuplicateAction(in.DefaultAction),
		CountryCode:   in.CountryCode,
	}, nil
}

func newSettingsServer(settings app.ManageSettings) *echo.Echo {
	e := echo.New()
	handler := httpecho.NewSettingsHandler(settings)
	httpecho.RegisterRoutes(e, nil, nil, nil, nil, handler)
	return e
}

func TestGetSettingsHandler(t *testing.T) {
	t.Parallel()

	e := newSettingsServer(&fakeSettingsUseCase{settings: domain.Settings{
		BatchSize:     100,
		DefaultAction: domain.ActionSkip,
		CountryCode:   "+98",
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	data := got["data"].(map[string]any)
	if data["batch_size"] != float64(100) {
		t.Fatalf("unexpected batch size: %#v", data["batch_size"])
	}
}

func TestUpdateSettingsHandler(t *testing.T) {
	t.Parallel()

	e := newSettingsServer(&fakeSettingsUseCase{})

	body := []byte(`{"batch_size":50,"default_duplicate_action":"update","default_country_code":"+1"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	data := got["data"].(map[string]any)
	if data["default_duplicate_action"] != "update" {
		t.Fatalf("unexpected action: %#v", data["default_duplicate_action"])
	}
}

func TestUpdateSettingsHandlerInvalidAction(t *testing.T) {
	t.Parallel()

	e := newSettingsServer(&fakeSettingsUseCase{err: app.ErrInvalidImportAction})

	body := []byte(`{"default_duplicate_action":"merge"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
