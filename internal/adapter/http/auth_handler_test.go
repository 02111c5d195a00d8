package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	domain "lendingbook/internal/domain/ledger"
)

func TestLogin_Success(t *testing.T) {
	e := newEchoWithValidator()
	uc := newUsecase(t)
	h := NewAuthHandler(uc)

	req := httptest.NewRequest(stdhttp.MethodPost, "/login", mustJSON(map[string]string{"password": domain.DefaultPassword}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got["role"] != string(domain.RoleAdmin) {
		t.Fatalf("role = %q, want Admin", got["role"])
	}
	if len(uc.Logs()) != 1 {
		t.Fatalf("logs = %d, want 1", len(uc.Logs()))
	}
}

func TestLogin_AccessDenied(t *testing.T) {
	e := newEchoWithValidator()
	h := NewAuthHandler(newUsecase(t))

	req := httptest.NewRequest(stdhttp.MethodPost, "/login", mustJSON(map[string]string{"password": "wrong"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLogin_MissingPassword(t *testing.T) {
	e := newEchoWithValidator()
	h := NewAuthHandler(newUsecase(t))

	req := httptest.NewRequest(stdhttp.MethodPost, "/login", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(resp.Details, "Password", "required") {
		t.Fatalf("details = %+v", resp.Details)
	}
}

func TestRequireAdmin(t *testing.T) {
	e := newEchoWithValidator()
	uc := newUsecase(t)

	next := func(c echo.Context) error { return c.JSON(stdhttp.StatusOK, map[string]string{"status": "in"}) }
	mw := RequireAdmin(uc)(next)

	req := httptest.NewRequest(stdhttp.MethodGet, "/settings", nil)
	req.Header.Set("X-Admin-Password", domain.DefaultPassword)
	rec := httptest.NewRecorder()
	if err := mw(e.NewContext(req, rec)); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(stdhttp.MethodGet, "/settings", nil)
	req.Header.Set("X-Admin-Password", "wrong")
	rec = httptest.NewRecorder()
	if err := mw(e.NewContext(req, rec)); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
