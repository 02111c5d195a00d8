package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "lendingbook/internal/domain/ledger"
)

func TestUpdateRates(t *testing.T) {
	e := newEchoWithValidator()
	uc := newUsecase(t)
	h := NewSettingsHandler(uc)

	req := httptest.NewRequest(stdhttp.MethodPut, "/settings/rates", mustJSON(map[string]any{
		"interest": 15,
		"penalty":  2,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.UpdateRates(c); err != nil {
		t.Fatalf("UpdateRates error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	s := uc.Settings()
	if !s.InterestRate.Equal(decimal.NewFromInt(15)) || !s.PenaltyRate.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("settings = %+v", s)
	}
}

func TestAddAndDeleteUser(t *testing.T) {
	e := newEchoWithValidator()
	uc := newUsecase(t)
	h := NewSettingsHandler(uc)

	req := httptest.NewRequest(stdhttp.MethodPost, "/settings/users", mustJSON(map[string]any{
		"password": "guest",
		"isAdmin":  true,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.AddUser(e.NewContext(req, rec)); err != nil {
		t.Fatalf("AddUser error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if users := uc.Settings().Users; len(users) != 1 || !users[0].IsAdmin {
		t.Fatalf("users = %+v", users)
	}

	// Duplicate password is a validation error.
	req = httptest.NewRequest(stdhttp.MethodPost, "/settings/users", mustJSON(map[string]any{"password": "guest"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	if err := h.AddUser(e.NewContext(req, rec)); err != nil {
		t.Fatalf("AddUser error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(stdhttp.MethodDelete, "/settings/users/0", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("index")
	c.SetParamValues("0")
	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("DeleteUser error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if users := uc.Settings().Users; len(users) != 0 {
		t.Fatalf("users = %+v", users)
	}
}

func TestReset(t *testing.T) {
	e := newEchoWithValidator()
	uc := newUsecase(t)
	if err := uc.AddBorrower(context.Background(), "Maria"); err != nil {
		t.Fatal(err)
	}
	h := NewSettingsHandler(uc)

	req := httptest.NewRequest(stdhttp.MethodPost, "/settings/reset", nil)
	rec := httptest.NewRecorder()
	if err := h.Reset(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(uc.Borrowers()) != 0 {
		t.Fatal("reset did not clear borrowers")
	}
}

func TestChangePassword(t *testing.T) {
	e := newEchoWithValidator()
	uc := newUsecase(t)
	h := NewSettingsHandler(uc)

	req := httptest.NewRequest(stdhttp.MethodPost, "/settings/password", mustJSON(map[string]string{"password": "new-secret"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.ChangePassword(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	role, err := uc.Login(context.Background(), "new-secret")
	if err != nil || role != domain.RoleAdmin {
		t.Fatalf("login with new password: role=%q err=%v", role, err)
	}
}

func TestGetSettings(t *testing.T) {
	e := newEchoWithValidator()
	uc := newUsecase(t)
	h := NewSettingsHandler(uc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/settings", nil)
	rec := httptest.NewRecorder()
	if err := h.Get(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	var got domain.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Password != domain.DefaultPassword {
		t.Fatalf("settings = %+v", got)
	}
}
