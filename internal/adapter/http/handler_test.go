package http

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/labstack/echo/v4"

	domain "lendingbook/internal/domain/ledger"
	"lendingbook/internal/testutil/syncmock"
	ledgeruc "lendingbook/internal/usecase/ledger"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// newUsecase wires a usecase over in-memory fakes so handler tests
// never touch a database or the network.
func newUsecase(t *testing.T) *ledgeruc.Usecase {
	t.Helper()
	return ledgeruc.NewUsecase(domain.Default(), &syncmock.Cache{}, &syncmock.Remote{}, true)
}
