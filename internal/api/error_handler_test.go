package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"), http.StatusUnauthorized, "missing authorization header"},
		{"not found", fmt.Errorf("get map line: %w", domain.ErrMapLineNotFound), http.StatusNotFound, "map line not found"},
		{"degenerate", domain.ErrDegenerateLine, http.StatusUnprocessableEntity, domain.ErrDegenerateLine.Error()},
		{"invalid point", domain.ErrInvalidPoint, http.StatusUnprocessableEntity, domain.ErrInvalidPoint.Error()},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"unexpected", errors.New("socket closed"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Errorf("expected %q in body %s", tc.wantBody, rec.Body.String())
			}
			if strings.Contains(rec.Body.String(), "socket") {
				t.Error("internal details leaked")
			}
		})
	}
}
