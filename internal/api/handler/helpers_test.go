package handler

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/crm-system/internal/core/ports"
)

type request struct {
	method string
	target string
	body   string
	params map[string]string
	claims *ports.TokenClaims
}

// call runs h against a synthetic request and returns the recorder together
// with the handler's error (if any).
func call(t *testing.T, h echo.HandlerFunc, r request) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var body io.Reader
	if r.body != "" {
		body = strings.NewReader(r.body)
	}
	req := httptest.NewRequest(r.method, r.target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if len(r.params) > 0 {
		names := make([]string, 0, len(r.params))
		values := make([]string, 0, len(r.params))
		for k, v := range r.params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if r.claims != nil {
		c.Set(ClaimsKey, r.claims)
	}

	return rec, h(c)
}
