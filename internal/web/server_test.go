package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/schemaform/internal/compare"
	"github.com/sells-group/schemaform/internal/form"
	"github.com/sells-group/schemaform/internal/schema"
)

func orderSchema(t *testing.T) *schema.Schema {
	t.Helper()
	return schema.MustNew("order", []schema.Field{
		{Name: "customer", Type: &schema.Type{Kind: schema.KindString}},
		{Name: "quantity", Type: &schema.Type{Kind: schema.KindNumber}, Default: int64(1)},
		{Name: "lines", Type: &schema.Type{
			Kind: schema.KindList,
			Elem: &schema.Type{Kind: schema.KindRecord, Fields: []schema.Field{
				{Name: "sku", Type: &schema.Type{Kind: schema.KindString}},
				{Name: "note", Type: &schema.Type{Kind: schema.KindString, Optional: true}},
			}},
		}},
	})
}

func testServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer()
	sch := orderSchema(t)
	require.NoError(t, s.RegisterForm(form.New("order", sch)))

	p, err := compare.NewPair("orders",
		form.New("order_left", sch),
		form.New("order_right", sch),
	)
	require.NoError(t, err)
	require.NoError(t, s.RegisterPair(p))
	return s
}

func do(t *testing.T, s *Server, method, target string, body url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestRegisterDuplicates(t *testing.T) {
	s := NewServer()
	sch := orderSchema(t)
	require.NoError(t, s.RegisterForm(form.New("order", sch)))
	assert.Error(t, s.RegisterForm(form.New("order", sch)))

	p, err := compare.NewPair("p", form.New("a", sch), form.New("b", sch))
	require.NoError(t, err)
	require.NoError(t, s.RegisterPair(p))
	assert.Error(t, s.RegisterPair(p))
}

func TestHealth(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestFormPage(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/form/order/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, `id="order-inputs-wrapper"`)
	assert.Contains(t, body, `name="order_customer"`)
	assert.Contains(t, body, "sfmRefresh")
}

func TestFormPageUnknownForm(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/form/nope/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown form")
}

func TestRefreshEchoesSubmission(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/form/order/refresh", url.Values{
		"order_customer": {"ACME"},
		"order_quantity": {"7"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `id="order-inputs-wrapper"`)
	assert.Contains(t, body, ">ACME</textarea>")
	assert.Contains(t, body, `value="7"`)
}

func TestResetDiscardsEdits(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodPost, "/form/order/reset", url.Values{
		"order_customer": {"ignored"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "ignored")
	// Declared default restored.
	assert.Contains(t, rec.Body.String(), `value="1"`)
}

func TestValidateReportsFieldErrors(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/form/order/validate", url.Values{
		"order_customer": {"ACME"},
		"order_quantity": {"seven"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Path    string `json:"path"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.Valid)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "quantity", out.Errors[0].Path)
}

func TestValidateAcceptsWellFormed(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/form/order/validate", url.Values{
		"order_customer":     {"ACME"},
		"order_quantity":     {"7"},
		"order_lines_0_sku":  {"A-1"},
		"order_lines_0_note": {""},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, true, out["valid"])
	assert.NotNil(t, out["value"])
}

func TestListAddReturnsPlaceholderCard(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/form/order/list/add/lines", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "order_lines_new_")
	assert.Contains(t, body, "<details open")
}

func TestListAddUnknownRoute(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/form/order/list/add/bogus", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot add item")
}

func TestListDelete(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodDelete, "/form/order/list/delete/lines?idx=0", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, strings.TrimSpace(rec.Body.String()))

	rec = do(t, s, http.MethodDelete, "/form/order/list/delete/bogus?idx=0", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestComparePage(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/compare/orders/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `id="orders-left-column"`)
	assert.Contains(t, body, `id="orders-right-column"`)
	assert.Contains(t, body, `name="order_left_customer"`)
	assert.Contains(t, body, `name="order_right_customer"`)
}

func TestComparePageRefreshResolvesRealElements(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/compare/orders/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	// Each side's refresh button names its own column; the script resolves
	// the submission form from the inputs wrapper, so the wrapper id it
	// derives must exist in the same document.
	for _, side := range []string{"left", "right"} {
		name := "order_" + side
		// Attribute values are entity-escaped in the rendered document.
		call := fmt.Sprintf("sfmRefresh(&#34;/compare/orders/%s/refresh&#34;, &#34;%s&#34;", side, name)
		assert.Contains(t, body, call)
		assert.Contains(t, body, fmt.Sprintf(`id=%q`, name+"-inputs-wrapper"))
	}
	assert.Contains(t, body, "'-inputs-wrapper'")
	assert.Contains(t, body, "closest('form')")
}

func TestSideRefreshSwapsOneColumn(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/compare/orders/left/refresh", url.Values{
		"order_left_customer":  {"left edit"},
		"order_right_customer": {"right edit"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `id="order_left-inputs-wrapper"`)
	assert.Contains(t, body, "left edit")
	assert.NotContains(t, body, "order_right-inputs-wrapper")
}

func TestSideRefreshUnknownSide(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/compare/orders/middle/refresh", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSideReset(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/compare/orders/right/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="order_right-inputs-wrapper"`)
}

func TestCopyEndpoint(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/compare/orders/copy", url.Values{
		"path":                 {"customer"},
		"target":               {"right"},
		"order_left_customer":  {"copied value"},
		"order_right_customer": {"stale"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `id="order_right-inputs-wrapper"`)
	assert.Contains(t, body, "copied value")
	assert.NotContains(t, body, "stale")
}

func TestCopyEndpointBadTarget(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/compare/orders/copy", url.Values{
		"path":   {"customer"},
		"target": {"sideways"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCopyEndpointBadPath(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/compare/orders/copy", url.Values{
		"path":   {"no_such_field"},
		"target": {"right"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Copy failed")
}
