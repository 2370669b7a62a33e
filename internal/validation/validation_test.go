package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ref struct {
	Name string `json:"name" validate:"required,max=10"`
}

type sampleRequest struct {
	ID       string          `param:"id" json:"-"`
	Name     string          `json:"name" validate:"required,max=5"`
	Sex      string          `json:"sex" validate:"oneof=M F"`
	Weight   decimal.Decimal `json:"weight"`
	Category ref             `json:"category"`
}

func (r *sampleRequest) Validate() error {
	return Check(r, Positive("weight", r.Weight)...)
}

func newContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBindAndValidate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		c, _ := newContext(`{"name":"Joe","sex":"M","weight":70.5,"category":{"name":"Scale"}}`)

		var req sampleRequest
		require.NoError(t, BindAndValidate(c, &req))
		assert.Equal(t, "Joe", req.Name)
		assert.True(t, req.Weight.Equal(decimal.RequireFromString("70.5")))
	})

	t.Run("field errors use json names", func(t *testing.T) {
		c, _ := newContext(`{"name":"Joseph","sex":"X","weight":0,"category":{}}`)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, BindAndValidate(c, &sampleRequest{}), &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "Validation failed", httpErr.Message)

		got := map[string]string{}
		for _, fe := range httpErr.Errors {
			got[fe.Field] = fe.Error
		}
		assert.Equal(t, map[string]string{
			"name":          "must not exceed 5 characters",
			"sex":           "must be one of: M F",
			"category.name": "is required",
			"weight":        "must be greater than 0",
		}, got)
	})

	t.Run("malformed json", func(t *testing.T) {
		c, _ := newContext(`{"name":`)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, BindAndValidate(c, &sampleRequest{}), &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.NotEmpty(t, httpErr.Message)
	})

	t.Run("wrong type", func(t *testing.T) {
		c, _ := newContext(`{"name":42}`)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, BindAndValidate(c, &sampleRequest{}), &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	})
}

func TestParseUUID(t *testing.T) {
	_, failures := ParseUUID("id", "not-a-uuid")
	require.Len(t, failures, 1)
	assert.Equal(t, "id", failures[0].Field)

	id, failures := ParseUUID("id", "6f1c2d3e-4a5b-4c6d-8e7f-9a0b1c2d3e4f")
	assert.Empty(t, failures)
	assert.Equal(t, "6f1c2d3e-4a5b-4c6d-8e7f-9a0b1c2d3e4f", id.String())
}

func TestPositivePtr(t *testing.T) {
	assert.Empty(t, PositivePtr("height", nil))

	neg := decimal.NewFromInt(-1)
	assert.Len(t, PositivePtr("height", &neg), 1)
}
