package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/workout-api/internal/config"
	"github.com/deppfellow/workout-api/internal/handler"
	"github.com/deppfellow/workout-api/internal/metrics"
	"github.com/deppfellow/workout-api/internal/repository"
	"github.com/deppfellow/workout-api/internal/repository/memstore"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/deppfellow/workout-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router *echo.Echo
	store  *memstore.Store
}

func newTestAPI(t *testing.T, requestsPerWindow int) *testAPI {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			CORSAllowedOrigins: []string{"*"},
		},
		RateLimit: config.RateLimitConfig{
			Requests: requestsPerWindow,
			Window:   time.Minute,
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	s := &server.Server{
		Config:  cfg,
		Logger:  &logger,
		Metrics: metrics.New(),
	}

	store := memstore.New()
	services, err := service.NewService(s, &repository.Repositories{Store: store})
	require.NoError(t, err)

	return &testAPI{
		router: NewRouter(s, handler.NewHandlers(s, services)),
		store:  store,
	}
}

func (api *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	return rec
}

func (api *testAPI) seed(t *testing.T) {
	t.Helper()

	rec := api.do(t, http.MethodPost, "/categories", `{"name":"Scale"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/training_centers", `{"name":"CT King","address":"Rua X, 10","owner":"Marcos"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

const joeBody = `{
	"name": "Joe",
	"cpf": "12345678900",
	"age": 25,
	"weight": 70,
	"height": 1.70,
	"sex": "M",
	"category": {"name": "Scale"},
	"training_center": {"name": "CT King"}
}`

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestAthletes_Register(t *testing.T) {
	t.Run("joe is registered into scale at ct king", func(t *testing.T) {
		api := newTestAPI(t, 1000)
		api.seed(t)
		before := time.Now().UTC().Add(-time.Second)

		rec := api.do(t, http.MethodPost, "/athletes", joeBody)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		body := decode[map[string]any](t, rec)
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, "Joe", body["name"])
		assert.Equal(t, "12345678900", body["cpf"])
		assert.Equal(t, float64(70), body["weight"])
		assert.Equal(t, 1.7, body["height"])
		assert.Equal(t, map[string]any{"name": "Scale"}, body["category"])
		assert.Equal(t, map[string]any{"name": "CT King"}, body["training_center"])

		createdAt, err := time.Parse(time.RFC3339Nano, body["created_at"].(string))
		require.NoError(t, err)
		assert.False(t, createdAt.Before(before))

		assert.Equal(t, 1, api.store.AthleteCount())
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("unknown category names the category", func(t *testing.T) {
		api := newTestAPI(t, 1000)
		api.seed(t)

		rec := api.do(t, http.MethodPost, "/athletes", strings.Replace(joeBody, `"Scale"`, `"Elite"`, 1))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode[map[string]any](t, rec)
		assert.Equal(t, "CATEGORY_NOT_FOUND", body["code"])
		assert.Equal(t, "Category 'Elite' not found.", body["message"])
		assert.Zero(t, api.store.AthleteCount())
	})

	t.Run("unknown training center names the center", func(t *testing.T) {
		api := newTestAPI(t, 1000)
		api.seed(t)

		rec := api.do(t, http.MethodPost, "/athletes", strings.Replace(joeBody, `"CT King"`, `"CT Queen"`, 1))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode[map[string]any](t, rec)
		assert.Equal(t, "TRAINING_CENTER_NOT_FOUND", body["code"])
		assert.Contains(t, body["message"], "CT Queen")
		assert.Zero(t, api.store.AthleteCount())
	})

	t.Run("schema violations are field errors", func(t *testing.T) {
		api := newTestAPI(t, 1000)
		api.seed(t)

		rec := api.do(t, http.MethodPost, "/athletes", `{"name":"Joe","cpf":"123456789012","age":0,"weight":-1,"height":1.7,"sex":"X","category":{"name":"Scale"},"training_center":{"name":"CT King"}}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode[map[string]any](t, rec)
		fields := map[string]bool{}
		for _, fe := range body["errors"].([]any) {
			fields[fe.(map[string]any)["field"].(string)] = true
		}
		assert.True(t, fields["cpf"])
		assert.True(t, fields["age"])
		assert.True(t, fields["weight"])
		assert.True(t, fields["sex"])
		assert.Zero(t, api.store.AthleteCount())
	})

	t.Run("malformed json", func(t *testing.T) {
		api := newTestAPI(t, 1000)

		rec := api.do(t, http.MethodPost, "/athletes", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAthletes_ReadUpdateDelete(t *testing.T) {
	api := newTestAPI(t, 1000)
	api.seed(t)

	rec := api.do(t, http.MethodPost, "/athletes", joeBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	id := created["id"].(string)

	t.Run("list", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/athletes", "")
		require.Equal(t, http.StatusOK, rec.Code)

		list := decode[[]map[string]any](t, rec)
		require.Len(t, list, 1)
		assert.Equal(t, id, list[0]["id"])
		assert.Equal(t, map[string]any{"name": "Scale"}, list[0]["category"])
	})

	t.Run("get", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/athletes/"+id, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, created, decode[map[string]any](t, rec))
	})

	t.Run("empty patch changes nothing", func(t *testing.T) {
		rec := api.do(t, http.MethodPatch, "/athletes/"+id, `{}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, created, decode[map[string]any](t, rec))
	})

	t.Run("patch weight only", func(t *testing.T) {
		rec := api.do(t, http.MethodPatch, "/athletes/"+id, `{"weight":72,"cpf":"00000000000"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		updated := decode[map[string]any](t, rec)
		assert.Equal(t, float64(72), updated["weight"])

		updated["weight"] = created["weight"]
		assert.Equal(t, created, updated)
	})

	t.Run("delete then lookup", func(t *testing.T) {
		rec := api.do(t, http.MethodDelete, "/athletes/"+id, "")
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())

		rec = api.do(t, http.MethodGet, "/athletes/"+id, "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.Equal(t, "ATHLETE_NOT_FOUND", body["code"])
		assert.Equal(t, "Athlete with id "+id+" not found.", body["message"])

		rec = api.do(t, http.MethodDelete, "/athletes/"+id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = api.do(t, http.MethodPatch, "/athletes/"+id, `{"age":30}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/athletes/not-a-uuid", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode[map[string]any](t, rec)
		require.NotEmpty(t, body["errors"])
		assert.Equal(t, "id", body["errors"].([]any)[0].(map[string]any)["field"])
	})
}

func TestCatalog(t *testing.T) {
	api := newTestAPI(t, 1000)
	api.seed(t)

	t.Run("duplicate category", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/categories", `{"name":"Scale"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode[map[string]any](t, rec)
		assert.Equal(t, "CATEGORY_ALREADY_EXISTS", body["code"])
		assert.Equal(t, "A Category with this name already exists", body["message"])
	})

	t.Run("category name too long", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/categories", `{"name":"Heavyweight"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list and get", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/training_centers", "")
		require.Equal(t, http.StatusOK, rec.Code)

		list := decode[[]map[string]any](t, rec)
		require.Len(t, list, 1)
		assert.Equal(t, "CT King", list[0]["name"])

		rec = api.do(t, http.MethodGet, "/training_centers/"+list[0]["id"].(string), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, list[0], decode[map[string]any](t, rec))
	})

	t.Run("unknown category id", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/categories/5f0c1e0a-3a52-4c38-9d2e-0d8b1a2c3f4e", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "CATEGORY_NOT_FOUND", decode[map[string]any](t, rec)["code"])
	})
}

func TestSystemRoutes(t *testing.T) {
	api := newTestAPI(t, 1000)

	t.Run("status without dependencies is healthy", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/status", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "healthy", decode[map[string]any](t, rec)["status"])
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/nope", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Route not found", decode[map[string]any](t, rec)["message"])
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		api.do(t, http.MethodGet, "/athletes", "")

		rec := api.do(t, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `workout_http_requests_total{method="GET",route="/athletes",status="200"}`)
	})
}

func TestRateLimit(t *testing.T) {
	api := newTestAPI(t, 2)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/athletes", "").Code)
	}

	rec := api.do(t, http.MethodGet, "/athletes", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decode[map[string]any](t, rec)["code"])
}
