package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alimgiray/persondir/internal/middleware"
	"github.com/alimgiray/persondir/internal/models"
	"github.com/alimgiray/persondir/internal/repositories"
	"github.com/alimgiray/persondir/internal/services"
	"github.com/alimgiray/persondir/pkg/database"
	"github.com/alimgiray/persondir/pkg/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.SetOutput(io.Discard)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	reg := prometheus.NewRegistry()
	return NewRouter(RouterConfig{
		PersonService: services.NewPersonService(repositories.NewPersonRepository(db)),
		MathService:   services.NewMathService(),
		DB:            db,
		Metrics:       middleware.NewHTTPMetrics(reg),
		Gatherer:      reg,
		MetricsPath:   "/metrics",
	})
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodePerson(t *testing.T, w *httptest.ResponseRecorder) models.Person {
	t.Helper()
	var person models.Person
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &person))
	return person
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func anderson() *models.Person {
	return models.NewPerson("Anderson", "Semedo", "Bela Vista - Praia - CV", "male", "andsemedo023@gmail.com")
}

func TestPersonLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/person/v1", anderson())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodePerson(t, w)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Anderson", created.FirstName)

	w = doRequest(router, http.MethodGet, "/api/person/v1/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decodePerson(t, w))

	created.FirstName = "Isaias"
	created.Email = "semedoisaias02@gmail.com"
	w = doRequest(router, http.MethodPut, "/api/person/v1", created)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Isaias", decodePerson(t, w).FirstName)

	w = doRequest(router, http.MethodDelete, "/api/person/v1/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/api/person/v1/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))

	w = doRequest(router, http.MethodDelete, "/api/person/v1/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/person/v1", anderson())
	require.Equal(t, http.StatusCreated, w.Code)

	duplicate := models.NewPerson("Isaias", "Mendes", "", "", anderson().Email)
	w = doRequest(router, http.MethodPost, "/api/person/v1", duplicate)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_RESOURCE", errorCode(t, w))
}

func TestFindAllEmptyReturnsArray(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/person/v1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestInvalidRequests(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Non-numeric id", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/person/v1/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", errorCode(t, w))
	})

	t.Run("Malformed body", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/person/v1", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing email", func(t *testing.T) {
		person := anderson()
		person.Email = ""
		w := doRequest(router, http.MethodPost, "/api/person/v1", person)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Update without id", func(t *testing.T) {
		w := doRequest(router, http.MethodPut, "/api/person/v1", anderson())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestExportPeople(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/person/v1", anderson())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodGet, "/api/person/v1/export", nil)
	require.Equal(t, http.StatusOK, w.Code)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(peopleSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Email", rows[0][5])
	assert.Equal(t, []string{"1", "Anderson", "Semedo", "Bela Vista - Praia - CV", "male", "andsemedo023@gmail.com"}, rows[1])
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `persondir_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "3f0c8a52-7c1b-4f4e-9a55-2d4c1c0b9e10")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "3f0c8a52-7c1b-4f4e-9a55-2d4c1c0b9e10", w.Header().Get(middleware.RequestIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ROUTE_NOT_FOUND", errorCode(t, w))
}
