package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jmuiruri/staffhub/internal/db"
	"github.com/jmuiruri/staffhub/internal/domain/employee"
	apphttp "github.com/jmuiruri/staffhub/internal/http"
	"github.com/jmuiruri/staffhub/internal/observability"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	database, err := db.Open(":memory:")

	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry)

	return apphttp.NewRouter(database, prom, registry, []string{"*"})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer

	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

type singlePayload struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    employee.Employee `json:"data"`
}

type listPayload struct {
	Success bool                `json:"success"`
	Count   int                 `json:"count"`
	Data    []employee.Employee `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

// Full lifecycle against the real router and a real in-memory database.
func TestEmployeeLifecycle(t *testing.T) {
	r := newTestEngine(t)

	// create
	w := doJSON(t, r, http.MethodPost, "/api/employees",
		`{"name":"Ann Lee","email":"ANN@X.COM","position":"Engineer"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d, body=%s", w.Code, w.Body.String())
	}

	var created singlePayload
	decode(t, w, &created)

	if created.Data.ID == 0 {
		t.Fatal("expected a non-zero id")
	}

	if created.Data.Email != "ann@x.com" {
		t.Fatalf("email not normalized: %q", created.Data.Email)
	}

	id := strconv.FormatInt(created.Data.ID, 10)

	// a second record so search has something to exclude
	w = doJSON(t, r, http.MethodPost, "/api/employees",
		`{"name":"Bob Carr","email":"bob@x.com","position":"Designer"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("create bob: got %d, body=%s", w.Code, w.Body.String())
	}

	// duplicate email is rejected
	w = doJSON(t, r, http.MethodPost, "/api/employees",
		`{"name":"Ann Again","email":"ann@x.com","position":"Engineer"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create: got %d, body=%s", w.Code, w.Body.String())
	}

	// search narrows the list
	w = doJSON(t, r, http.MethodGet, "/api/employees?search=ann", "")

	if w.Code != http.StatusOK {
		t.Fatalf("search: got %d, body=%s", w.Code, w.Body.String())
	}

	var list listPayload
	decode(t, w, &list)

	if list.Count != 1 || list.Data[0].Name != "Ann Lee" {
		t.Fatalf("search result: %+v", list)
	}

	// update the email
	w = doJSON(t, r, http.MethodPut, "/api/employees/"+id,
		`{"name":"Ann Lee","email":"ann2@x.com","position":"Staff Engineer"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("update: got %d, body=%s", w.Code, w.Body.String())
	}

	var updated singlePayload
	decode(t, w, &updated)

	if updated.Data.Email != "ann2@x.com" || updated.Data.Position != "Staff Engineer" {
		t.Fatalf("update not applied: %+v", updated.Data)
	}

	if updated.Data.UpdatedAt.Before(created.Data.UpdatedAt) {
		t.Fatal("updated_at moved backwards")
	}

	// updating onto bob's email fails
	w = doJSON(t, r, http.MethodPut, "/api/employees/"+id,
		`{"name":"Ann Lee","email":"bob@x.com","position":"Engineer"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("update to taken email: got %d, body=%s", w.Code, w.Body.String())
	}

	// delete
	w = doJSON(t, r, http.MethodDelete, "/api/employees/"+id, "")

	if w.Code != http.StatusOK {
		t.Fatalf("delete: got %d, body=%s", w.Code, w.Body.String())
	}

	// gone now
	w = doJSON(t, r, http.MethodGet, "/api/employees/"+id, "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got %d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/api/employees/"+id, "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: got %d, body=%s", w.Code, w.Body.String())
	}

	// the freed email can be reused
	w = doJSON(t, r, http.MethodPost, "/api/employees",
		`{"name":"Ann Again","email":"ann2@x.com","position":"Engineer"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("recreate: got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestEngine(t)

	w := doJSON(t, r, http.MethodGet, "/api/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
	}

	var payload struct {
		Status string `json:"status"`
	}
	decode(t, w, &payload)

	if payload.Status != "OK" {
		t.Fatalf("got status %q, want OK", payload.Status)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestEngine(t)

	w := doJSON(t, r, http.MethodGet, "/api/nope", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
	}

	if !strings.Contains(w.Body.String(), "Route not found") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestWritesRequireJSONContentType(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/employees",
		bytes.NewBufferString(`{"name":"Ann Lee","email":"ann@x.com","position":"Engineer"}`))
	req.Header.Set("Content-Type", "text/plain")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestEngine(t)

	// drive one request through so counters exist
	doJSON(t, r, http.MethodGet, "/api/employees", "")

	w := doJSON(t, r, http.MethodGet, "/metrics", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}

	if !strings.Contains(w.Body.String(), "staffhub_") {
		t.Fatal("expected staffhub metrics in the exposition")
	}
}
