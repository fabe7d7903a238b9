package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/task-system/internal/infrastructure/config"
)

// Building the router registers prometheus collectors globally, so it is
// constructed once for the whole suite.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	// Both clients connect lazily; no server is required to build routes.
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("mongo client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		JWTSecret: "test-secret",
		ClientURL: "http://localhost:5173",
	}
	return NewRouter(cfg, client.Database("taskboard_test"), rdb, zerolog.Nop())
}

func TestRouter(t *testing.T) {
	e := newTestRouter(t)

	t.Run("security headers on every response", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("liveness returned %d", rec.Code)
		}
		if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
			t.Fatalf("X-Content-Type-Options = %q, want nosniff", got)
		}
		if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
			t.Fatalf("X-Frame-Options = %q, want SAMEORIGIN", got)
		}
	})

	t.Run("protected routes reject anonymous callers", func(t *testing.T) {
		for _, path := range []string{"/api/tasks", "/api/admin/tasks", "/api/admin/employees"} {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("GET %s without token returned %d, want 401", path, rec.Code)
			}
		}
	})

	t.Run("swagger document is registered and valid", func(t *testing.T) {
		doc, err := swag.ReadDoc()
		if err != nil {
			t.Fatalf("no swagger doc registered: %v", err)
		}
		var spec struct {
			Swagger  string                     `json:"swagger"`
			BasePath string                     `json:"basePath"`
			Paths    map[string]json.RawMessage `json:"paths"`
		}
		if err := json.Unmarshal([]byte(doc), &spec); err != nil {
			t.Fatalf("swagger doc is not valid JSON: %v", err)
		}
		if spec.Swagger != "2.0" || spec.BasePath != "/api" {
			t.Fatalf("unexpected doc header: swagger=%q basePath=%q", spec.Swagger, spec.BasePath)
		}
		for _, path := range []string{"/auth/login", "/tasks/{taskId}", "/admin/tasks"} {
			if _, ok := spec.Paths[path]; !ok {
				t.Fatalf("swagger doc missing %s", path)
			}
		}
	})
}
