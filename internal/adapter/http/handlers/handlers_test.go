package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"servisku/internal/adapter/http/middleware"
	"servisku/internal/domain/entities"
	"servisku/pkg"

	"github.com/gin-gonic/gin"
)

var (
	customer   = entities.Caller{ID: "u1", Role: entities.RoleUser}
	technician = entities.Caller{ID: "t1", Role: entities.RoleTechnician}
	admin      = entities.Caller{ID: "a1", Role: entities.RoleAdmin}
)

func newTestRouter(register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Identity())
	register(r)
	return r
}

func serve(r *gin.Engine, method, path, body string, caller entities.Caller) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, caller.ID)
	req.Header.Set(middleware.UserRoleHeader, string(caller.Role))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not json: %v (%s)", err, w.Body.String())
	}
	return body
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) pkg.HTTPError {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
	body := decodeError(t, w)
	if body.Code != code {
		t.Fatalf("expected code %s, got %s", code, body.Code)
	}
	return body
}
