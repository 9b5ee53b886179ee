package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"servisku/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	t.Run("reuses incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, "req-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Body.String() != "req-1" || w.Header().Get(RequestIDHeader) != "req-1" {
			t.Fatalf("unexpected id body=%q header=%q", w.Body.String(), w.Header().Get(RequestIDHeader))
		}
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Body.String() == "" || w.Header().Get(RequestIDHeader) != w.Body.String() {
			t.Fatalf("expected generated id, got body=%q header=%q", w.Body.String(), w.Header().Get(RequestIDHeader))
		}
	})
}

func TestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID(), Logger(base))
	r.GET("/v1/things/:id", func(c *gin.Context) {
		log.Ctx(c.Request.Context()).Info().Msg("inside handler")
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/things/1", nil)
	req.Header.Set(RequestIDHeader, "req-9")
	req.Header.Set(UserIDHeader, "u1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"request_id":"req-9"`) || !strings.Contains(lines[0], `"caller_id":"u1"`) {
		t.Fatalf("handler log line lacks request fields: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"warn"`) || !strings.Contains(lines[1], `"status":404`) || !strings.Contains(lines[1], `"path":"/v1/things/:id"`) {
		t.Fatalf("unexpected request line: %s", lines[1])
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "INTERNAL_ERROR") {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

func TestIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity())
	var got entities.Caller
	r.GET("/me", func(c *gin.Context) {
		got = GetCaller(c)
		c.Status(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		id     string
		role   string
		status int
		caller entities.Caller
	}{
		{name: "customer", id: "u1", role: "user", status: http.StatusNoContent, caller: entities.Caller{ID: "u1", Role: entities.RoleUser}},
		{name: "role is case insensitive", id: " t1 ", role: "Technician", status: http.StatusNoContent, caller: entities.Caller{ID: "t1", Role: entities.RoleTechnician}},
		{name: "admin", id: "a1", role: "admin", status: http.StatusNoContent, caller: entities.Caller{ID: "a1", Role: entities.RoleAdmin}},
		{name: "missing id", role: "user", status: http.StatusUnauthorized},
		{name: "unknown role", id: "u1", role: "root", status: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got = entities.Caller{}
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set(UserIDHeader, tc.id)
			req.Header.Set(UserRoleHeader, tc.role)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if got != tc.caller {
				t.Fatalf("expected caller %+v, got %+v", tc.caller, got)
			}
		})
	}
}
