package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"urbanset/models"
	"urbanset/utils"

	"github.com/gin-gonic/gin"
)

type staticResolver map[string]string

func (r staticResolver) ResolveRole(_ context.Context, id string) (string, error) {
	role, ok := r[id]
	if !ok {
		return "", utils.NewUnauthenticatedError("account no longer exists")
	}
	return role, nil
}

func newRouter(resolver RoleResolver, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Authenticate(resolver)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.String(http.StatusOK, p.ID+":"+p.Role)
	})
	r.GET("/", handlers...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	resolver := staticResolver{"u1": models.RoleWorker}
	r := newRouter(resolver)

	// The token still says "user"; the resolver's current role wins.
	token, err := utils.GenerateToken("u1", models.RoleUser, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if w := get(r, token); w.Code != http.StatusOK || w.Body.String() != "u1:worker" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}

	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: got %d", w.Code)
	}
	if w := get(r, "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: got %d", w.Code)
	}

	expired, _ := utils.GenerateToken("u1", models.RoleUser, -time.Minute)
	if w := get(r, expired); w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: got %d", w.Code)
	}

	ghost, _ := utils.GenerateToken("ghost", models.RoleUser, time.Hour)
	if w := get(r, ghost); w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown identity: got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	resolver := staticResolver{"u1": models.RoleUser, "w1": models.RoleWorker}
	r := newRouter(resolver, RequireRole(models.RoleWorker))

	userToken, _ := utils.GenerateToken("u1", models.RoleUser, time.Hour)
	if w := get(r, userToken); w.Code != http.StatusForbidden {
		t.Fatalf("user: got %d", w.Code)
	}
	workerToken, _ := utils.GenerateToken("w1", models.RoleWorker, time.Hour)
	if w := get(r, workerToken); w.Code != http.StatusOK {
		t.Fatalf("worker: got %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.8")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("other client should not be limited, got %d", w.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"forwarded skips garbage", map[string]string{"X-Forwarded-For": "unknown, 198.51.100.2"}, "10.0.0.1:80", "198.51.100.2"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.3"}, "10.0.0.1:80", "198.51.100.3"},
		{"remote addr", nil, "10.0.0.1:80", "10.0.0.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.header {
				c.Request.Header.Set(k, v)
			}
			if got := getClientIP(c); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
