package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const testSecret = "unit-test-secret-0123456789abcdef"

// staticRevoker 把固定的 jti 集合视为已登出
type staticRevoker map[string]bool

func (r staticRevoker) IsTokenRevoked(_ context.Context, jti string) bool {
	return r[jti]
}

func testCfg() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour}}
}

func newTestRouter(revoker TokenRevoker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := testCfg()
	r := gin.New()

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

	web := r.Group("/")
	web.Use(WebAuthMiddleware(cfg, revoker))
	web.GET("/student/dashboard", WebRoleMiddleware(model.Student), ok)
	web.GET("/teacher/dashboard", WebRoleMiddleware(model.Teacher), ok)

	api := r.Group("/api")
	api.Use(AuthMiddleware(cfg, revoker))
	api.POST("/interaction", ok)
	api.GET("/stats", RoleMiddleware(model.Teacher), ok)

	return r
}

func tokenFor(t *testing.T, role model.UserRole) string {
	t.Helper()
	user := &model.User{Username: "someone", Role: role}
	user.ID = 1
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}
	return token
}

func perform(r *gin.Engine, method, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: util.SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebRoutes_AnonymousRedirectsToLogin(t *testing.T) {
	r := newTestRouter(nil)

	for _, path := range []string{"/student/dashboard", "/teacher/dashboard"} {
		w := perform(r, http.MethodGet, path, "")
		if w.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}

func TestWebRoutes_WrongRoleRedirectsToLogin(t *testing.T) {
	r := newTestRouter(nil)

	cases := []struct {
		path  string
		token string
	}{
		{"/teacher/dashboard", tokenFor(t, model.Student)},
		{"/student/dashboard", tokenFor(t, model.Teacher)},
	}
	for _, tc := range cases {
		w := perform(r, http.MethodGet, tc.path, tc.token)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
			t.Fatalf("%s: expected 302 to /login, got %d %q", tc.path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestWebRoutes_MatchingRoleAllowed(t *testing.T) {
	r := newTestRouter(nil)

	if w := perform(r, http.MethodGet, "/student/dashboard", tokenFor(t, model.Student)); w.Code != http.StatusOK {
		t.Fatalf("student dashboard: expected 200, got %d", w.Code)
	}
	if w := perform(r, http.MethodGet, "/teacher/dashboard", tokenFor(t, model.Teacher)); w.Code != http.StatusOK {
		t.Fatalf("teacher dashboard: expected 200, got %d", w.Code)
	}
}

func TestAPIRoutes_StatusCodes(t *testing.T) {
	r := newTestRouter(nil)

	// 匿名访问接口返回 401 而不是重定向
	if w := perform(r, http.MethodPost, "/api/interaction", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous interaction: expected 401, got %d", w.Code)
	}

	// 学生访问教师统计接口返回 403
	if w := perform(r, http.MethodGet, "/api/stats", tokenFor(t, model.Student)); w.Code != http.StatusForbidden {
		t.Fatalf("student stats: expected 403, got %d", w.Code)
	}
	if w := perform(r, http.MethodGet, "/api/stats", tokenFor(t, model.Teacher)); w.Code != http.StatusOK {
		t.Fatalf("teacher stats: expected 200, got %d", w.Code)
	}
}

func TestAuth_BearerHeaderAccepted(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/interaction", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, model.Student))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("bearer token: expected 200, got %d", w.Code)
	}
}

func TestAuth_RevokedTokenRejected(t *testing.T) {
	token := tokenFor(t, model.Teacher)
	claims, err := util.ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT error: %v", err)
	}
	r := newTestRouter(staticRevoker{claims.ID: true})

	if w := perform(r, http.MethodGet, "/api/stats", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token: expected 401, got %d", w.Code)
	}
	if w := perform(r, http.MethodGet, "/teacher/dashboard", token); w.Code != http.StatusFound {
		t.Fatalf("revoked token on web route: expected 302, got %d", w.Code)
	}
}

func TestAuth_GarbageTokenRejected(t *testing.T) {
	r := newTestRouter(nil)

	if w := perform(r, http.MethodGet, "/api/stats", "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", w.Code)
	}
}
