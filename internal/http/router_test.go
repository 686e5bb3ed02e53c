package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/notequiz-backend/internal/http/handlers"
	httpMW "github.com/yungbote/notequiz-backend/internal/http/middleware"
	"github.com/yungbote/notequiz-backend/internal/observability"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/services"
)

func TestRouterPublicAndProtectedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	authService, err := services.NewAuthService(log, services.AuthConfig{Secret: "router-secret"})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	r := NewRouter(RouterConfig{
		Log:            log,
		Metrics:        observability.NewMetrics("routertest"),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, authService),
		HistoryHandler: httpH.NewHistoryHandler(log, services.NewHistoryService(log, nil)),
		HealthHandler:  httpH.NewHealthHandler(nil),
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("protected route without token: want=401 got=%d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("request id header missing")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "routertest_http_requests_total") {
		t.Fatalf("metrics: %d", rec.Code)
	}
}
