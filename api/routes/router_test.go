package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rukkie/storefront/internal/cart"
	"github.com/rukkie/storefront/internal/reconcile"
	"github.com/rukkie/storefront/pkg/config"
	"github.com/rukkie/storefront/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubGateway struct {
	cartJSON    string
	trackStatus string
	posts       []string
}

func (g *stubGateway) Get(ctx context.Context, resource string) (map[string]any, error) {
	return map[string]any{"status": g.trackStatus}, nil
}

func (g *stubGateway) GetInto(ctx context.Context, resource string, dest any) error {
	return json.Unmarshal([]byte(g.cartJSON), dest)
}

func (g *stubGateway) Post(ctx context.Context, resource string, body any) (map[string]any, error) {
	g.posts = append(g.posts, resource)
	return map[string]any{"ok": true}, nil
}

func newTestRouter(t *testing.T, gw *stubGateway) http.Handler {
	t.Helper()

	cartStore, err := cart.NewStore(gw)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	flow, err := reconcile.NewFlow(gw, cartStore, config.ReconcileConfig{
		PollAttempts: 2,
		PollInterval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewFlow returned error: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "router-test"})
	return NewRouter(cfg, logg, flow, cartStore, stubPinger{}, prometheus.NewRegistry())
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, &stubGateway{cartJSON: `{"items":[]}`})

	for _, path := range []string{"/health/live", "/health/ready", "/healthz"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, rec.Code)
		}
		if got := rec.Header().Get("X-Rukkie-Env"); got != "test" {
			t.Fatalf("%s env header = %q", path, got)
		}
	}
}

func TestLandingWithoutMarkersReportsCart(t *testing.T) {
	router := newTestRouter(t, &stubGateway{cartJSON: `{"items":[]}`})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cart_count") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestCancelledReturnRedirectsWithNotice(t *testing.T) {
	gw := &stubGateway{cartJSON: `{"items":[]}`}
	router := newTestRouter(t, gw)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?payment=cancelled&provider=stripe&order=42", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want /", got)
	}
	if len(gw.posts) != 0 {
		t.Fatalf("cancelled return must not call the backend, got %v", gw.posts)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "storefront_notice" {
		t.Fatalf("expected notice cookie, got %v", cookies)
	}
}

func TestSuccessReturnReconcilesAndStripsMarkers(t *testing.T) {
	gw := &stubGateway{cartJSON: `{"items":[]}`, trackStatus: "paid"}
	router := newTestRouter(t, gw)

	rec := httptest.NewRecorder()
	target := "/?payment=success&provider=stripe&order=42&session_id=abc&ref=newsletter"
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/?ref=newsletter" {
		t.Fatalf("Location = %q, want /?ref=newsletter", got)
	}
	if len(gw.posts) != 1 || gw.posts[0] != "/api/payments/stripe/confirm/" {
		t.Fatalf("expected one stripe confirm, got %v", gw.posts)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t, &stubGateway{cartJSON: `{"items":[]}`})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}
