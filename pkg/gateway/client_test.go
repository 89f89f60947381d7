package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"

	pkgerrors "github.com/rukkie/storefront/pkg/errors"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(t *testing.T, fn roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient("https://api.example.com", WithHTTPClient(&http.Client{Transport: fn}))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func jsonResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
	return resp
}

func TestNewClientRequiresAbsoluteBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(""); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := NewClient("/api"); err == nil {
		t.Fatal("expected error for relative base url")
	}
}

func TestGetResolvesResourceAgainstBase(t *testing.T) {
	t.Parallel()

	var requested *url.URL
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		requested = req.URL
		return jsonResponse(http.StatusOK, `{"ok":true}`), nil
	})

	if _, err := client.Get(context.Background(), "/api/orders/track/?order_id=42"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if requested.Path != "/api/orders/track/" {
		t.Fatalf("unexpected path %q", requested.Path)
	}
	if requested.RawQuery != "order_id=42" {
		t.Fatalf("unexpected query %q", requested.RawQuery)
	}
}

func TestGetDoesNotSendCSRFHeader(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("X-CSRFToken"); got != "" {
			t.Errorf("unexpected CSRF header on GET: %q", got)
		}
		if got := req.Header.Get("Content-Type"); got != "" {
			t.Errorf("unexpected Content-Type on GET: %q", got)
		}
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	if _, err := client.Get(context.Background(), "/api/cart/"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
}

func TestPostSendsCSRFTokenFromCookieJar(t *testing.T) {
	t.Parallel()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New returned error: %v", err)
	}
	base, _ := url.Parse("https://api.example.com")
	jar.SetCookies(base, []*http.Cookie{{Name: "csrftoken", Value: "tok-123"}})

	var header http.Header
	httpClient := &http.Client{
		Jar: jar,
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			header = req.Header
			return jsonResponse(http.StatusOK, `{"ok":true}`), nil
		}),
	}
	client, err := NewClient("https://api.example.com", WithHTTPClient(httpClient))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := client.Post(context.Background(), "/api/cart/add/", map[string]any{"product_id": 1, "quantity": 2}); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if got := header.Get("X-CSRFToken"); got != "tok-123" {
		t.Fatalf("expected CSRF token header, got %q", got)
	}
	if got := header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected json content type, got %q", got)
	}
}

func TestPostNilBodySendsEmptyObject(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			t.Errorf("reading request body: %v", err)
		}
		if strings.TrimSpace(string(raw)) != "{}" {
			t.Errorf("expected empty object body, got %q", raw)
		}
		return jsonResponse(http.StatusOK, `{"ok":true}`), nil
	})

	if _, err := client.Post(context.Background(), "/api/cart/clear/", nil); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
}

func TestNoContentBecomesOKPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNoContent, ""), nil
	})

	payload, err := client.Get(context.Background(), "/api/cart/")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok, _ := payload["ok"].(bool); !ok {
		t.Fatalf("expected ok=true payload, got %v", payload)
	}
}

func TestNonJSONSuccessBecomesDetail(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "all good"), nil
	})

	payload, err := client.Get(context.Background(), "/api/ping/")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got, _ := payload["detail"].(string); got != "all good" {
		t.Fatalf("expected detail payload, got %v", payload)
	}
}

func TestEmptySuccessBecomesEmptyObject(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, ""), nil
	})

	payload, err := client.Get(context.Background(), "/api/ping/")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(payload) != 0 {
		t.Fatalf("expected empty payload, got %v", payload)
	}
}

func TestJSONArrayPassesThrough(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `[{"name":"Silk Scarf"},{"name":"Wool Coat"}]`), nil
	})

	var rows []struct {
		Name string `json:"name"`
	}
	if err := client.GetInto(context.Background(), "/api/products/", &rows); err != nil {
		t.Fatalf("GetInto returned error: %v", err)
	}
	if len(rows) != 2 || rows[1].Name != "Wool Coat" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestErrorResponseCarriesExtractedMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"detail":"Cart is empty."}`), nil
	})

	_, err := client.Get(context.Background(), "/api/checkout/")
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %T", err)
	}
	if typed.Message() != "Cart is empty." {
		t.Fatalf("unexpected message %q", typed.Message())
	}
	if typed.Code() != pkgerrors.CodeAPI {
		t.Fatalf("unexpected code %q", typed.Code())
	}
}

func TestTransportFailureIsDependencyError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, io.ErrUnexpectedEOF
	})

	_, err := client.Get(context.Background(), "/api/cart/")
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %T", err)
	}
	if typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("unexpected code %q", typed.Code())
	}
}
