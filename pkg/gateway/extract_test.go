package gateway

import (
	"strings"
	"testing"

	pkgerrors "github.com/rukkie/storefront/pkg/errors"
)

func TestExtractErrorPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  map[string]any
		fallback string
		wantCode pkgerrors.Code
		wantMsg  string
	}{
		{
			name:     "nil payload uses fallback",
			payload:  nil,
			fallback: "Bad Request",
			wantCode: pkgerrors.CodeAPI,
			wantMsg:  "Bad Request",
		},
		{
			name:     "stock code with zero availability",
			payload:  map[string]any{"error": "insufficient_stock", "available_stock": float64(0), "detail": "ignored"},
			fallback: "Conflict",
			wantCode: pkgerrors.CodeStock,
			wantMsg:  "This product is currently out of stock.",
		},
		{
			name:     "stock code without availability",
			payload:  map[string]any{"error": "insufficient_stock"},
			fallback: "Conflict",
			wantCode: pkgerrors.CodeStock,
			wantMsg:  "This product is currently out of stock.",
		},
		{
			name:     "stock code prefers server detail",
			payload:  map[string]any{"error": "insufficient_stock", "available_stock": float64(3), "detail": "Only a few left."},
			fallback: "Conflict",
			wantCode: pkgerrors.CodeStock,
			wantMsg:  "Only a few left.",
		},
		{
			name:     "stock code builds count message",
			payload:  map[string]any{"error": "insufficient_stock", "available_stock": float64(3)},
			fallback: "Conflict",
			wantCode: pkgerrors.CodeStock,
			wantMsg:  "Insufficient stock. Only 3 item(s) available.",
		},
		{
			name:     "detail wins over message",
			payload:  map[string]any{"detail": "Cart is empty.", "message": "other"},
			fallback: "Bad Request",
			wantCode: pkgerrors.CodeAPI,
			wantMsg:  "Cart is empty.",
		},
		{
			name:     "message wins over error code",
			payload:  map[string]any{"message": "Try again later.", "error": "rate_limited"},
			fallback: "Too Many Requests",
			wantCode: pkgerrors.CodeAPI,
			wantMsg:  "Try again later.",
		},
		{
			name:     "error code is title cased",
			payload:  map[string]any{"error": "email_not_verified"},
			fallback: "Forbidden",
			wantCode: pkgerrors.CodeAPI,
			wantMsg:  "Email Not Verified",
		},
		{
			name:     "missing fields list",
			payload:  map[string]any{"fields": []any{"shipping_address", "payment_method"}},
			fallback: "Bad Request",
			wantCode: pkgerrors.CodeAPI,
			wantMsg:  "Missing required fields: shipping_address, payment_method",
		},
		{
			name:     "unrecognized payload uses fallback",
			payload:  map[string]any{"status": "error"},
			fallback: "Internal Server Error",
			wantCode: pkgerrors.CodeAPI,
			wantMsg:  "Internal Server Error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := extractError(tc.payload, tc.fallback)
			if err.Code() != tc.wantCode {
				t.Fatalf("code = %q, want %q", err.Code(), tc.wantCode)
			}
			if err.Message() != tc.wantMsg {
				t.Fatalf("message = %q, want %q", err.Message(), tc.wantMsg)
			}
		})
	}
}

func TestStockErrorWithStringAvailability(t *testing.T) {
	t.Parallel()

	err := extractError(map[string]any{"error": "insufficient_stock", "available_stock": "5"}, "Conflict")
	if err.Code() != pkgerrors.CodeStock {
		t.Fatalf("code = %q, want %q", err.Code(), pkgerrors.CodeStock)
	}
	if !strings.Contains(err.Message(), "5") {
		t.Fatalf("expected count in message, got %q", err.Message())
	}
}

func TestToTitleCaseHandlesSeparators(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"invalid_credentials": "Invalid Credentials",
		"rate-limited":        "Rate Limited",
		"timeout":             "Timeout",
	}
	for input, want := range tests {
		if got := toTitleCase(input); got != want {
			t.Errorf("toTitleCase(%q) = %q, want %q", input, got, want)
		}
	}
}
