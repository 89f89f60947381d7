package gateway

import (
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/rukkie/storefront/pkg/errors"
)

const (
	stockErrorCode    = "insufficient_stock"
	outOfStockMessage = "This product is currently out of stock."
)

// extractError turns an error payload into a typed error whose message is
// ready for the UI. Precedence: the stock error code, then detail, message,
// a title-cased error code, a missing-fields list, and finally the fallback.
// The raw payload rides along as details so callers that key off backend
// error codes can still reach them.
func extractError(payload map[string]any, fallback string) *pkgerrors.Error {
	if payload == nil {
		return pkgerrors.New(pkgerrors.CodeAPI, fallback)
	}

	if code, _ := payload["error"].(string); code == stockErrorCode {
		return stockError(payload).WithDetails(payload)
	}

	if detail, ok := payload["detail"].(string); ok && strings.TrimSpace(detail) != "" {
		return pkgerrors.New(pkgerrors.CodeAPI, detail).WithDetails(payload)
	}
	if message, ok := payload["message"].(string); ok && strings.TrimSpace(message) != "" {
		return pkgerrors.New(pkgerrors.CodeAPI, message).WithDetails(payload)
	}
	if code, ok := payload["error"].(string); ok && strings.TrimSpace(code) != "" {
		return pkgerrors.New(pkgerrors.CodeAPI, toTitleCase(code)).WithDetails(payload)
	}

	if fields := stringSlice(payload["fields"]); len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeAPI, "Missing required fields: "+strings.Join(fields, ", ")).WithDetails(payload)
	}

	return pkgerrors.New(pkgerrors.CodeAPI, fallback).WithDetails(payload)
}

func stockError(payload map[string]any) *pkgerrors.Error {
	available, known := numericField(payload, "available_stock")
	if !known || available <= 0 {
		return pkgerrors.New(pkgerrors.CodeStock, outOfStockMessage)
	}
	if detail, ok := payload["detail"].(string); ok && strings.TrimSpace(detail) != "" {
		return pkgerrors.New(pkgerrors.CodeStock, detail)
	}
	return pkgerrors.New(pkgerrors.CodeStock, fmt.Sprintf("Insufficient stock. Only %s item(s) available.", formatNumber(available)))
}

func numericField(payload map[string]any, key string) (float64, bool) {
	switch v := payload[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func stringSlice(raw any) []string {
	values, ok := raw.([]any)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			fields = append(fields, s)
		}
	}
	return fields
}

var codeSeparators = strings.NewReplacer("_", " ", "-", " ")

func toTitleCase(value string) string {
	words := strings.Fields(codeSeparators.Replace(value))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
