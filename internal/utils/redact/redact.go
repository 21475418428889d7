// Package redact strips sensitive values from free-form metadata before it is persisted.
package redact

import (
	"strings"
)

// Marker replaces every redacted value.
const Marker = "[REDACTED]"

// sensitiveTerms are matched as case-insensitive substrings of a key.
var sensitiveTerms = []string{
	"password",
	"token",
	"secret",
	"apikey",
	"api_key",
	"authorization",
	"cookie",
	"credit_card",
	"ssn",
	"dni",
	"nif",
}

// IsSensitiveKey reports whether values under key must not be stored.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, term := range sensitiveTerms {
		if strings.Contains(k, term) {
			return true
		}
	}
	return false
}

// Sanitize returns a copy of metadata with sensitive values replaced by Marker.
// Nested maps and slices are walked recursively. The input is never modified.
func Sanitize(metadata map[string]any) map[string]any {
	if metadata == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(metadata))
	for k, v := range metadata {
		if IsSensitiveKey(k) {
			out[k] = Marker
			continue
		}
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return Sanitize(val)
	case map[string]string:
		m := make(map[string]any, len(val))
		for k, s := range val {
			m[k] = s
		}
		return Sanitize(m)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = sanitizeValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Sanitize(item)
		}
		return out
	default:
		return v
	}
}
