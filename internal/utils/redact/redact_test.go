package redact_test

import (
	"testing"

	"github.com/SscSPs/solar_backoffice/internal/utils/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_TopLevelKeys(t *testing.T) {
	in := map[string]any{
		"password":      "hunter2",
		"Authorization": "Bearer abc",
		"userApiKey":    "k-123",
		"amount":        600,
	}

	out := redact.Sanitize(in)

	assert.Equal(t, redact.Marker, out["password"])
	assert.Equal(t, redact.Marker, out["Authorization"])
	assert.Equal(t, redact.Marker, out["userApiKey"])
	assert.Equal(t, 600, out["amount"])
	assert.Equal(t, "hunter2", in["password"], "input must not be modified")
}

func TestSanitize_NestedAtAnyDepth(t *testing.T) {
	in := map[string]any{
		"customer": map[string]any{
			"name": "Lucía",
			"dni":  "12345678Z",
			"billing": map[string]any{
				"credit_card_number": "4111111111111111",
				"city":               "Sevilla",
			},
		},
		"attempts": []any{
			map[string]any{"session_token": "t1", "ok": true},
			"plain",
		},
		"headers": map[string]string{"Cookie": "sid=1", "Accept": "json"},
	}

	out := redact.Sanitize(in)

	customer := out["customer"].(map[string]any)
	assert.Equal(t, "Lucía", customer["name"])
	assert.Equal(t, redact.Marker, customer["dni"])

	billing := customer["billing"].(map[string]any)
	assert.Equal(t, redact.Marker, billing["credit_card_number"])
	assert.Equal(t, "Sevilla", billing["city"])

	attempts := out["attempts"].([]any)
	require.Len(t, attempts, 2)
	first := attempts[0].(map[string]any)
	assert.Equal(t, redact.Marker, first["session_token"])
	assert.Equal(t, true, first["ok"])
	assert.Equal(t, "plain", attempts[1])

	headers := out["headers"].(map[string]any)
	assert.Equal(t, redact.Marker, headers["Cookie"])
	assert.Equal(t, "json", headers["Accept"])
}

func TestSanitize_SensitiveKeyHidesWholeSubtree(t *testing.T) {
	out := redact.Sanitize(map[string]any{
		"secrets": map[string]any{"inner": "value"},
	})
	assert.Equal(t, redact.Marker, out["secrets"])
}

func TestSanitize_Nil(t *testing.T) {
	out := redact.Sanitize(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestIsSensitiveKey(t *testing.T) {
	for _, key := range []string{"password", "NIF", "x-api_key", "ssn", "refreshToken", "client_secret"} {
		assert.True(t, redact.IsSensitiveKey(key), key)
	}
	for _, key := range []string{"amount", "reference", "paymentMethod"} {
		assert.False(t, redact.IsSensitiveKey(key), key)
	}
}
