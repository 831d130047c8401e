package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/mkulimalink/internal/config"
	"github.com/spec-kit/mkulimalink/internal/observability"
)

func testSMSConfig(baseURL string) config.SMSConfig {
	return config.SMSConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Username:       "InuaMkulimaApp",
		TimeoutSeconds: 2,
	}
}

func TestClientSend(t *testing.T) {
	var gotAPIKey, gotTo, gotUsername string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotAPIKey = r.Header.Get("apiKey")
		gotTo = r.FormValue("to")
		gotUsername = r.FormValue("username")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(testSMSConfig(srv.URL), zap.NewNop(), observability.NewMetrics())
	err := client.Send(context.Background(), "+254712345678", "approved")

	require.NoError(t, err)
	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, "+254712345678", gotTo)
	assert.Equal(t, "InuaMkulimaApp", gotUsername)
}

func TestClientSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(testSMSConfig(srv.URL), zap.NewNop(), observability.NewMetrics())
	err := client.Send(context.Background(), "+254712345678", "approved")
	assert.Error(t, err)
}

func TestClientDisabledWithoutAPIKey(t *testing.T) {
	cfg := testSMSConfig("http://unused.invalid")
	cfg.APIKey = ""

	client := NewClient(cfg, zap.NewNop(), observability.NewMetrics())
	assert.False(t, client.Enabled())

	err := client.Send(context.Background(), "+254712345678", "approved")
	assert.ErrorIs(t, err, ErrDisabled)
}
