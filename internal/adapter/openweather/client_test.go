package openweather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/beach-safety-advisor/internal/domain"
	"github.com/couchcryptid/beach-safety-advisor/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey        = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

const conditionsBody = `{
	"weather": [{"main": "Clear", "description": "clear sky"}],
	"main": {"temp": 81.5, "feels_like": 84.2, "humidity": 55, "pressure": 1015},
	"wind": {"speed": 7.4, "deg": 180},
	"visibility": 10000,
	"clouds": {"all": 10}
}`

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(baseURL string) *Client {
	return NewClient(testAPIKey, baseURL, 5*time.Second, 0, testMetrics(), discardLogger())
}

func TestClient_CurrentConditions_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "40.5749", q.Get("lat"))
		assert.Equal(t, "-73.9850", q.Get("lon"))
		assert.Equal(t, testAPIKey, q.Get("appid"))
		assert.Equal(t, "imperial", q.Get("units"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(conditionsBody))
	}))
	defer srv.Close()

	payload, err := testClient(srv.URL).CurrentConditions(context.Background(), 40.5749, -73.985)
	require.NoError(t, err)
	assert.JSONEq(t, conditionsBody, string(payload))
}

func TestClient_CurrentConditions_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CurrentConditions(context.Background(), 40.5749, -73.985)
	require.Error(t, err)

	var unavailable *domain.UpstreamUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, http.StatusUnauthorized, unavailable.Status)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestClient_CurrentConditions_UndecodableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CurrentConditions(context.Background(), 40.5749, -73.985)
	require.Error(t, err)

	var unavailable *domain.UpstreamUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, http.StatusBadRequest, unavailable.Status)
	assert.Contains(t, err.Error(), "unexpected provider response")
}

func TestClient_CurrentConditions_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(testAPIKey, srv.URL, 50*time.Millisecond, 0, testMetrics(), discardLogger())

	_, err := c.CurrentConditions(context.Background(), 40.5749, -73.985)
	require.Error(t, err)

	var unavailable *domain.UpstreamUnavailableError
	assert.True(t, errors.As(err, &unavailable))
}

func TestClient_CurrentConditions_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).CurrentConditions(ctx, 40.5749, -73.985)
	require.Error(t, err)
}

func TestClient_CurrentConditions_RetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(conditionsBody))
	}))
	defer srv.Close()

	c := NewClient(testAPIKey, srv.URL, 5*time.Second, 2, testMetrics(), discardLogger())

	payload, err := c.CurrentConditions(context.Background(), 40.5749, -73.985)
	require.NoError(t, err)
	assert.JSONEq(t, conditionsBody, string(payload))
	assert.Equal(t, 2, attempts)
}
