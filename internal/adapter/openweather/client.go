package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/beach-safety-advisor/internal/domain"
	"github.com/couchcryptid/beach-safety-advisor/internal/observability"
	"github.com/hashicorp/go-retryablehttp"
)

// Client implements domain.ObservationSource using the OpenWeatherMap
// current weather API. Requests use imperial units so temperatures arrive in
// °F and wind speeds in mph, matching the engine's observation record.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap client with retrying transport.
func NewClient(apiKey, baseURL string, timeout time.Duration, retryMax int, metrics *observability.Metrics, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = retryMax
	httpClient := rc.StandardClient()
	httpClient.Timeout = timeout

	return &Client{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// CurrentConditions fetches the raw current weather payload for a coordinate
// pair. Transport errors and non-success statuses are reported as
// domain.UpstreamUnavailableError; the payload itself is returned unparsed
// for the normalizer.
func (c *Client) CurrentConditions(ctx context.Context, lat, lon float64) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "imperial")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, &domain.UpstreamUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, &domain.UpstreamUnavailableError{
			Status: resp.StatusCode,
			Err:    errors.New(decodeAPIMessage(resp.Body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, &domain.UpstreamUnavailableError{Err: err}
	}

	c.metrics.UpstreamRequests.WithLabelValues("success").Inc()
	return body, nil
}

// apiError is OpenWeatherMap's error body. cod arrives as an int or a string
// depending on the endpoint, so it is left untyped.
type apiError struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

func decodeAPIMessage(r io.Reader) string {
	var e apiError
	if err := json.NewDecoder(r).Decode(&e); err != nil || e.Message == "" {
		return "unexpected provider response"
	}
	return e.Message
}
