package avwx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/lox/avwxlog/internal/httputil"
	"github.com/lox/avwxlog/internal/metrics"
)

// DefaultBaseURL is the public AVWX REST endpoint.
const DefaultBaseURL = "https://avwx.rest/api"

// Client fetches METAR and TAF reports from the AVWX REST API. The token is
// optional; when set it is sent as an Authorization header on every request.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  httputil.NewClient(),
	}
}

// FetchMETAR retrieves the current observation for an ICAO station. The raw
// response body is returned alongside the decoded payload for archival.
func (c *Client) FetchMETAR(ctx context.Context, icao string) (*METARResponse, []byte, error) {
	body, err := c.get(ctx, "metar", icao)
	if err != nil {
		return nil, body, err
	}
	var m METARResponse
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, body, fmt.Errorf("unmarshal metar: %w", err)
	}
	return &m, body, nil
}

// FetchTAF retrieves the current forecast for an ICAO station. Always a
// separate API call from FetchMETAR; the two report kinds are never shared.
func (c *Client) FetchTAF(ctx context.Context, icao string) (*TAFResponse, []byte, error) {
	body, err := c.get(ctx, "taf", icao)
	if err != nil {
		return nil, body, err
	}
	var t TAFResponse
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, body, fmt.Errorf("unmarshal taf: %w", err)
	}
	return &t, body, nil
}

func (c *Client) get(ctx context.Context, report, icao string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, report, icao)

	var body []byte
	var status int
	start := time.Now()

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if c.token != "" {
			req.Header.Set("Authorization", "token "+c.token)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("fetch %s: %w", report, err))
		}
		defer resp.Body.Close()
		status = resp.StatusCode

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("rate limited: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("fetch %s: status %d: %s", report, resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	err := backoff.Retry(operation, backoff.WithContext(bo, ctx))

	metrics.APICallsTotal.WithLabelValues(icao, report, strconv.Itoa(status)).Inc()
	metrics.APILatency.WithLabelValues(icao, report).Observe(time.Since(start).Seconds())

	if err != nil {
		return body, err
	}
	return body, nil
}
