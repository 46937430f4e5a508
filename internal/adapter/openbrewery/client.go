package openbrewery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/couchcryptid/brewery-dashboard/internal/domain"
	"github.com/couchcryptid/brewery-dashboard/internal/observability"
)

// DefaultBaseURL is the public Open Brewery DB v1 endpoint.
const DefaultBaseURL = "https://api.openbrewerydb.org/v1"

const (
	endpointList   = "list"
	endpointDetail = "detail"
)

// Client implements domain.RecordSource against the Open Brewery DB REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an Open Brewery DB client. rps limits outgoing requests
// per second; zero or less disables limiting.
func NewClient(baseURL string, timeout time.Duration, rps float64, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		limiter: newLimiter(rps),
		metrics: metrics,
		logger:  logger,
	}
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
}

// FetchPage requests one list page. Page 0 omits the page parameter.
func (c *Client) FetchPage(ctx context.Context, page, perPage int) ([]domain.Brewery, error) {
	params := url.Values{
		"per_page": {strconv.Itoa(perPage)},
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	var records []domain.Brewery
	if err := c.doRequest(ctx, c.baseURL+"/breweries?"+params.Encode(), endpointList, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Brewery{}
	}
	return records, nil
}

// FetchByID requests a single brewery.
func (c *Client) FetchByID(ctx context.Context, id string) (domain.Brewery, error) {
	var b domain.Brewery
	if err := c.doRequest(ctx, c.baseURL+"/breweries/"+url.PathEscape(id), endpointDetail, &b); err != nil {
		return domain.Brewery{}, err
	}
	if b.ID == "" {
		c.metrics.SourceRequests.WithLabelValues(endpointDetail, "malformed").Inc()
		return domain.Brewery{}, fmt.Errorf("%w: brewery %q has no id", domain.ErrMalformedResponse, id)
	}
	return b, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait: %w", domain.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.SourceRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.SourceRequests.WithLabelValues(endpoint, "transport_error").Inc()
		return fmt.Errorf("%w: %s request: %w", domain.ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && endpoint == endpointDetail {
		c.metrics.SourceRequests.WithLabelValues(endpoint, "not_found").Inc()
		return domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.metrics.SourceRequests.WithLabelValues(endpoint, "transport_error").Inc()
		return fmt.Errorf("%w: open brewery db status %d: %s", domain.ErrTransport, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.SourceRequests.WithLabelValues(endpoint, "malformed").Inc()
		return fmt.Errorf("%w: decode %s response: %w", domain.ErrMalformedResponse, endpoint, err)
	}

	c.metrics.SourceRequests.WithLabelValues(endpoint, "success").Inc()
	c.logger.Debug("record source request", "endpoint", endpoint, "url", fullURL, "duration", time.Since(start))
	return nil
}
