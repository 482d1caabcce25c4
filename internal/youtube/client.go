// Package youtube resolves video metadata through the YouTube Data API v3.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/tendant/learning-tracks/internal/config"
	"github.com/tendant/learning-tracks/internal/domain"
)

// DefaultBaseURL is the Data API videos endpoint
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3/videos"

// VideoData is the metadata resolved for one video
type VideoData struct {
	VideoID     string
	Title       string
	Description string
	Duration    int // whole seconds
}

// Client calls the videos endpoint. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option is a function that configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLimiter replaces the outbound rate limiter
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// New creates a client from configuration
func New(cfg config.YouTubeConfig, opts ...Option) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	c := &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet *struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
		ContentDetails *struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason  string `json:"reason"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"error"`
}

// Resolve fetches title, description and duration for videoID with a single
// request. Not-found conditions match domain.ErrNotFound; throttling,
// transport failures and timeouts match domain.ErrExternalUnavailable.
func (c *Client) Resolve(ctx context.Context, videoID string) (*VideoData, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrExternalUnavailable, err)
	}

	q := url.Values{}
	q.Set("id", videoID)
	q.Set("part", "snippet,contentDetails")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrExternalUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", domain.ErrExternalUnavailable, stripURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyError(resp)
	}

	var body videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrExternalUnavailable, err)
	}

	if len(body.Items) == 0 {
		return nil, domain.ErrVideoNotFound
	}
	item := body.Items[0]
	if item.Snippet == nil || item.ContentDetails == nil || item.Snippet.Title == "" {
		return nil, domain.ErrVideoNotFound
	}

	return &VideoData{
		VideoID:     videoID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Duration:    ParseDuration(item.ContentDetails.Duration),
	}, nil
}

// stripURL drops the request URL that *url.Error puts in its message
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func classifyError(resp *http.Response) error {
	var reason, message string
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var er errorResponse
	if json.Unmarshal(data, &er) == nil {
		message = er.Error.Message
		if len(er.Error.Errors) > 0 {
			reason = er.Error.Errors[0].Reason
		}
	}

	switch {
	case reason == "quotaExceeded" || reason == "dailyLimitExceeded":
		return domain.ErrQuotaExceeded
	case reason == "rateLimitExceeded" || reason == "userRateLimitExceeded" ||
		resp.StatusCode == http.StatusTooManyRequests:
		return domain.ErrRateLimitExceeded
	case reason == "videoNotFound" || resp.StatusCode == http.StatusNotFound:
		return domain.ErrVideoNotFound
	}

	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Reason: reason, Message: message}
}

// APIError is a non-2xx answer that is neither not-found nor throttling.
// It matches domain.ErrExternalUnavailable.
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("youtube API error (status %d, %s): %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("youtube API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == domain.ErrExternalUnavailable
}

// IsThrottled reports whether err came from quota or rate limiting
func IsThrottled(err error) bool {
	return errors.Is(err, domain.ErrQuotaExceeded) || errors.Is(err, domain.ErrRateLimitExceeded)
}
