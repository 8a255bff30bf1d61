package getalts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/getalts/getalts-go/pkg/cache"
	"github.com/getalts/getalts-go/pkg/errors"
	"github.com/getalts/getalts-go/pkg/httputil"
	"github.com/getalts/getalts-go/pkg/observability"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "http://getalts.club/api"

// Defaults applied by New when the corresponding Config field is zero.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = 5 * time.Minute
)

// maxResponseSize caps response bodies read into memory.
const maxResponseSize = 1 << 20

// Config holds client construction settings.
// Token is the only required field; everything else has a sensible default.
type Config struct {
	// BaseURL is the API endpoint. Defaults to [DefaultBaseURL].
	BaseURL string

	// Token authenticates every request. Required.
	Token string

	// Timeout bounds each call, including retries' individual attempts.
	// Defaults to [DefaultTimeout].
	Timeout time.Duration

	// Retry configures backoff for transient failures. The zero value
	// disables retries: transport and timeout failures surface on the
	// first attempt.
	Retry httputil.Policy

	// TransientCodes lists remote API error codes that are retried
	// under the retry policy (e.g. "rate_limited"). API errors with
	// other codes always surface immediately.
	TransientCodes []string

	// Cache stores read-style responses (amounts, prices). Defaults to
	// [cache.NullCache], which disables caching. The client owns the
	// backend and closes it in [Client.Close].
	Cache cache.Cache

	// CacheTTL is how long read-style responses stay fresh.
	// Defaults to [DefaultCacheTTL].
	CacheTTL time.Duration

	// Logger receives debug-level request logs. Defaults to a silent
	// logger.
	Logger *log.Logger
}

// Client talks to the GetAlts activation API.
//
// A Client is stateless per call and safe for concurrent use by multiple
// goroutines; the underlying connection pool is shared across calls.
// Construct with [New], release with [Client.Close].
type Client struct {
	baseURL   string
	token     string
	timeout   time.Duration
	retry     httputil.Policy
	transient map[string]bool
	cacheTTL  time.Duration

	http  *http.Client
	cache cache.Cache
	log   *log.Logger
}

// New creates a Client from cfg.
// Fails with an INVALID_CONFIG or INVALID_TOKEN error when required
// fields are missing or malformed; no network traffic happens here.
func New(cfg Config) (*Client, error) {
	if err := errors.ValidateToken(cfg.Token); err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if err := errors.ValidateBaseURL(baseURL); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if timeout < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "timeout cannot be negative")
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = DefaultCacheTTL
	}

	backend := cfg.Cache
	if backend == nil {
		backend = cache.NewNullCache()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	transient := make(map[string]bool, len(cfg.TransientCodes))
	for _, code := range cfg.TransientCodes {
		transient[code] = true
	}

	return &Client{
		baseURL:   baseURL,
		token:     cfg.Token,
		timeout:   timeout,
		retry:     cfg.Retry,
		transient: transient,
		cacheTTL:  cacheTTL,
		http:      &http.Client{Timeout: timeout},
		cache:     backend,
		log:       logger,
	}, nil
}

// Close releases the client's resources: the cache backend and any idle
// connections. The client must not be used after Close.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return c.cache.Close()
}

// endpoint builds the URL for an API operation.
func (c *Client) endpoint(op string) string {
	return c.baseURL + "/" + op
}

// get performs one API operation: builds the URL, attaches the token,
// sends the request (retrying transient failures per policy), checks the
// error envelope, and decodes the payload into v.
func (c *Client) get(ctx context.Context, op string, params url.Values, v any) error {
	query := url.Values{}
	for k, vals := range params {
		for _, val := range vals {
			query.Add(k, val)
		}
	}
	query.Set("token", c.token)
	reqURL := c.endpoint(op) + "?" + query.Encode()

	attempt := 0
	return httputil.RetryWithPolicy(ctx, c.retry, func() error {
		attempt++
		return c.doOnce(ctx, op, reqURL, attempt, v)
	})
}

// doOnce performs a single request attempt and classifies its outcome.
// Transient failures come back wrapped with httputil.Retryable so the
// retry loop can distinguish them.
func (c *Client) doOnce(ctx context.Context, op, reqURL string, attempt int, v any) error {
	requestID := uuid.NewString()
	hooks := observability.HTTP()

	if attempt > 1 {
		hooks.OnRetry(ctx, requestID, op, attempt, nil)
	}
	hooks.OnRequest(ctx, requestID, op)
	c.log.Debug("api request", "op", op, "attempt", attempt, "request_id", requestID)

	callCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build %s request", op)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		classified := classifyTransportError(ctx, op, err)
		hooks.OnError(ctx, requestID, op, classified)
		return classified
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		classified := classifyTransportError(ctx, op, err)
		hooks.OnError(ctx, requestID, op, classified)
		return classified
	}

	hooks.OnResponse(ctx, requestID, op, resp.StatusCode, time.Since(start))
	c.log.Debug("api response", "op", op, "status", resp.StatusCode,
		"bytes", len(body), "elapsed", time.Since(start).Round(time.Millisecond))

	if err := c.checkStatus(op, resp.StatusCode); err != nil {
		hooks.OnError(ctx, requestID, op, err)
		return err
	}

	if apiErr := parseAPIError(op, body); apiErr != nil {
		hooks.OnError(ctx, requestID, op, apiErr)
		if c.transient[apiErr.RemoteCode] {
			return httputil.Retryable(apiErr)
		}
		return apiErr
	}

	if err := json.Unmarshal(body, v); err != nil {
		decErr := &errors.DecodeError{Operation: op, Raw: body, Cause: err}
		hooks.OnError(ctx, requestID, op, decErr)
		return decErr
	}
	return nil
}

// checkStatus maps non-2xx HTTP statuses onto the error taxonomy.
// The API reports most failures in-band with a 200, so anything else is
// either infrastructure trouble (5xx, retryable) or a hard rejection.
func (c *Client) checkStatus(op string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests:
		apiErr := &errors.APIError{RemoteCode: "rate_limited", Operation: op}
		if c.transient[apiErr.RemoteCode] {
			return httputil.Retryable(apiErr)
		}
		return apiErr
	case code >= 500:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "%s: status %d", op, code))
	default:
		return &errors.APIError{RemoteCode: fmt.Sprintf("http_%d", code), Operation: op}
	}
}

// classifyTransportError maps low-level request failures onto the error
// taxonomy. Caller cancellation propagates as-is so callers can match
// context.Canceled; timeouts and connection failures are transient.
func classifyTransportError(ctx context.Context, op string, err error) error {
	if ctx.Err() == context.Canceled {
		return ctx.Err()
	}
	if isTimeout(ctx, err) {
		return httputil.Retryable(errors.Wrap(errors.ErrCodeTimeout, err, "%s: no response within deadline", op))
	}
	return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "%s: request failed", op))
}

// apiEnvelope covers both error shapes the API is known to produce:
// a bare {"error": "..."} and {"status": "error", "code": "...",
// "message": "..."}.
type apiEnvelope struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	ErrCode string `json:"code"`
	Message string `json:"message"`
}

// parseAPIError returns a non-nil APIError when body carries an error
// envelope. Bodies that are not JSON objects (arrays, numbers) are left
// for the decode step.
func parseAPIError(op string, body []byte) *errors.APIError {
	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	if env.Error != "" {
		return &errors.APIError{RemoteCode: env.Error, Message: env.Message, Operation: op}
	}
	if env.Status == "error" {
		return &errors.APIError{RemoteCode: env.ErrCode, Message: env.Message, Operation: op}
	}
	return nil
}

// cached retrieves v from the cache or runs fetch and stores the result.
// If refresh is true the cache is bypassed and fetch always runs.
// Fetch errors are never cached.
func (c *Client) cached(ctx context.Context, op, key string, refresh bool, v any, fetch func() error) error {
	hooks := observability.Cache()

	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			if err := json.Unmarshal(data, v); err == nil {
				hooks.OnCacheHit(ctx, op)
				return nil
			}
		}
		hooks.OnCacheMiss(ctx, op)
	}

	if err := fetch(); err != nil {
		return err
	}

	if data, err := json.Marshal(v); err == nil {
		if err := c.cache.Set(ctx, key, data, c.cacheTTL); err == nil {
			hooks.OnCacheSet(ctx, op, len(data))
		}
	}
	return nil
}
