package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"

	"league-history-service/internal/logging"
	"league-history-service/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config controls how the client reaches the data host.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Recorder   *metrics.Recorder
	Retries    int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// Options tune a single request.
type Options struct {
	// Optional resources resolve to not-found instead of failing on 404,
	// non-JSON bodies, and exhausted retries.
	Optional bool
	// Resource labels metrics and logs; defaults to "document".
	Resource string
	// Retries / RetryDelay override the client defaults when > 0.
	Retries    int
	RetryDelay time.Duration
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches JSON documents with retry/backoff and optional-miss
// semantics. It carries no business logic.
type Client struct {
	baseURL    string
	httpClient httpDoer
	logger     *slog.Logger
	recorder   *metrics.Recorder
	retries    int
	retryDelay time.Duration

	mu      sync.RWMutex
	version string
}

// NewClient constructs a fetch client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     cfg.Logger,
		recorder:   cfg.Recorder,
		retries:    resolveRetries(cfg.Retries),
		retryDelay: resolveRetryDelay(cfg.RetryDelay),
	}
}

// SetVersionToken installs the manifest's version token; subsequent requests
// carry it as a cache-busting query parameter.
func (c *Client) SetVersionToken(token string) {
	c.mu.Lock()
	c.version = token
	c.mu.Unlock()
}

// GetJSON fetches path relative to the base URL and decodes the body into v.
// It returns false with a nil error when an optional resource is missing.
func (c *Client) GetJSON(ctx context.Context, path string, opts Options, v any) (bool, error) {
	body, err := c.Get(ctx, path, opts)
	if err != nil {
		return false, err
	}
	if body == nil {
		return false, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		if opts.Optional {
			logging.Warn(c.logger, "optional resource is not valid JSON",
				logging.FieldURL, c.resolveURL(path),
				logging.FieldResource, resolveResource(opts),
			)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetDocument fetches a loosely-shaped JSON object. A nil map with a nil
// error means an optional resource was absent.
func (c *Client) GetDocument(ctx context.Context, path string, opts Options) (map[string]any, error) {
	var doc map[string]any
	ok, err := c.GetJSON(ctx, path, opts, &doc)
	if err != nil || !ok {
		return nil, err
	}
	return doc, nil
}

// Get fetches the raw body. 404s on optional resources resolve to
// (nil, nil); transient failures retry with exponential backoff before the
// last error is surfaced (or absorbed, when optional).
func (c *Client) Get(ctx context.Context, path string, opts Options) ([]byte, error) {
	url := c.resolveURL(path)
	resource := resolveResource(opts)

	policy := c.backoffPolicy(ctx, opts)

	var body []byte
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		start := time.Now()
		b, err := c.fetchOnce(ctx, url, opts)
		c.recordFetch(resource, time.Since(start), err)
		if err != nil {
			logging.Debug(c.logger, "fetch attempt failed",
				logging.FieldURL, url,
				logging.FieldAttempt, attempt,
				logging.FieldResource, resource,
				"error", err,
			)
			return err
		}
		body = b
		return nil
	}, policy)
	if err != nil {
		if fe, ok := AsFetchError(err); ok && fe.NotFound() && opts.Optional {
			logging.Debug(c.logger, "optional resource absent",
				logging.FieldURL, url,
				logging.FieldResource, resource,
			)
			return nil, nil
		}
		if opts.Optional {
			logging.Warn(c.logger, "optional fetch exhausted retries",
				logging.FieldURL, url,
				logging.FieldResource, resource,
				"error", err,
			)
			return nil, nil
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) fetchOnce(ctx context.Context, url string, opts Options) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Missing documents never become present by retrying.
		return nil, backoff.Permanent(&FetchError{URL: url, Status: resp.StatusCode, Message: "not found"})
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &FetchError{URL: url, Status: resp.StatusCode, Message: "unexpected status"}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(fe)
		}
		return nil, fe
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "json") {
		// Hosts that serve an HTML index for missing files look exactly like
		// a 404 to us.
		return nil, backoff.Permanent(&FetchError{URL: url, Status: http.StatusNotFound, Message: "non-JSON body"})
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) backoffPolicy(ctx context.Context, opts Options) backoff.BackOff {
	retries := c.retries
	if opts.Retries > 0 {
		retries = opts.Retries
	}
	delay := c.retryDelay
	if opts.RetryDelay > 0 {
		delay = opts.RetryDelay
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = delay
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

func (c *Client) resolveURL(path string) string {
	url := path
	if c.baseURL != "" && !strings.HasPrefix(path, "http") {
		url = c.baseURL + "/" + strings.TrimPrefix(path, "/")
	}

	c.mu.RLock()
	version := c.version
	c.mu.RUnlock()
	if version == "" {
		return url
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "v=" + version
}

func (c *Client) recordFetch(resource string, duration time.Duration, err error) {
	if c.recorder != nil {
		c.recorder.RecordFetch(resource, duration, err)
	}
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

func resolveRetries(retries int) int {
	if retries <= 0 {
		return defaultRetries
	}
	return retries
}

func resolveRetryDelay(delay time.Duration) time.Duration {
	if delay <= 0 {
		return defaultRetryDelay
	}
	return delay
}

func resolveResource(opts Options) string {
	if opts.Resource != "" {
		return opts.Resource
	}
	return "document"
}

const (
	defaultRetries     = 3
	defaultRetryDelay  = 500 * time.Millisecond
	defaultHTTPTimeout = 15 * time.Second
)
