package share

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ReadingFetcher defines the read operations the poller depends on.
// This interface is implemented by *Client and can be used for testing.
type ReadingFetcher interface {
	Readings(ctx context.Context, minutes, maxCount int) ([]GlucoseReading, error)
	Latest(ctx context.Context) (GlucoseReading, bool, error)
	Current(ctx context.Context) (GlucoseReading, bool, error)
	VerifySerialNumber(ctx context.Context, serialNumber string) (bool, error)
}

// Ensure Client implements ReadingFetcher at compile time.
var _ ReadingFetcher = (*Client)(nil)

// Region selects the provider deployment.
type Region string

const (
	RegionUS  Region = "us"
	RegionOUS Region = "ous"
)

const (
	BaseURLUS  = "https://share2.dexcom.com/ShareWebServices/Services"
	BaseURLOUS = "https://shareous1.dexcom.com/ShareWebServices/Services"

	// ApplicationID is sent on every authentication call.
	ApplicationID = "d89443d2-327c-4a6f-89e5-496bbb0317db"
)

const (
	endpointAuthenticate = "General/AuthenticatePublisherAccount"
	endpointLogin        = "General/LoginPublisherAccountById"
	endpointReadings     = "Publisher/ReadPublisherLatestGlucoseValues"
	endpointVerifySerial = "Publisher/CheckMonitoredReceiverAssignmentStatus"
)

const (
	defaultUserAgent = "dexdash/0.1"
	requestTimeout   = 10 * time.Second
	maxResponseBytes = 4 << 20
)

// Observer receives request and session events. *metrics.Collector satisfies it.
type Observer interface {
	ObserveRequest(endpoint string, status int, elapsed time.Duration)
	ObserveAcquire(err error)
	ObserveSessionRejected(reason Reason)
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, int, time.Duration) {}
func (nopObserver) ObserveAcquire(error)                      {}
func (nopObserver) ObserveSessionRejected(Reason)             {}

// Options configure a Client.
type Options struct {
	Username string
	Password string
	Region   Region
	BaseURL  string // overrides Region when set

	HTTPClient *http.Client  // nil builds one with Timeout
	Timeout    time.Duration // per-request timeout; zero uses 10s
	Logger     *slog.Logger
	Observer   Observer

	// AcquireLimiter throttles session acquisition. Nil disables throttling.
	// A limiter that runs dry fails acquisition with ReasonThrottled.
	AcquireLimiter *rate.Limiter
}

// Client talks to the Share web services on behalf of one account.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *slog.Logger
	obs       Observer
	sessions  *SessionManager
}

// NewClient builds a Client. Credentials are validated on first acquisition,
// not here.
func NewClient(opts Options) (*Client, error) {
	base, err := resolveBaseURL(opts.Region, opts.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = requestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "share")

	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}

	c := &Client{
		baseURL:   base,
		http:      httpClient,
		userAgent: defaultUserAgent,
		log:       logger,
		obs:       obs,
	}
	c.sessions = newSessionManager(c, Credentials{Username: opts.Username, Password: opts.Password}, opts.AcquireLimiter, logger, obs)
	return c, nil
}

// Sessions exposes the client's session manager.
func (c *Client) Sessions() *SessionManager {
	return c.sessions
}

// BaseURL returns the resolved service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// post sends payload as JSON to endpoint and decodes the response into dest.
// Non-2xx responses are returned as classified *Error values; network and
// decode failures are ProviderError(transport).
func (c *Client) post(ctx context.Context, endpoint string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", endpoint, err)
	}

	reqURL := c.baseURL.JoinPath(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.obs.ObserveRequest(endpoint, 0, time.Since(start))
		return transportError(fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	c.obs.ObserveRequest(endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return transportError(fmt.Errorf("read response: %w", err))
	}

	if err := Classify(resp.StatusCode, data); err != nil {
		c.log.Warn("share request failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()),
		)
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return transportError(fmt.Errorf("decode %s response: %w", endpoint, err))
	}
	return nil
}

func resolveBaseURL(region Region, override string) (*url.URL, error) {
	raw := strings.TrimSpace(override)
	if raw == "" {
		switch Region(strings.ToLower(string(region))) {
		case RegionUS, "":
			raw = BaseURLUS
		case RegionOUS:
			raw = BaseURLOUS
		default:
			return nil, fmt.Errorf("unknown region %q", region)
		}
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", override, err)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
