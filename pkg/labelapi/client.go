package labelapi

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

	"github.com/klauspost/compress/gzip"

	"github.com/macropower/rttmlabel/pkg/tracing"
	"github.com/macropower/rttmlabel/pkg/version"
)

const (
	DefaultServer  = "http://127.0.0.1:5000"
	DefaultTimeout = 30 * time.Second

	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// HTTPDoer is the interface for making HTTP requests.
// See [*net/http.Client] for an implementation.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the annotation backend. Create instances with [NewClient].
type Client struct {
	http      HTTPDoer
	tracer    tracing.Tracer
	base      *url.URL
	userAgent string
	timeout   time.Duration
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets the [HTTPDoer] used for requests.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.http = doer
	}
}

// WithTimeout bounds every request. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTracer reports every request as a span.
func WithTracer(t tracing.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a [Client] for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultServer
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse server url: %q is not absolute", baseURL)
	}

	u.Path = strings.TrimRight(u.Path, "/")

	c := &Client{
		base:      u,
		http:      http.DefaultClient,
		tracer:    tracing.NopTracer{},
		timeout:   DefaultTimeout,
		userAgent: "rttmlabel/" + version.Version,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the server URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path += path

	if query != nil {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, c.endpoint(path, query), nil, "", out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, c.endpoint(path, nil),
		strings.NewReader(form.Encode()), contentTypeForm, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: encode request: %w", ErrRequest, err)
	}

	return c.do(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(b), contentTypeJSON, out)
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader, contentType string, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%w: create http request: %w", ErrRequest, err)
	}

	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	span := c.tracer.StartSpan(method + " " + req.URL.Path)
	defer span.Finish()

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetBaggageItem("err", err)

		return fmt.Errorf("%w: %s %s: %w", ErrRequest, method, req.URL.Path, err)
	}

	span.SetBaggageItem("status", resp.StatusCode)

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			slog.Error("close http response body",
				slog.String("url", target),
				slog.Any("err", err),
			)
		}
	}()

	data, err := readBody(resp)
	if err != nil {
		return fmt.Errorf("%w: read %s response: %w", ErrRequest, req.URL.Path, err)
	}

	return decodeResponse(resp.StatusCode, resp.Status, req.URL.Path, data, out)
}

func readBody(resp *http.Response) ([]byte, error) {
	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return io.ReadAll(resp.Body)
	}

	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

// decodeResponse turns a backend reply into out or an error. A JSON "error"
// member always wins over the status code.
func decodeResponse(code int, status, path string, data []byte, out any) error {
	var envelope struct {
		Error string `json:"error"`
	}

	jsonErr := json.Unmarshal(data, &envelope)
	if jsonErr == nil && envelope.Error != "" {
		return &APIError{Status: code, Message: envelope.Error}
	}

	if code < 200 || code > 299 {
		return fmt.Errorf("%w: %s %s: %s", ErrRequest, path, status, bytes.TrimSpace(data))
	}

	if jsonErr != nil {
		return fmt.Errorf("%w: %s decode: %w", ErrRequest, path, jsonErr)
	}

	if out == nil {
		return nil
	}

	err := json.Unmarshal(data, out)
	if err != nil {
		return fmt.Errorf("%w: %s decode: %w", ErrRequest, path, err)
	}

	return nil
}
