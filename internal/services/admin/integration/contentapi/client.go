// Package contentapi is the typed client for the remote Decor IMIC content
// REST API.
//
// Every response is wrapped in an Envelope. Writes are multipart; updates use
// a POST carrying the _method=PATCH override. Concurrent identical GETs share
// one in-flight request.
package contentapi

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/decorimic/admin/internal/platform/errors"
	"github.com/decorimic/admin/internal/platform/timeouts"
)

// DefaultBaseURL is the production content API root.
const DefaultBaseURL = "https://www.test.nia.com.eg/imic/public/api"

const tracerName = "github.com/decorimic/admin/internal/services/admin/integration/contentapi"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 16 << 20

// Envelope is the wrapper every API response uses.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Status  bool   `json:"status"`
}

// Ack is the envelope returned by writes. The payload is kept raw because
// callers only need to know the write succeeded.
type Ack = Envelope[json.RawMessage]

// HTTPError reports a non-2xx response.
type HTTPError struct {
	StatusCode int
	Method     string
	Path       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Request describes one call relative to the client's base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
	// ContentType overrides the default JSON content type, e.g. for
	// multipart bodies that carry their own boundary.
	ContentType string
}

// Options configures a Client.
type Options struct {
	HTTPClient *http.Client
	// Timeout caps each call. Zero means timeouts.APIRequest.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client performs calls against the content API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	tracer     trace.Tracer
	inflight   singleflight.Group
}

// NewClient builds a client rooted at baseURL.
func NewClient(baseURL string, opts Options) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse content api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("content api base url must be http(s): %q", baseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = timeouts.APIRequest
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    parsed,
		httpClient: httpClient,
		timeout:    timeout,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do performs req and decodes the envelope into T. The envelope is returned
// as received.
func Do[T any](ctx context.Context, c *Client, req Request) (Envelope[T], error) {
	var env Envelope[T]
	body, err := c.send(ctx, req)
	if err != nil {
		return env, err
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return env, apperrors.Wrap(apperrors.CodeUpstreamStatus,
			fmt.Sprintf("decode %s %s response: %v", req.method(), req.Path, err), err)
	}
	return env, nil
}

// send returns the raw body of a successful call. GETs with the same URL
// share one in-flight request; a write detaches the reads of its path so
// later GETs see the result of the write.
func (c *Client) send(ctx context.Context, req Request) ([]byte, error) {
	target := c.resolve(req)
	if req.method() != http.MethodGet {
		body, err := c.roundTrip(ctx, req, target)
		c.forgetReads(req.Path)
		return body, err
	}

	key := http.MethodGet + " " + target
	ch := c.inflight.DoChan(key, func() (any, error) {
		// The flight outlives any single caller's cancellation.
		return c.roundTrip(context.WithoutCancel(ctx), req, target)
	})
	select {
	case <-ctx.Done():
		return nil, apperrors.Wrap(apperrors.CodeUpstreamUnavailable,
			fmt.Sprintf("GET %s: %v", req.Path, ctx.Err()), ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) roundTrip(ctx context.Context, req Request, target string) ([]byte, error) {
	method := req.method()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "contentapi "+method+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", target),
		),
	)
	defer span.End()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	if httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.logger.WarnContext(ctx, "content api call failed",
			"method", method, "path", req.Path, "duration", time.Since(start), "error", err)
		return nil, apperrors.Wrap(apperrors.CodeUpstreamUnavailable,
			fmt.Sprintf("%s %s: %v", method, req.Path, err), err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Method: method, Path: req.Path}
		span.SetStatus(codes.Error, httpErr.Error())
		c.logger.WarnContext(ctx, "content api returned error status",
			"method", method, "path", req.Path, "status", resp.StatusCode, "duration", time.Since(start))
		code := apperrors.CodeUpstreamStatus
		if resp.StatusCode == http.StatusNotFound {
			code = apperrors.CodeNotFound
		}
		return nil, apperrors.Wrap(code, httpErr.Error(), httpErr)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return nil, apperrors.Wrap(apperrors.CodeUpstreamUnavailable,
			fmt.Sprintf("read %s %s response: %v", method, req.Path, err), err)
	}
	c.logger.DebugContext(ctx, "content api call",
		"method", method, "path", req.Path, "status", resp.StatusCode, "duration", time.Since(start))
	return payload, nil
}

// forgetReads drops in-flight GETs of path and of every parent collection,
// so "/clients/7" detaches both "/clients/7" and "/clients".
func (c *Client) forgetReads(path string) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments); i > 0; i-- {
		prefix := "/" + strings.Join(segments[:i], "/")
		c.inflight.Forget(http.MethodGet + " " + c.resolve(Request{Path: prefix}))
	}
}

func (c *Client) resolve(req Request) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}
	return u.String()
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(r.Method)
}
