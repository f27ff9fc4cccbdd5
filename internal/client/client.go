// Package client submits claim text to the claims-processing endpoint and
// decodes the analysis it returns.
package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"claimdesk/internal/claim"
	"claimdesk/internal/jsonutil"
	"claimdesk/internal/logging"
	"claimdesk/internal/ui/textutil"
)

// RequestIDHeader carries the per-submission id.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 4 << 20

// maxDetailWidth caps a non-JSON error body shown as the error detail.
const maxDetailWidth = 200

// ErrEmptyContent is returned when the claim text is empty after trimming.
var ErrEmptyContent = errors.New("claim content is empty")

// ErrResponseTooLarge is returned when a response body exceeds the read limit.
var ErrResponseTooLarge = errors.New("response too large")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("claims endpoint returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("claims endpoint returned %d: %s", e.StatusCode, e.Detail)
}

// Processor is the submission contract the UI and CLI depend on.
type Processor interface {
	Process(ctx context.Context, content string) (*claim.Analysis, error)
}

// Options configures a Client. Zero values fall back to sensible defaults.
type Options struct {
	URL        string        // full URL of the process endpoint
	Timeout    time.Duration // per-request timeout
	UserAgent  string
	CacheTTL   time.Duration // 0 disables the result cache
	HTTPClient *http.Client
	Logger     *logrus.Logger
}

// Client posts claim text to the process endpoint.
type Client struct {
	url        string
	userAgent  string
	httpClient *http.Client
	cache      *gocache.Cache
	log        *logrus.Logger
	tracer     oteltrace.Tracer
	newID      func() string
}

// Ensure Client implements Processor.
var _ Processor = (*Client)(nil)

// New creates a Client.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	c := &Client{
		url:        opts.URL,
		userAgent:  opts.UserAgent,
		httpClient: hc,
		log:        log,
		tracer:     otel.Tracer("claimdesk/client"),
		newID:      func() string { return uuid.NewString() },
	}
	if opts.CacheTTL > 0 {
		c.cache = gocache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return c
}

// Process submits content and returns the decoded analysis. Content is
// trimmed first; empty content never reaches the network.
func (c *Client) Process(ctx context.Context, content string) (*claim.Analysis, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	key := cacheKey(content)
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			c.log.Debug("analysis served from cache")
			return v.(*claim.Analysis), nil
		}
	}

	requestID := c.newID()
	ctx, span := c.tracer.Start(ctx, "claimdesk.process",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.String("claimdesk.request.id", requestID),
			attribute.Int("claimdesk.content.bytes", len(content)),
		),
	)
	defer span.End()

	entry := c.log.WithField("request_id", requestID)
	entry.WithField("bytes", len(content)).Debug("submitting claim")
	start := time.Now()

	a, status, err := c.do(ctx, requestID, content)
	span.SetAttributes(attribute.Int("http.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		entry.WithError(err).WithField("status", status).Error("process claim failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.String("claimdesk.route", a.RecommendedRoute.String()),
		attribute.Int("claimdesk.missing_fields", len(a.MissingFields)),
		attribute.Int("claimdesk.inconsistent_fields", len(a.InconsistentFields)),
	)
	entry.WithFields(logrus.Fields{
		"route":        a.RecommendedRoute,
		"missing":      len(a.MissingFields),
		"inconsistent": len(a.InconsistentFields),
		"elapsed":      time.Since(start).Round(time.Millisecond),
	}).Info("claim processed")

	if c.cache != nil {
		c.cache.SetDefault(key, a)
	}
	return a, nil
}

// do performs the HTTP exchange. The returned status is 0 when no response
// was received.
func (c *Client) do(ctx context.Context, requestID, content string) (*claim.Analysis, int, error) {
	body, err := json.Marshal(struct {
		Content string `json:"content"`
	}{Content: content})
	if err != nil {
		return nil, 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("post claim: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if len(data) > maxBodyBytes {
		return nil, resp.StatusCode, fmt.Errorf("%w (limit %d bytes)", ErrResponseTooLarge, maxBodyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &StatusError{StatusCode: resp.StatusCode, Detail: errorDetail(data)}
	}

	a, err := claim.Decode(data)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return a, resp.StatusCode, nil
}

// errorDetail pulls the "detail" member out of an error body. Validation
// errors carry a list there; those are returned as compact JSON.
func errorDetail(data []byte) string {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return textutil.Truncate(textutil.OneLine(string(data)), maxDetailWidth)
	}
	if s := jsonutil.GetString(m, "detail"); s != "" {
		return s
	}
	return jsonutil.ToString(m["detail"])
}

func cacheKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "claimdesk:v1:" + hex.EncodeToString(sum[:])
}
