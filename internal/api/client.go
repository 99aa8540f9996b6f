// Package api implements the session-bound request/response protocol spoken
// with the backend: one HTTP call per operation, the session id attached as
// a cookie (and, on POST, injected into the body for older server
// revisions), an optional whole-body encryption envelope, and a two-variant
// Outcome in place of exceptions.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospitalapp/client-go/internal/cryptox"
	"github.com/hospitalapp/client-go/internal/logging"
	"github.com/hospitalapp/client-go/internal/metrics"
)

const (
	defaultDialTimeout    = 30 * time.Second
	defaultRequestTimeout = 30 * time.Second
)

// SessionSource supplies the current session id. An empty string means no
// active session; the cookie is still sent to match the original client.
type SessionSource interface {
	SessionID() string
}

// Client issues one request and classifies the result. Every failure mode
// is folded into the returned Outcome; implementations never panic and
// never return an error through a side channel.
type Client interface {
	Get(ctx context.Context, path string) Outcome
	Post(ctx context.Context, path string, body Document, opts ...RequestOption) Outcome
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	encrypt bool
}

// WithEncryption replaces the serialized body with the codec envelope and
// marks the request with the X-Encrypted header. The transform always covers
// the whole body; there is no partial-field encryption.
func WithEncryption() RequestOption {
	return func(o *requestOptions) { o.encrypt = true }
}

// HTTPClient is the production Client. Connection policy mirrors the server
// contract: no keep-alive, HTTP/1.1 only, no proxy, 30s dial and request
// timeouts, and a single transparent retry of a failed connection attempt.
type HTTPClient struct {
	baseURL        string
	session        SessionSource
	codec          cryptox.Codec
	log            logging.Logger
	metrics        metrics.Collector
	dialTimeout    time.Duration
	requestTimeout time.Duration
	encryptPosts   bool
	http           *http.Client
}

// Option configures an HTTPClient at construction time.
type Option func(*HTTPClient)

// WithTimeouts overrides the dial and overall request timeouts.
func WithTimeouts(dial, request time.Duration) Option {
	return func(c *HTTPClient) {
		c.dialTimeout = dial
		c.requestTimeout = request
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m metrics.Collector) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

// WithEncryptedPosts turns on the encryption envelope for every POST, so
// callers do not pass WithEncryption per request. Requires a non-nil codec.
func WithEncryptedPosts() Option {
	return func(c *HTTPClient) { c.encryptPosts = true }
}

// NewHTTPClient builds the executor for the given base URL. The session
// source must not be nil; codec may be nil only if no request ever uses
// WithEncryption.
func NewHTTPClient(baseURL string, session SessionSource, codec cryptox.Codec, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		session:        session,
		codec:          codec,
		log:            logging.Nop{},
		metrics:        metrics.Nop{},
		dialTimeout:    defaultDialTimeout,
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	dialer := &net.Dialer{Timeout: c.dialTimeout}
	c.http = &http.Client{
		Timeout: c.requestTimeout,
		Transport: &http.Transport{
			Proxy:             nil,
			DialContext:       dialer.DialContext,
			DisableKeepAlives: true,
			ForceAttemptHTTP2: false,
			// empty map keeps the transport on HTTP/1.1 even over TLS
			TLSNextProto: make(map[string]func(string, *tls.Conn) http.RoundTripper),
		},
	}
	return c
}

// Get issues a GET request. The path may carry an encoded query string.
func (c *HTTPClient) Get(ctx context.Context, path string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return Error{Message: "request build failure: " + err.Error()}
	}
	c.setCommonHeaders(req)
	return c.execute(ctx, req, metricPath(path))
}

// Post serializes body as JSON (plus the injected session key) and issues a
// POST request, optionally wrapped in the encryption envelope.
func (c *HTTPClient) Post(ctx context.Context, path string, body Document, opts ...RequestOption) Outcome {
	o := requestOptions{encrypt: c.encryptPosts}
	for _, opt := range opts {
		opt(&o)
	}

	payload := make(Document, len(body)+1)
	for k, v := range body {
		payload[k] = v
	}
	// older server revisions read the session from the body, newer ones
	// from the cookie; send both
	payload[sessionCookieName] = c.sessionID()

	raw, err := json.Marshal(payload)
	if err != nil {
		return Error{Message: "request encoding failure: " + err.Error()}
	}

	contentType := "application/json"
	if o.encrypt {
		envelope, err := c.codec.Encrypt(raw)
		if err != nil {
			return Error{Message: "request encryption failure: " + err.Error()}
		}
		raw = []byte(envelope)
		contentType = "text/plain"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return Error{Message: "request build failure: " + err.Error()}
	}
	req.Header.Set("Content-Type", contentType)
	if o.encrypt {
		req.Header.Set(headerEncrypted, "true")
	}
	c.setCommonHeaders(req)
	return c.execute(ctx, req, metricPath(path))
}

func (c *HTTPClient) sessionID() string {
	if c.session == nil {
		return ""
	}
	return c.session.SessionID()
}

func (c *HTTPClient) setCommonHeaders(req *http.Request) {
	req.Header.Set("Cookie", sessionCookieName+"="+c.sessionID())
	req.Header.Set("Connection", "close")
}

// execute sends the request and folds every failure mode into an Outcome.
func (c *HTTPClient) execute(ctx context.Context, req *http.Request, path string) Outcome {
	log := c.log.With("request_id", uuid.NewString(), "method", req.Method, "path", path)
	start := time.Now()

	res, err := c.send(req)
	elapsed := time.Since(start)
	c.metrics.RecordRequestLatency(elapsed)

	if err != nil {
		log.Warn(ctx, "request failed", "error", err.Error(), "elapsed", elapsed)
		c.metrics.RecordFailure(path, "transport")
		return Error{Message: "network failure: " + err.Error()}
	}
	defer res.Body.Close()

	c.metrics.RecordHTTPStatus(res.StatusCode)
	doc := c.decodeBody(ctx, res, log)

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		log.Debug(ctx, "request finished", "status", res.StatusCode, "elapsed", elapsed)
		c.metrics.RecordSuccess(path)
		return Success{Data: doc}
	}

	msg := doc.OptString("message", fmt.Sprintf("error %d", res.StatusCode))
	log.Warn(ctx, "server error", "status", res.StatusCode, "elapsed", elapsed)
	c.metrics.RecordFailure(path, "http_status")
	return Error{Code: res.StatusCode, Message: msg}
}

// send performs the HTTP call with one transparent retry when the
// connection attempt itself failed. Application-level failures are never
// retried here.
func (c *HTTPClient) send(req *http.Request) (*http.Response, error) {
	res, err := c.http.Do(req)
	if err == nil || !isDialFailure(err) {
		return res, err
	}

	retryReq := req.Clone(req.Context())
	if req.GetBody != nil {
		body, berr := req.GetBody()
		if berr != nil {
			return nil, err
		}
		retryReq.Body = body
	}
	return c.http.Do(retryReq)
}

func isDialFailure(err error) bool {
	var op *net.OpError
	return errors.As(err, &op) && op.Op == "dial"
}

// decodeBody reads, optionally decrypts, and parses the response body.
// Failures degrade to a document carrying only a diagnostic message; the
// HTTP status alone decides the Outcome variant.
func (c *HTTPClient) decodeBody(ctx context.Context, res *http.Response, log logging.Logger) Document {
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		log.Warn(ctx, "response read failed", "error", err.Error())
		return Document{"message": "failed to read response body"}
	}

	if strings.EqualFold(res.Header.Get(headerEncrypted), "true") {
		plain, derr := c.codec.Decrypt(strings.TrimSpace(string(raw)))
		if derr != nil {
			log.Warn(ctx, "response decryption failed", "error", derr.Error())
			return Document{"message": "response decode failure"}
		}
		raw = plain
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Warn(ctx, "response parse failed", "error", err.Error())
		return Document{"message": "response parse failure: " + err.Error()}
	}
	if doc == nil {
		return Document{}
	}
	return doc
}

// metricPath strips the query string so metric labels stay low-cardinality.
func metricPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
