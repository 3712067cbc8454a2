package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/wichananm65/personas-web/internal/session"
)

// Client is the single chokepoint for backend calls.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for warnings about failed calls.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request describes one backend call.
type Request struct {
	Method string
	Path   string
	// Body is either a *Form (sent as multipart) or any value sent as JSON.
	Body any
	// CustomError replaces the generic message for unmapped statuses.
	CustomError string
}

type requestIDKey struct{}

// WithRequestID makes calls made with ctx carry the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Do performs r and decodes a JSON response into out. A 204 or empty body
// leaves out untouched. The bearer token comes from the session in ctx.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	body, contentType, err := encodeBody(r.Body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+r.Path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if s := session.FromContext(ctx); s.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("connection error", zap.String("method", method), zap.String("path", r.Path), zap.Error(err))
		return unreachable(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := statusError(res.StatusCode, errorMessage(res.Body, r.CustomError))
		if res.StatusCode == http.StatusUnauthorized {
			c.logger.Warn("token invalid or expired", zap.String("path", r.Path))
		} else {
			c.logger.Info("backend call failed",
				zap.String("method", method), zap.String("path", r.Path), zap.Int("status", res.StatusCode))
		}
		return apiErr
	}

	if res.StatusCode == http.StatusNoContent || res.ContentLength == 0 {
		return nil
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return unreachable(err)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, r.Path, err)
	}
	return nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Form:
		if b == nil {
			return nil, "", nil
		}
		buf, ct, err := b.encode()
		if err != nil {
			return nil, "", fmt.Errorf("encode multipart body: %w", err)
		}
		return buf, ct, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode json body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// errorMessage pulls a message out of an error response: the message or
// error field of a JSON object, else the raw text of a non-JSON body, else
// the caller default.
func errorMessage(r io.Reader, custom string) string {
	msg := custom
	if msg == "" {
		msg = msgDefault
	}

	data, err := io.ReadAll(r)
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return msg
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return msg
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return msg
}
