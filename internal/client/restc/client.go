// Package restc is a small JSON REST client for the portal API. Every request
// carries the session token in x-vcloud-authorization and asks for the
// versioned portal media type.
package restc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/groupe-sii/lumext/internal/client/session"
	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/logging"
)

type doer interface {
	Do(*http.Request) (*http.Response, error)
}

// maxBody caps how much of a response body is read.
const maxBody = 4 << 20

// Client sends authenticated JSON requests relative to a session's APIRoot.
type Client struct {
	sess      session.SessionContext
	doer      doer
	headers   http.Header
	log       logging.Logger
	timeout   time.Duration
	requestID func() string
}

// New builds a Client bound to sess.
func New(sess session.SessionContext, opts ...ClientOptFn) (*Client, error) {
	opt := clientOpt{
		headers:   make(http.Header),
		logger:    logging.Nop(),
		requestID: uuid.NewString,
	}
	for _, fn := range opts {
		if err := fn(&opt); err != nil {
			return nil, err
		}
	}
	if opt.doer == nil {
		opt.doer = http.DefaultClient
	}

	return &Client{
		sess:      sess,
		doer:      opt.doer,
		headers:   opt.headers,
		log:       opt.logger,
		timeout:   opt.timeout,
		requestID: opt.requestID,
	}, nil
}

// Session returns the session the client is bound to.
func (c *Client) Session() session.SessionContext {
	return c.sess
}

// Get decodes the JSON response of GET path into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post sends in as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, in, out)
}

// Put sends in as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, in, out)
}

// Delete issues DELETE path and decodes the response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do performs one request. A nil in sends no body; a nil out discards the
// response body. Non-2xx statuses are returned as *RequestError.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	url := c.sess.APIRoot + path

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &RequestError{Method: method, URL: url, Err: fmt.Errorf("encode body: %w", err)}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &RequestError{Method: method, URL: url, Err: err}
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set(common.AuthHeaderName, c.sess.Token)
	req.Header.Set("Accept", common.MediaType)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := c.requestID()
	req.Header.Set(common.RequestIDHeaderName, reqID)

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.log.Debug(ctx, "backend call failed", "method", method, "url", url, "request_id", reqID, "error", err)
		return &RequestError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	c.log.Debug(ctx, "backend call", "method", method, "url", url, "request_id", reqID,
		"status", resp.StatusCode, "elapsed", time.Since(start))
	if err != nil {
		return &RequestError{Method: method, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Method: method, URL: url, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestError{Method: method, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}
