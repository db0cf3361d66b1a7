package restc

import (
	"net/http"
	"time"

	"github.com/groupe-sii/lumext/internal/logging"
)

// ClientOptFn configures a Client.
type ClientOptFn func(*clientOpt) error

type clientOpt struct {
	doer      doer
	headers   http.Header
	logger    logging.Logger
	timeout   time.Duration
	requestID func() string
}

// WithHTTPClient sets the raw http client used to send requests.
func WithHTTPClient(c *http.Client) ClientOptFn {
	return func(opt *clientOpt) error {
		opt.doer = c
		return nil
	}
}

func withDoer(d doer) ClientOptFn {
	return func(opt *clientOpt) error {
		opt.doer = d
		return nil
	}
}

// WithHeader sets a default header applied to every request.
func WithHeader(header, val string) ClientOptFn {
	return func(opt *clientOpt) error {
		if opt.headers == nil {
			opt.headers = make(http.Header)
		}
		opt.headers.Add(header, val)
		return nil
	}
}

// WithLogger sets the logger requests are traced to.
func WithLogger(l logging.Logger) ClientOptFn {
	return func(opt *clientOpt) error {
		opt.logger = l
		return nil
	}
}

// WithTimeout bounds every request. Zero means no bound.
func WithTimeout(d time.Duration) ClientOptFn {
	return func(opt *clientOpt) error {
		opt.timeout = d
		return nil
	}
}

// WithRequestID overrides the generator of X-Request-Id values.
func WithRequestID(fn func() string) ClientOptFn {
	return func(opt *clientOpt) error {
		opt.requestID = fn
		return nil
	}
}
