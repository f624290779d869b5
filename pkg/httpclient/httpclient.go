package httpclient

import (
	"crypto/tls"
	"time"

	"github.com/go-resty/resty/v2"
)

// Factory mints HTTP clients. The backend client requests a fresh client for
// every call, so each round trip owns its transport and releases it on return.
type Factory interface {
	NewClient() *resty.Client
}

// Options configures clients produced by a factory.
type Options struct {
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// restyFactory builds resty clients from fixed options.
type restyFactory struct {
	opts Options
}

// NewFactory creates a Factory producing resty clients with the given options.
func NewFactory(opts Options) Factory {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &restyFactory{opts: opts}
}

// NewClient returns a fresh resty.Client configured per the factory options.
func (f *restyFactory) NewClient() *resty.Client {
	c := resty.New()
	c.SetTimeout(f.opts.Timeout)
	if f.opts.InsecureSkipVerify {
		c.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	return c
}
