package fetch

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"
)

type ClientOptions struct {
	Timeout     time.Duration
	UserAgent   string
	Transport   http.RoundTripper
	DebugLogger interface {
		Debugf(string, ...any)
	}
}

// NewClient builds the shared HTTP client. Every request goes through a
// wrapping RoundTripper that injects the User-Agent header.
func NewClient(opts ClientOptions) *http.Client {
	jar, _ := cookiejar.New(nil)

	var baseTransport http.RoundTripper
	if opts.Transport != nil {
		baseTransport = opts.Transport
	} else {
		baseTransport = &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			MaxIdleConns:      10,
			ForceAttemptHTTP2: true,
		}
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		Transport: roundTripper{
			base: baseTransport,
			ua:   opts.UserAgent,
			log:  opts.DebugLogger,
		},
		Jar: jar,
	}

	if opts.DebugLogger != nil {
		opts.DebugLogger.Debugf("HTTP client initialized (timeout=%s, ua=%q)\n", opts.Timeout, opts.UserAgent)
	}

	return client
}

type roundTripper struct {
	base http.RoundTripper
	ua   string
	log  interface{ Debugf(string, ...any) }
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.ua != "" {
		req.Header.Set("User-Agent", rt.ua)
	}

	if rt.log != nil {
		rt.log.Debugf("HTTP %s %s\n", req.Method, req.URL.String())
	}

	return rt.base.RoundTrip(req)
}

// DoWithRetry executes the request with a simple linear-backoff retry
// policy. Server-side 5xx responses and transport errors are retried;
// anything below 500 is handed back to the caller to judge.
func DoWithRetry(c *http.Client, req *http.Request, attempts int, backoff time.Duration) (*http.Response, error) {
	var resp *http.Response
	var err error

	for i := 1; i <= attempts; i++ {
		resp, err = c.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		if i < attempts {
			time.Sleep(backoff * time.Duration(i))
		}
	}

	if err == nil && resp != nil {
		return resp, fmt.Errorf("HTTP %d after %d attempts", resp.StatusCode, attempts)
	}

	return nil, err
}

// PickUserAgent returns the override if set, otherwise the stock browser
// User-Agent the tool has always presented to wordpress.com.
func PickUserAgent(override string) string {
	if override != "" {
		return override
	}

	return "Mozilla/5.0 (Macintosh; U; Intel Mac OS X 10_6_4; en-US) AppleWebKit/534.13 " +
		"(KHTML, like Gecko) Chrome/9.0.597.19 Safari/534.13"
}
