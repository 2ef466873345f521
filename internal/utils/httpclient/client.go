package httpclient

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"LottoSync/internal/config"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// HTMLHeaders 抓取HTML开奖页面的默认请求头
var HTMLHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}

// JSONHeaders JSON接口的默认请求头
var JSONHeaders = map[string]string{
	"Accept": "application/json",
}

type options struct {
	headers   map[string]string
	cookieJar bool
}

type Option func(*options)

// WithHeaders 追加默认请求头
func WithHeaders(h map[string]string) Option {
	return func(o *options) {
		for k, v := range h {
			o.headers[k] = v
		}
	}
}

// WithCookieJar 请求间保留Cookie（依赖会话的数据源）
func WithCookieJar() Option {
	return func(o *options) { o.cookieJar = true }
}

// NewHTTPClient 按数据源配置创建resty客户端（代理、超时、gzip、UA）
func NewHTTPClient(cfg config.SourceConfig, logger *logrus.Logger, opts ...Option) *resty.Client {
	o := options{headers: make(map[string]string)}
	for _, opt := range opts {
		opt(&o)
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			logger.WithError(err).WithField("proxy", cfg.Proxy).Warn("invalid proxy url, connecting directly")
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.WithField("proxy", cfg.Proxy).Debug("http client uses proxy")
		}
	}

	var rt http.RoundTripper = transport
	if cfg.CloudflareBypass {
		rt = cloudflarebp.AddCloudFlareByPass(rt)
	}

	client := resty.New()
	client.SetTransport(&compressedTransport{transport: rt, logger: logger})
	client.SetLogger(logger)
	if cfg.BaseURL != "" {
		client.SetBaseURL(cfg.BaseURL)
	}
	timeout := cfg.TimeoutDuration()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client.SetTimeout(timeout)
	if cfg.RetryCount > 0 {
		client.SetRetryCount(cfg.RetryCount)
		client.SetRetryWaitTime(time.Second)
	}
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	client.SetHeaders(o.headers)

	if o.cookieJar {
		jar, err := cookiejar.New(nil)
		if err != nil {
			logger.WithError(err).Warn("cookie jar init failed")
		} else {
			client.SetCookieJar(jar)
		}
	}
	return client
}

type compressedTransport struct {
	transport http.RoundTripper
	logger    *logrus.Logger
}

func (c *compressedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := c.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logger.WithError(err).WithField("url", req.URL.String()).Warn("gzip decode failed, returning raw body")
			return resp, nil
		}
		resp.Body = &gzipReadCloser{Reader: gzReader, closer: resp.Body}
		resp.Header.Del("Content-Encoding")
		resp.ContentLength = -1
	}
	return resp, nil
}

// gzipReadCloser 同时关闭gzip reader和响应体
type gzipReadCloser struct {
	*gzip.Reader
	closer io.ReadCloser
}

func (g *gzipReadCloser) Close() error {
	if err := g.Reader.Close(); err != nil {
		_ = g.closer.Close()
		return err
	}
	return g.closer.Close()
}
