package estonia

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	resultsPath       = "/et/results/"
	sessionCookieName = "__Host-MYSESSIONCOOKIE"
	// used when the session cookie carries no Max-Age
	defaultSessionTTL = 1800 * time.Second
)

var errMissingToken = errors.New("csrf token not found on results page")

// TokenSource scrapes and caches the results page CSRF token for the lifetime of the session cookie
type TokenSource struct {
	http *resty.Client
	now  func() time.Time

	mu        sync.Mutex
	token     string
	fetchedAt time.Time
	maxAge    time.Duration
}

func NewTokenSource(client *resty.Client) *TokenSource {
	return &TokenSource{http: client, now: time.Now}
}

// Token cached token, refreshed once the session has expired
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Sub(s.fetchedAt) < s.maxAge {
		return s.token, nil
	}

	resp, err := s.http.R().SetContext(ctx).SetDoNotParseResponse(true).Get(resultsPath)
	if err != nil {
		return "", fmt.Errorf("load results page: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("load results page: unexpected status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parse results page: %w", err)
	}
	token, ok := doc.Find(`input[name="csrfToken"]`).First().Attr("value")
	if !ok || token == "" {
		return "", errMissingToken
	}

	s.token = token
	s.fetchedAt = s.now()
	s.maxAge = defaultSessionTTL
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName && c.MaxAge > 0 {
			s.maxAge = time.Duration(c.MaxAge) * time.Second
		}
	}
	return s.token, nil
}

// Invalidate drops the cached token (after the API rejects it)
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
