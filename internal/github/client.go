// Package github fetches public repositories from the GitHub REST API
// and turns them into portfolio projects.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

const (
	perPage          = 100
	maxErrorBodySize = 64 * 1024
	acceptHeader     = "application/vnd.github+json"
	userAgent        = "folio"
	breakerName      = "github-api"
)

// ErrRateLimited is returned when GitHub reports an exhausted rate limit.
var ErrRateLimited = errors.New("github rate limit exceeded")

// StatusError is a non-2xx response from GitHub.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github request %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Token      string
	Rate       float64 // requests per second
	HTTPClient *http.Client
	Cache      contract.ResponseCache // nil disables ETag revalidation
}

// Client talks to the GitHub REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
	cache   contract.ResponseCache
	now     func() time.Time
}

var _ contract.GitHubClient = &Client{} // Compile-time check

// NewClient builds a client from opts, filling defaults for empty fields.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = contract.DefaultGitHubAPIURL
	}
	if opts.Rate <= 0 {
		opts.Rate = contract.DefaultGitHubRate
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: isBreakerSuccess,
	})

	return &Client{
		baseURL: opts.BaseURL,
		token:   opts.Token,
		http:    opts.HTTPClient,
		limiter: rate.NewLimiter(rate.Limit(opts.Rate), 1),
		breaker: breaker,
		cache:   opts.Cache,
		now:     time.Now,
	}
}

// isBreakerSuccess counts only server-side trouble against the breaker.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode < http.StatusInternalServerError
	}
	return false
}

// ListRepos returns every repository owned by user, following pagination.
func (c *Client) ListRepos(ctx context.Context, user string) ([]schema.GitHubRepo, error) {
	if user == "" {
		return nil, errors.New("github user cannot be empty")
	}

	var repos []schema.GitHubRepo
	for page := 1; ; page++ {
		reqURL := fmt.Sprintf("%s/users/%s/repos?per_page=%d&page=%d&type=owner", c.baseURL, url.PathEscape(user), perPage, page)
		var batch []schema.GitHubRepo
		if err := c.getJSON(ctx, reqURL, &batch); err != nil {
			return nil, fmt.Errorf("failed to list repositories of %s: %w", user, err)
		}
		repos = append(repos, batch...)
		if len(batch) < perPage {
			return repos, nil
		}
	}
}

// ListTopics returns the topics of owner/repo.
func (c *Client) ListTopics(ctx context.Context, owner, repo string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/repos/%s/%s/topics", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
	var topics schema.GitHubTopics
	if err := c.getJSON(ctx, reqURL, &topics); err != nil {
		return nil, fmt.Errorf("failed to list topics of %s/%s: %w", owner, repo, err)
	}
	return topics.Names, nil
}

// getJSON fetches reqURL through the limiter and breaker and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, reqURL string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, reqURL)
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", reqURL, err)
	}
	return nil
}

// fetch performs one GET, revalidating against the response cache when possible.
func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	var cached []byte
	if c.cache != nil {
		if body, etag, _, err := c.cache.Get(reqURL); err == nil && etag != "" {
			cached = body
			req.Header.Set("If-None-Match", etag)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotModified && cached != nil:
		return cached, nil
	case isRateLimited(resp):
		return nil, rateLimitError(resp)
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: reqURL, Body: string(readBodyForError(resp.Body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if etag := resp.Header.Get("ETag"); c.cache != nil && etag != "" {
		if err := c.cache.Set(reqURL, body, etag, c.now().Unix()); err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to cache GitHub response for %s", reqURL), err)
		}
	}
	return body, nil
}

func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0"
}

func rateLimitError(resp *http.Response) error {
	reset, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil || reset <= 0 {
		return ErrRateLimited
	}
	return fmt.Errorf("%w: resets at %s", ErrRateLimited, time.Unix(reset, 0).UTC().Format(time.RFC3339))
}

// readBodyForError reads at most 64KB of an error body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
