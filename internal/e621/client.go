package e621

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/five82/e6viu/internal/errs"
)

// PostFetcher fetches one random post matching a tag list.
// This interface is implemented by *Client and can be used for testing.
type PostFetcher interface {
	FetchRandomPost(ctx context.Context, tags []string) (Post, error)
}

// Ensure Client implements PostFetcher at compile time.
var _ PostFetcher = (*Client)(nil)

const (
	defaultBaseURL   = "https://e621.net"
	defaultUserAgent = "e6viu/0.1 (terminal viewer)"
	requestTimeout   = 30 * time.Second
	postsPath        = "/posts.json"
)

// ExcludedTags are appended to every search.
var ExcludedTags = []string{"-female", "-intersex"}

const randomOrder = "order:random"

// Options configure a Client.
type Options struct {
	BaseURL    string
	UserAgent  string
	Credential *Credential // nil sends unauthenticated requests
	Timeout    time.Duration
	// RequestsPerSecond paces API calls; zero or negative disables pacing.
	RequestsPerSecond float64
	Logger            *slog.Logger
	HTTPClient        *http.Client
}

// Client talks to the e621 JSON API.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	userAgent  string
	credential *Credential
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = requestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    base,
		http:       httpClient,
		userAgent:  userAgent,
		credential: opts.Credential,
		limiter:    rate.NewLimiter(limit, 1),
		log:        logger,
	}, nil
}

// Authenticated reports whether requests carry a credential.
func (c *Client) Authenticated() bool {
	return c != nil && c.credential != nil
}

// Permalink returns the human-facing page of a post.
func (c *Client) Permalink(id int64) string {
	rel := &url.URL{Path: "/posts/" + strconv.FormatInt(id, 10)}
	return c.baseURL.ResolveReference(rel).String()
}

// SearchTags returns the full tag query sent for the given user tags.
func SearchTags(tags []string) string {
	parts := make([]string, 0, len(tags)+len(ExcludedTags)+1)
	parts = append(parts, randomOrder)
	parts = append(parts, ExcludedTags...)
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			parts = append(parts, tag)
		}
	}
	return strings.Join(parts, " ")
}

// FetchRandomPost retrieves a single random post matching tags.
func (c *Client) FetchRandomPost(ctx context.Context, tags []string) (Post, error) {
	if c == nil {
		return Post{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("limit", "1")
	values.Set("tags", SearchTags(tags))
	rel := &url.URL{Path: postsPath, RawQuery: values.Encode()}

	var payload PostsResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return Post{}, err
	}
	if len(payload.Posts) == 0 {
		return Post{}, fmt.Errorf("%w for %q", errs.ErrEmptyResult, values.Get("tags"))
	}
	post := payload.Posts[0]
	c.log.Debug("fetched post", "id", post.ID, "ext", post.File.Ext, "size", post.File.Size)
	return post, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if c.credential != nil {
		auth, err := c.credential.Header()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", auth)
	} else {
		c.log.Warn("no api credential configured, sending unauthenticated request")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait: %w", errs.ErrNetwork, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %w", errs.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: api %s returned status %d", errs.ErrNetwork, rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %w", errs.ErrNetwork, err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
