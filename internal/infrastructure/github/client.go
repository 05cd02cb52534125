// Package github is the commit-source client: a thin bearer-authenticated
// wrapper over the GitHub REST API for the handful of endpoints the standup
// workflow needs, plus the OAuth code exchange.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"standup-tracker/internal/domain/entity"
)

const (
	defaultAPIBaseURL   = "https://api.github.com"
	defaultOAuthBaseURL = "https://github.com"
	defaultTimeout      = 15 * time.Second
)

// Client talks to the GitHub REST API.
type Client struct {
	apiBaseURL   string
	oauthBaseURL string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIBaseURL overrides the REST API base URL (used by tests).
func WithAPIBaseURL(u string) Option {
	return func(c *Client) { c.apiBaseURL = strings.TrimRight(u, "/") }
}

// WithOAuthBaseURL overrides the OAuth base URL (used by tests).
func WithOAuthBaseURL(u string) Option {
	return func(c *Client) { c.oauthBaseURL = strings.TrimRight(u, "/") }
}

// WithTimeout overrides the per-request timeout. An unbounded hang here
// would block the whole composition workflow, so the default is bounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a GitHub client. clientID/clientSecret are only needed
// for ExchangeCode; pass empty strings for a read-only client.
func NewClient(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		apiBaseURL:   defaultAPIBaseURL,
		oauthBaseURL: defaultOAuthBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// User is the authenticated GitHub account.
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Email     string `json:"email"`
}

// Repo is a repository visible to the authenticated user.
type Repo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
}

// ExchangeCode trades an OAuth authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"code":          code,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.oauthBaseURL+"/login/oauth/access_token", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		AccessToken      string `json:"access_token"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if result.Error != "" {
		msg := result.ErrorDescription
		if msg == "" {
			msg = result.Error
		}
		return "", fmt.Errorf("github oauth error: %s", msg)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("github oauth response missing access token")
	}
	return result.AccessToken, nil
}

// GetUser fetches the authenticated user.
func (c *Client) GetUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.getJSON(ctx, token, "/user", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user.Name == "" {
		user.Name = user.Login
	}
	return &user, nil
}

// ListRepos fetches the repositories of the authenticated user, most
// recently updated first.
func (c *Client) ListRepos(ctx context.Context, token string) ([]Repo, error) {
	q := url.Values{}
	q.Set("sort", "updated")
	q.Set("per_page", "100")

	var repos []Repo
	if err := c.getJSON(ctx, token, "/user/repos", q, &repos); err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	return repos, nil
}

// ListBranches fetches the branch names of a repository.
func (c *Client) ListBranches(ctx context.Context, token, fullName string) ([]string, error) {
	var branches []struct {
		Name string `json:"name"`
	}
	path := fmt.Sprintf("/repos/%s/branches", fullName)
	if err := c.getJSON(ctx, token, path, nil, &branches); err != nil {
		return nil, fmt.Errorf("failed to fetch branches: %w", err)
	}
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name)
	}
	return names, nil
}

// CommitOptions narrow a commit listing.
type CommitOptions struct {
	Branch  string     // ref to list from; repository default branch when empty
	Since   *time.Time // UTC window start, inclusive
	Until   *time.Time // UTC window end, inclusive
	PerPage int        // page size cap; defaults to 50
}

// ListCommits fetches the commits of owner/repo within the window, following
// pagination until a short page. Ordering is as returned by the API, which
// is reverse-chronological.
//
// An empty repository answers 409 on this endpoint; that is a normal
// zero-commit outcome, not an error.
func (c *Client) ListCommits(ctx context.Context, token, owner, repo string, opts CommitOptions) ([]entity.Commit, error) {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 50
	}

	var all []entity.Commit
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("per_page", fmt.Sprintf("%d", perPage))
		q.Set("page", fmt.Sprintf("%d", page))
		if opts.Branch != "" {
			q.Set("sha", opts.Branch)
		}
		if opts.Since != nil {
			q.Set("since", opts.Since.UTC().Format(time.RFC3339))
		}
		if opts.Until != nil {
			q.Set("until", opts.Until.UTC().Format(time.RFC3339))
		}

		var raw []struct {
			SHA    string `json:"sha"`
			Commit struct {
				Message string `json:"message"`
				Author  *struct {
					Name string     `json:"name"`
					Date *time.Time `json:"date"`
				} `json:"author"`
			} `json:"commit"`
		}

		path := fmt.Sprintf("/repos/%s/%s/commits", owner, repo)
		err := c.getJSON(ctx, token, path, q, &raw)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
				// "Git Repository is empty."
				return []entity.Commit{}, nil
			}
			return nil, fmt.Errorf("failed to fetch commits: %w", err)
		}

		for _, rc := range raw {
			commit := entity.Commit{SHA: rc.SHA, Message: rc.Commit.Message}
			if rc.Commit.Author != nil {
				commit.AuthorName = rc.Commit.Author.Name
				commit.AuthorDate = rc.Commit.Author.Date
			}
			all = append(all, commit)
		}

		if len(raw) < perPage {
			break
		}
	}
	return all, nil
}

// APIError is a non-success GitHub API response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api: %d %s", e.StatusCode, e.Message)
}

func (c *Client) getJSON(ctx context.Context, token, path string, query url.Values, out any) error {
	u := c.apiBaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Message string `json:"message"`
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(body, &apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
