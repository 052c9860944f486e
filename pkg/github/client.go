package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client fetches public repository listings from the GitHub REST API. The
// proxy endpoint is a pass-through: responses are decoded only far enough to
// re-serialize them for the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// ErrNoProfile is returned for any upstream non-200 response; the HTTP layer
// maps it to a 404.
var ErrNoProfile = fmt.Errorf("no github profile found")

func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		token:      token,
	}
}

// Repo is the subset of repository fields forwarded to clients.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
	CreatedAt   string `json:"created_at"`
}

// RecentRepos returns the user's most recently created public repositories.
func (c *Client) RecentRepos(ctx context.Context, username string, count int) ([]Repo, error) {
	if count <= 0 {
		count = 5
	}
	u := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=created:asc", c.baseURL, url.PathEscape(username), count)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "devconnector")
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNoProfile
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}
	return repos, nil
}
