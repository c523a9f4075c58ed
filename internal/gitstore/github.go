package gitstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"contentapi/internal/config"
)

// githubStore implements Store against the GitHub repository-contents API.
// It is safe for concurrent use by multiple goroutines.
type githubStore struct {
	client  *http.Client
	baseURL string
	owner   string
	repo    string
	branch  string
	token   string
	now     func() time.Time
}

// NewGitHub creates a Store backed by the GitHub contents API for the
// configured repository and branch.
func NewGitHub(cfg config.GitHubConfig) (Store, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, fmt.Errorf("github owner and repo are required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token is required")
	}
	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}

	return &githubStore{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
		baseURL: baseURL,
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		branch:  branch,
		token:   cfg.Token,
		now:     time.Now,
	}, nil
}

func (g *githubStore) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.baseURL, g.owner, g.repo, path)
}

func (g *githubStore) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

// Fetch reads the current content and version token for path. The request
// carries a cache-buster query parameter and a no-cache directive so no
// intermediary can serve a revision older than the live one; a cached SHA
// would make the optimistic-concurrency check itself stale.
func (g *githubStore) Fetch(ctx context.Context, path string) (*File, error) {
	q := url.Values{}
	q.Set("ref", g.branch)
	q.Set("t", strconv.FormatInt(g.now().UnixNano(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.contentsURL(path)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	g.setHeaders(req)
	req.Header.Set("Cache-Control", "no-cache, no-store")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &TransportError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch %s: %w", path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var body struct {
		Content string `json:"content"`
		SHA     string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: "unreadable response body: " + err.Error()}
	}

	return &File{Path: path, Content: body.Content, SHA: body.SHA}, nil
}

// Commit writes one file to the target branch and returns the new version
// token. The SHA check is enforced by the store; this client only forwards
// the token and classifies the rejection.
func (g *githubStore) Commit(ctx context.Context, req CommitRequest) (string, error) {
	payload := map[string]string{
		"message": req.Message,
		"content": req.Content,
		"branch":  g.branch,
	}
	if req.SHA != "" {
		payload["sha"] = req.SHA
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, g.contentsURL(req.Path), bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	g.setHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", &TransportError{Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusUnprocessableEntity && req.SHA != "":
		// 409 is the documented SHA-mismatch answer; 422 shows up for the
		// same race when the blob moved between fetch and commit.
		return "", &ConflictError{Path: req.Path, Message: apiMessage(resp)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", apiError(resp)
	}

	var body struct {
		Content struct {
			SHA string `json:"sha"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &TransportError{StatusCode: resp.StatusCode, Message: "unreadable response body: " + err.Error()}
	}
	return body.Content.SHA, nil
}

// Ping checks the repository is visible with the configured token.
func (g *githubStore) Ping(ctx context.Context) error {
	u := fmt.Sprintf("%s/repos/%s/%s", g.baseURL, g.owner, g.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return &TransportError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	return nil
}

// apiMessage pulls the human-readable message out of a GitHub error body.
func apiMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(resp.StatusCode)
}

func apiError(resp *http.Response) error {
	return &TransportError{StatusCode: resp.StatusCode, Message: apiMessage(resp)}
}
