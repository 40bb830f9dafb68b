package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	showhttp "github.com/showsync/showsync/pkg/http"
	"github.com/showsync/showsync/pkg/show"
)

// GitHub stores the collection as one file in a repository through the
// contents API. The version token is the blob SHA the API reports, which the
// API itself checks on write.
type GitHub struct {
	client        showhttp.HTTPClient
	baseURL       string
	owner         string
	repo          string
	path          string
	branch        string
	token         string
	commitMessage string
}

type GitHubOption func(*GitHub)

// WithGitHubHTTPClient sets the http client used for API calls
func WithGitHubHTTPClient(client showhttp.HTTPClient) GitHubOption {
	return func(g *GitHub) {
		g.client = client
	}
}

// WithBaseURL points the store at a different API host, e.g. a test server
func WithBaseURL(baseURL string) GitHubOption {
	return func(g *GitHub) {
		g.baseURL = baseURL
	}
}

// WithCommitMessage overrides the commit message used on writes
func WithCommitMessage(message string) GitHubOption {
	return func(g *GitHub) {
		g.commitMessage = message
	}
}

func NewGitHub(owner, repo, path, branch, token string, opts ...GitHubOption) *GitHub {
	g := &GitHub{
		client:        showhttp.NewRateLimitedClient(),
		baseURL:       "https://api.github.com",
		owner:         owner,
		repo:          repo,
		path:          path,
		branch:        branch,
		token:         token,
		commitMessage: "showsync: update collection",
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *GitHub) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.baseURL, g.owner, g.repo, url.PathEscape(g.path))
}

func (g *GitHub) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

type updateResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

func (g *GitHub) Get(ctx context.Context) (*show.Collection, VersionToken, error) {
	u := g.contentsURL()
	if g.branch != "" {
		u += "?ref=" + url.QueryEscape(g.branch)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	g.setHeaders(req)

	res, err := g.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch collection: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, "", ErrNotFound
	}

	if res.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected contents response status: %s", res.Status)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", err
	}

	var contents contentsResponse
	if err := json.Unmarshal(b, &contents); err != nil {
		return nil, "", fmt.Errorf("failed to parse contents response: %w", err)
	}

	raw, err := base64.StdEncoding.DecodeString(stripNewlines(contents.Content))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode file content: %w", err)
	}

	collection, err := show.DecodeCollection(raw)
	if err != nil {
		return nil, "", err
	}

	return collection, VersionToken(contents.SHA), nil
}

func (g *GitHub) Put(ctx context.Context, collection *show.Collection, expected VersionToken) (VersionToken, error) {
	raw, err := collection.Encode()
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(updateRequest{
		Message: g.commitMessage,
		Content: base64.StdEncoding.EncodeToString(raw),
		SHA:     string(expected),
		Branch:  g.branch,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.contentsURL(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	g.setHeaders(req)

	res, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to write collection: %w", err)
	}
	defer res.Body.Close()

	// the API reports a stale sha as a conflict or an unprocessable entity
	if res.StatusCode == http.StatusConflict || res.StatusCode == http.StatusUnprocessableEntity {
		return "", ErrConflict
	}

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected update response status: %s", res.Status)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	var updated updateResponse
	if err := json.Unmarshal(b, &updated); err != nil {
		return "", fmt.Errorf("failed to parse update response: %w", err)
	}

	return VersionToken(updated.Content.SHA), nil
}

func stripNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
