package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	showhttp "github.com/showsync/showsync/pkg/http"
	"github.com/showsync/showsync/pkg/show"
)

// TasteEntry is one line of the taste profile sent to the generator
type TasteEntry struct {
	Title  string      `json:"title"`
	Rating show.Rating `json:"rating"`
}

// Candidate is one recommendation coming back from the generator
type Candidate struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// ClientInterface is what consumers of recommendations depend on
type ClientInterface interface {
	Recommend(ctx context.Context, profile []TasteEntry) ([]Candidate, error)
}

const systemPrompt = `You recommend TV shows. Given a list of shows the user finished with ratings, suggest 3 to 5 shows they have not seen. Respond with only a JSON array of objects with "title" and "reason" fields.`

const DefaultModel = "gpt-4o-mini"

type Client struct {
	client  showhttp.HTTPClient
	baseURL string
	apiKey  string
	model   string
}

var _ ClientInterface = (*Client)(nil)

type ClientOption func(*Client)

// WithHTTPClient sets the http client used for API calls
func WithHTTPClient(client showhttp.HTTPClient) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithModel overrides the completion model
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

func New(baseURL, apiKey string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("recommender url is required")
	}

	c := &Client{
		client:  showhttp.NewRateLimitedClient(),
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   DefaultModel,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Recommend sends the taste profile and parses the candidate list out of the
// completion. The generator promises 3-5 candidates but none of the callers
// rely on that.
func (c *Client) Recommend(ctx context.Context, profile []TasteEntry) ([]Candidate, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(profileJSON)},
		},
	})
	if err != nil {
		return nil, err
	}

	u := strings.TrimSuffix(c.baseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommendation request failed: %w", err)
	}
	defer res.Body.Close()

	return parseRecommendResponse(res)
}

func parseRecommendResponse(res *http.Response) ([]Candidate, error) {
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected recommendation status: %s", res.Status)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var chat chatResponse
	if err := json.Unmarshal(b, &chat); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation response: %w", err)
	}

	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("recommendation response has no choices")
	}

	return parseCandidates(chat.Choices[0].Message.Content)
}

// parseCandidates extracts the JSON candidate array from the completion
// content, tolerating a markdown code fence around it
func parseCandidates(content string) ([]Candidate, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var candidates []Candidate
	if err := json.Unmarshal([]byte(trimmed), &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse candidates: %w", err)
	}

	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c.Title) == "" {
			continue
		}
		out = append(out, c)
	}

	return out, nil
}
