// Package news fetches a few current headlines from a search-grounded
// generative model and tracks the panel's fetch state.
package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-3-flash-preview"
	DefaultKeyEnv   = "REFLEX_NEWS_API_KEY"
	DefaultPrompt   = "List exactly 3 latest technology or gaming news headlines from today. Keep the titles concise. Provide links for each."
)

// Answer is the text of a grounded response plus its source links in order.
type Answer struct {
	Text  string
	Links []string
}

// Client performs a single grounded search request.
type Client interface {
	Search(ctx context.Context, prompt string) (Answer, error)
}

// geminiClient implements Client with the generateContent REST API.
type geminiClient struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

// NewGeminiClient returns a Client for the configured endpoint and model.
func NewGeminiClient(cfg Config) Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	return &geminiClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    modelName,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Transport: newTransport()},
	}
}

// newTransport keeps the default proxy and TLS handling; overall request
// time is bounded only by the caller's context.
func newTransport() *http.Transport {
	return http.DefaultTransport.(*http.Transport).Clone()
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content           content            `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata,omitempty"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type groundingChunk struct {
	Web *webChunk `json:"web,omitempty"`
}

type webChunk struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

func (c *geminiClient) Search(ctx context.Context, prompt string) (Answer, error) {
	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		Tools:    []tool{{GoogleSearch: &struct{}{}}},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return Answer{}, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return Answer{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Answer{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Answer{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Answer{}, fmt.Errorf("news service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Answer{}, fmt.Errorf("decoding response: %w", err)
	}
	return parsed.answer(), nil
}

func (r generateResponse) answer() Answer {
	if len(r.Candidates) == 0 {
		return Answer{}
	}
	first := r.Candidates[0]
	var text strings.Builder
	for _, p := range first.Content.Parts {
		text.WriteString(p.Text)
	}
	ans := Answer{Text: text.String()}
	if first.GroundingMetadata != nil {
		for _, chunk := range first.GroundingMetadata.GroundingChunks {
			uri := ""
			if chunk.Web != nil {
				uri = chunk.Web.URI
			}
			// Keep positions aligned with chunks so link i stays with headline i.
			ans.Links = append(ans.Links, uri)
		}
	}
	return ans
}
