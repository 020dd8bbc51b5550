// Package libre implements the translation engine contract against a
// LibreTranslate-compatible HTTP API.
package libre

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"github.com/Jepennn/Lexa/internal/engine"
)

// Client talks to one LibreTranslate server.
type Client struct {
	httpClient *resty.Client
	apiKey     string
}

// NewClient builds a client for the server at baseURL. apiKey may be
// empty for servers that do not require one.
func NewClient(baseURL, apiKey string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient: client,
		apiKey:     apiKey,
	}
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

type languageResponse struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Targets []string `json:"targets"`
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Availability implements engine.Engine. A remote server either serves a
// pair or it does not; there is no downloadable state.
func (c *Client) Availability(ctx context.Context, sourceLang, targetLang string) (engine.Availability, error) {
	var languages []languageResponse
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&languages).
		Get("/languages")
	if err != nil {
		return engine.AvailabilityUnavailable, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return engine.AvailabilityUnavailable, fmt.Errorf("languages: response error %s", response.Status())
	}

	for _, language := range languages {
		if language.Code != sourceLang {
			continue
		}
		for _, target := range language.Targets {
			if target == targetLang {
				return engine.AvailabilityAvailable, nil
			}
		}
	}
	return engine.AvailabilityUnavailable, nil
}

// Create implements engine.Engine. Models live server-side, so creation
// is immediate and onProgress is never invoked.
func (c *Client) Create(ctx context.Context, sourceLang, targetLang string, onProgress func(float64)) (engine.Translator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &translator{client: c, source: sourceLang, target: targetLang}, nil
}

type translator struct {
	client *Client
	source string
	target string
}

func (t *translator) Translate(ctx context.Context, text string) (string, error) {
	var result translateResponse
	response, err := t.client.httpClient.R().
		SetContext(ctx).
		SetBody(translateRequest{
			Q:      text,
			Source: t.source,
			Target: t.target,
			Format: "text",
			APIKey: t.client.apiKey,
		}).
		SetResult(&result).
		Post("/translate")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("translate: response error %s", response.Status())
	}
	return result.TranslatedText, nil
}
