package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"

	appcfg "github.com/brandhub/core/internal/config"
)

// compatibleClient talks to any OpenAI-compatible /v1/chat/completions gateway
// over plain HTTP, for gateways the SDK clients reject.
type compatibleClient struct {
	provider    string
	endpoint    string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	http        *http.Client
}

func newCompatibleClient(provider *appcfg.AIProvider, opts Options, hc *http.Client) *compatibleClient {
	model := strings.TrimSpace(provider.DefaultModel)
	if model == "" {
		model = defaultOpenAIModel
	}
	return &compatibleClient{
		provider:    provider.ID,
		endpoint:    normalizeCompatibleEndpoint(provider.Endpoint),
		apiKey:      strings.TrimSpace(provider.APIKey),
		model:       model,
		maxTokens:   opts.MaxOutputTokens,
		temperature: opts.Temperature,
		http:        hc,
	}
}

func (c *compatibleClient) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	messages := make([]map[string]string, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, map[string]string{"role": "system", "content": systemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	payload := map[string]interface{}{
		"model":      c.model,
		"messages":   messages,
		"max_tokens": c.maxTokens,
	}
	if c.temperature > 0 {
		payload["temperature"] = c.temperature
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", wrapError(c.provider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wrapError(c.provider, err)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	decodeErr := json.Unmarshal(respBody, &result)

	if resp.StatusCode >= http.StatusBadRequest {
		msg := strings.TrimSpace(string(respBody))
		if decodeErr == nil {
			if result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
				msg = result.Error.Message
			} else if strings.TrimSpace(result.Message) != "" {
				msg = result.Message
			}
		}
		if msg == "" {
			msg = resp.Status
		}
		return "", &Error{Provider: c.provider, StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", wrapError(c.provider, fmt.Errorf("decode chat completion: %w", decodeErr))
	}
	if result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
		return "", &Error{Provider: c.provider, StatusCode: resp.StatusCode, Message: result.Error.Message}
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", wrapError(c.provider, errors.New("empty response from AI"))
	}
	return result.Choices[0].Message.Content, nil
}

func normalizeCompatibleEndpoint(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return "https://api.openai.com"
	}

	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimSuffix(strings.TrimRight(base, "/"), "/v1")
	}

	parsed.Path = strings.TrimSuffix(strings.TrimRight(parsed.Path, "/"), "/v1")
	return strings.TrimRight(parsed.String(), "/")
}
