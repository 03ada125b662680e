package llm

import (
	"context"
	"fmt"
	"strings"

	appcfg "github.com/brandhub/core/internal/config"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash-lite"

type geminiClient struct {
	provider string
	client   *genai.Client
	model    *genai.GenerativeModel
}

func newGeminiClient(ctx context.Context, provider *appcfg.AIProvider, opts Options) (*geminiClient, error) {
	clientOpts := []option.ClientOption{option.WithAPIKey(strings.TrimSpace(provider.APIKey))}
	if endpoint := strings.TrimSpace(provider.Endpoint); endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(endpoint))
	}
	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelID := strings.TrimSpace(provider.DefaultModel)
	if modelID == "" {
		modelID = defaultGeminiModel
	}
	model := client.GenerativeModel(modelID)
	if opts.Temperature > 0 {
		model.SetTemperature(float32(opts.Temperature))
	}
	model.SetMaxOutputTokens(int32(opts.MaxOutputTokens))
	model.ResponseMIMEType = "application/json"

	return &geminiClient{provider: provider.ID, client: client, model: model}, nil
}

func (g *geminiClient) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	model := *g.model
	if strings.TrimSpace(systemPrompt) != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", wrapError(g.provider, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", wrapError(g.provider, fmt.Errorf("no content generated"))
	}

	var full strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			full.WriteString(string(text))
		}
	}
	if strings.TrimSpace(full.String()) == "" {
		return "", wrapError(g.provider, fmt.Errorf("no content generated"))
	}
	return full.String(), nil
}

func (g *geminiClient) Close() error {
	return g.client.Close()
}
