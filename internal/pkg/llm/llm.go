// Package llm wraps the chat-completion gateways used for campaign generation
// and document extraction behind a single prompt-in, text-out Client.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	appcfg "github.com/brandhub/core/internal/config"
)

// Provider types accepted in ai.providers[].type.
const (
	TypeOpenAI           = "openai"
	TypeOpenAICompatible = "openai-compatible"
	TypeAnthropic        = "anthropic"
	TypeOpenRouter       = "openrouter"
	TypeGemini           = "gemini"
)

var ErrNoProvider = errors.New("no enabled AI provider configured")

// Client completes one system + user prompt pair and returns the raw text.
type Client interface {
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, systemPrompt, prompt string) (string, error)

func (f ClientFunc) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	return f(ctx, systemPrompt, prompt)
}

// Error is a failed generation call. Message is the provider-reported text when
// one was available, else the transport error.
type Error struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "AI generation failed"
}

func (e *Error) Unwrap() error { return e.Err }

func wrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return err
	}
	return &Error{Provider: provider, Message: err.Error(), Err: err}
}

// Options tunes every client built by New.
type Options struct {
	MaxOutputTokens int
	Temperature     float64
	Timeout         time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxOutputTokens <= 0 {
		o.MaxOutputTokens = 4096
	}
	if o.Timeout <= 0 {
		o.Timeout = 120 * time.Second
	}
	return o
}

// New builds a Client for provider.
func New(provider *appcfg.AIProvider, opts Options) (Client, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}
	if strings.TrimSpace(provider.APIKey) == "" {
		return nil, fmt.Errorf("AI provider %q api key is empty", provider.ID)
	}
	opts = opts.withDefaults()

	switch NormalizeType(provider.Type) {
	case TypeOpenAICompatible:
		return newCompatibleClient(provider, opts, &http.Client{Timeout: opts.Timeout}), nil
	case TypeGemini:
		return newGeminiClient(context.Background(), provider, opts)
	default:
		return newJetifyClient(provider, opts)
	}
}

// NewFromConfig selects the provider for assignment and builds its Client.
func NewFromConfig(cfg appcfg.AIConfig, assignment *appcfg.AIModelAssignment) (Client, error) {
	provider := SelectProvider(cfg, assignment)
	if provider == nil {
		return nil, ErrNoProvider
	}
	return New(provider, Options{
		MaxOutputTokens: cfg.MaxOutputTokens,
		Temperature:     cfg.Temperature,
	})
}

// NormalizeType folds provider type spellings ("OpenAI-Compatible", "open_router") to the Type constants.
func NormalizeType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	switch t {
	case "openaicompatible", "openai-compatible":
		return TypeOpenAICompatible
	case "open-router", "openrouter":
		return TypeOpenRouter
	case "google", "gemini":
		return TypeGemini
	case "anthropic", "claude":
		return TypeAnthropic
	case "", "openai":
		return TypeOpenAI
	}
	return t
}

// SelectProvider picks the enabled provider named by assignment, falling back
// to the first enabled one. The assignment's model overrides the default model.
func SelectProvider(cfg appcfg.AIConfig, assignment *appcfg.AIModelAssignment) *appcfg.AIProvider {
	var providerID, overrideModel string
	if assignment != nil {
		providerID = strings.TrimSpace(assignment.ProviderID)
		overrideModel = strings.TrimSpace(assignment.Model)
	}

	pick := func(provider appcfg.AIProvider) *appcfg.AIProvider {
		selected := provider
		if overrideModel != "" {
			selected.DefaultModel = overrideModel
		}
		return &selected
	}

	if providerID != "" {
		for _, provider := range cfg.Providers {
			if provider.Enabled && strings.TrimSpace(provider.ID) == providerID {
				return pick(provider)
			}
		}
	}
	for _, provider := range cfg.Providers {
		if provider.Enabled {
			return pick(provider)
		}
	}
	return nil
}
