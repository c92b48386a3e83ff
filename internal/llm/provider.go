// Package llm is a small provider-neutral client for structured JSON
// generation. Question generation is its only caller today.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a JSON document from a prompt.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the
	// returned Content has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model this provider sends requests to.
	ModelID() string
}

// Middleware wraps a Provider with extra behaviour.
type Middleware func(Provider) Provider

// Chain applies middleware so that the first one listed is outermost.
func Chain(p Provider, mw ...Middleware) Provider {
	for i := len(mw) - 1; i >= 0; i-- {
		p = mw[i](p)
	}
	return p
}

type Request struct {
	System   string
	Messages []Message

	// Schema requests native structured output. Nil means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case; it doubles as the OpenAI schema name and the
	// validator cache key, so it must be unique per definition.
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is one of StopEnd or StopMaxTokens.
	StopReason string
}

const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// finish checks a raw provider result: truncated output is an error and
// structured output must match its schema.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == StopMaxTokens {
		return nil, &TruncatedError{Content: resp.Content}
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
