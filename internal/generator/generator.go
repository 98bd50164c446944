// Package generator is the client side of the external plan generator.
package generator

import (
	"context"
	"errors"
)

var (
	// ErrTimeout means the generator did not answer before the context deadline.
	ErrTimeout = errors.New("generator: timed out")
	// ErrUpstream covers every other generator failure.
	ErrUpstream = errors.New("generator: upstream failure")
)

// Params tune one generation call.
type Params struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	// Schema, when set, is sent as a structured output contract.
	Schema     any
	SchemaName string
}

// Generator produces free text for a prompt. Implementations make exactly
// one attempt per call.
type Generator interface {
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Func adapts a plain function to Generator.
type Func func(ctx context.Context, prompt string, params Params) (string, error)

func (f Func) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	return f(ctx, prompt, params)
}
