// Package gateway dispatches prompts to interchangeable model backends
// behind one contract.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrUnknownBackend indicates the requested backend is not registered.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrBackendUnavailable indicates the backend exists but has no
	// credentials or client configured. Checked before any call is made.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// UpstreamError wraps a transport or vendor failure from a backend call.
type UpstreamError struct {
	Backend string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream error: %v", e.Backend, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Result is a successful generation with the vendor-reported usage counts.
type Result struct {
	Text         string
	InputTokens  int64
	OutputTokens int64
}

// Backend is one model service variant.
type Backend interface {
	Name() string
	// Available reports whether the backend can be called at all
	// (credentials present, client constructed).
	Available() bool
	Generate(ctx context.Context, prompt, systemPrompt string) (Result, error)
}

// Gateway routes generation requests to registered backends.
// It holds no conversation state and never retries; retry policy, if any,
// belongs to the caller.
type Gateway struct {
	backends map[string]Backend
	log      *zap.Logger
}

// New returns an empty gateway.
func New(log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{
		backends: make(map[string]Backend),
		log:      log,
	}
}

// Register adds a backend to the registry, replacing any previous backend
// with the same name. Names are matched case-insensitively.
func (g *Gateway) Register(b Backend) {
	g.backends[strings.ToLower(b.Name())] = b
}

// IsAvailable reports whether the named backend is registered and has
// credentials configured.
func (g *Gateway) IsAvailable(name string) bool {
	b, ok := g.backends[strings.ToLower(name)]
	return ok && b.Available()
}

// Backends returns the registered backend names, sorted.
func (g *Gateway) Backends() []string {
	names := make([]string, 0, len(g.backends))
	for name := range g.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate dispatches a single generation request.
// Availability is checked up front, not inferred from a failed call.
// Any error from the backend itself is wrapped as an UpstreamError.
func (g *Gateway) Generate(ctx context.Context, name, prompt, systemPrompt string) (Result, error) {
	b, ok := g.backends[strings.ToLower(name)]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}

	if !b.Available() {
		return Result{}, fmt.Errorf("%w: %s API key missing or client not configured", ErrBackendUnavailable, b.Name())
	}

	res, err := b.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		g.log.Warn("backend call failed",
			zap.String("backend", b.Name()),
			zap.Error(err))
		return Result{}, &UpstreamError{Backend: b.Name(), Err: err}
	}

	g.log.Debug("backend call ok",
		zap.String("backend", b.Name()),
		zap.Int64("input_tokens", res.InputTokens),
		zap.Int64("output_tokens", res.OutputTokens))

	return res, nil
}
