package filter

import (
	"log/slog"

	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
)

// Engine bundles a Builder, a record set factory and a logger for callers that
// filter by declarative profiles (CLI and gRPC service).
type Engine struct {
	builder *Builder
	sets    *records.SetAllocator
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithBuilder sets the builder used to compile profiles.
func WithBuilder(b *Builder) Option {
	return func(e *Engine) { e.builder = b }
}

// WithSets sets the factory for result sets.
func WithSets(s *records.SetAllocator) Option {
	return func(e *Engine) { e.sets = s }
}

// WithLogger sets the logger; soft-filter steps are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a filter engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.builder == nil {
		e.builder = NewBuilder(nil, nil)
	}
	if e.sets == nil {
		e.sets = records.DefaultSets()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Builder returns the engine's condition builder.
func (e *Engine) Builder() *Builder {
	return e.builder
}

// Result is the outcome of applying a profile. The caller must Release Set.
type Result struct {
	Profile string
	Mode    string
	Set     *records.Set
	Steps   []Step // soft mode only
}

// Apply compiles p and filters set by it.
func (e *Engine) Apply(p *types.Profile, set *records.Set) (Result, error) {
	compiled, err := e.builder.CompileProfile(p)
	if err != nil {
		return Result{}, err
	}
	defer compiled.Destroy()
	return e.Run(compiled, set)
}

// Run filters set by an already compiled profile.
func (e *Engine) Run(p *CompiledProfile, set *records.Set) (Result, error) {
	result := Result{Profile: p.Name, Mode: p.Mode}

	if p.Mode == types.ModeSoft {
		out, steps, err := SoftTrace(p.List, set, e.sets)
		if err != nil {
			return result, err
		}
		for _, s := range steps {
			e.logger.Debug("soft filter step",
				"profile", p.Name,
				"index", s.Index,
				"condition", s.Condition,
				"before", s.Before,
				"after", s.After,
				"applied", s.Applied,
			)
		}
		result.Set = out
		result.Steps = steps
		return result, nil
	}

	out, err := Strict(p.List, set, e.sets)
	if err != nil {
		return result, err
	}
	e.logger.Debug("strict filter", "profile", p.Name, "before", set.Len(), "after", out.Len())
	result.Set = out
	return result, nil
}
