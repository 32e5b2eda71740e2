// Package api provides the gRPC FilterService: profile resolution, catalog
// loading and filtering over google.protobuf.Struct messages.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/solatis/fontfilter/internal/core/config"
	"github.com/solatis/fontfilter/internal/core/metrics"
	"github.com/solatis/fontfilter/internal/filter"
	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Catalog supplies the records a request filters. The returned set is only
// read, never released, so implementations may share it between requests.
type Catalog interface {
	LoadRecords(ctx context.Context) (*records.Set, error)
}

// Profiles resolves stored filter profiles by name.
type Profiles interface {
	GetProfileByName(ctx context.Context, name string) (*types.Profile, error)
	ListProfiles(ctx context.Context) ([]*types.Profile, error)
}

// FilterService implements FilterServer.
// Thin orchestration layer delegating to the catalog, profile store and filter engine.
// Each request compiles its own condition tree, so requests share no mutable state.
type FilterService struct {
	engine   *filter.Engine
	catalog  Catalog
	profiles Profiles
	cfg      *config.Config
	logger   *slog.Logger
}

// NewFilterService creates service instance with dependencies.
func NewFilterService(engine *filter.Engine, catalog Catalog, profiles Profiles, cfg *config.Config, logger *slog.Logger) (*FilterService, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profiles cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FilterService{
		engine:   engine,
		catalog:  catalog,
		profiles: profiles,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Filter applies a stored or inline profile to the catalog.
func (s *FilterService) Filter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	resp, outcome, err := s.filter(ctx, req)
	label := "ok"
	if err != nil {
		err = toStatus(err)
		label = status.Code(err).String()
	}
	metrics.ObserveFilter(outcome.mode, label, time.Since(start), outcome.in, outcome.out)
	return resp, err
}

type filterOutcome struct {
	mode    string
	in, out int
}

func (s *FilterService) filter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, filterOutcome, error) {
	outcome := filterOutcome{mode: types.ModeStrict}

	fr, err := decodeFilterRequest(req)
	if err != nil {
		return nil, outcome, err
	}
	profile, err := s.resolveProfile(ctx, fr)
	if err != nil {
		return nil, outcome, err
	}
	if profile.Mode != "" {
		outcome.mode = profile.Mode
	}

	set, err := s.catalog.LoadRecords(ctx)
	if err != nil {
		return nil, outcome, err
	}
	outcome.in = set.Len()
	if err := ctx.Err(); err != nil {
		return nil, outcome, err
	}

	res, err := s.engine.Apply(profile, set)
	if err != nil {
		return nil, outcome, err
	}
	defer res.Set.Release()
	outcome.mode = res.Mode
	outcome.out = res.Set.Len()

	for _, step := range res.Steps {
		metrics.ObserveSoftStep(step.Applied)
	}
	s.logger.Debug("filter request",
		"profile", res.Profile,
		"mode", res.Mode,
		"records_in", outcome.in,
		"records_out", outcome.out,
	)

	resp, err := encodeResult(res, fr.Limit)
	if err != nil {
		return nil, outcome, err
	}
	return resp, outcome, nil
}

// resolveProfile returns the stored profile named by the request, with an
// optional mode override, or builds an inline profile from its conditions.
func (s *FilterService) resolveProfile(ctx context.Context, fr filterRequest) (*types.Profile, error) {
	if fr.Profile != "" && len(fr.Conditions) > 0 {
		return nil, fmt.Errorf("profile and conditions are exclusive: %w", types.ErrInvalidExpression)
	}
	if fr.Profile == "" {
		name := fr.Name
		if name == "" {
			name = "inline"
		}
		return &types.Profile{Name: name, Mode: fr.Mode, Conditions: fr.Conditions}, nil
	}

	stored, err := s.profiles.GetProfileByName(ctx, fr.Profile)
	if err != nil {
		return nil, err
	}
	p := *stored
	if fr.Mode != "" {
		p.Mode = fr.Mode
	}
	return &p, nil
}

// ListProfiles returns a summary of every stored profile.
func (s *FilterService) ListProfiles(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	resp, err := encodeProfiles(profiles)
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}
