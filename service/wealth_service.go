package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"

	"pandaledger/domain"
	"pandaledger/repository"
)

type WealthService struct {
	repo   repository.ProjectionRepository
	cache  repository.CacheRepository
	logger *log.Logger
	now    func() time.Time
}

// NewWealthService creates a WealthService backed by the given repository and cache.
func NewWealthService(
	repo repository.ProjectionRepository,
	cache repository.CacheRepository,
	logger *log.Logger,
) *WealthService {
	return &WealthService{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// CalculateSIP projects the future value of a monthly investment plan.
func (s *WealthService) CalculateSIP(
	ctx context.Context,
	input domain.SIPInput,
) (domain.SIPResult, error) {
	if err := ValidateSIP(input); err != nil {
		return domain.SIPResult{}, err
	}
	return calculate(ctx, s, domain.ProjectionSIP, input, ProjectSIP)
}

// CalculateSWP simulates a withdrawal plan over its duration.
func (s *WealthService) CalculateSWP(
	ctx context.Context,
	input domain.SWPInput,
) (domain.SWPResult, error) {
	if err := ValidateSWP(input); err != nil {
		return domain.SWPResult{}, err
	}
	// pin the default so an explicit 8% shares the cache entry
	growth := GrowthRate(input)
	input.AnnualGrowthRate = &growth
	return calculate(ctx, s, domain.ProjectionSWP, input, ProjectSWP)
}

// History returns recently saved projections, newest first. Only computed
// projections are saved: a request answered from the cache adds no record,
// so repeated calculations appear once.
func (s *WealthService) History(
	ctx context.Context,
	kind domain.ProjectionKind,
	limit int,
) ([]domain.Projection, error) {
	switch kind {
	case "", domain.ProjectionSIP, domain.ProjectionSWP:
	default:
		return nil, invalidf("unknown projection kind %q", kind)
	}
	if limit < 0 {
		return nil, invalidf("limit cannot be negative")
	}
	return s.repo.List(ctx, kind, limit)
}

// calculate serves a projection from the cache when possible, otherwise
// computes it and stores it. Cache and repository failures are logged only.
func calculate[In, Out any](
	ctx context.Context,
	s *WealthService,
	kind domain.ProjectionKind,
	input In,
	project func(In) (Out, error),
) (Out, error) {
	var zero Out

	inputJSON, err := json.Marshal(input)
	if err != nil {
		return zero, fmt.Errorf("encoding %s input: %w", kind, err)
	}
	key := cacheKey(kind, inputJSON)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var out Out
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			s.logger.Debug("projection cache hit", "kind", kind, "key", key)
			return out, nil
		}
		s.logger.Warn("discarding unreadable cache entry", "key", key)
	}

	out, err := project(input)
	if err != nil {
		return zero, err
	}

	resultJSON, err := json.Marshal(out)
	if err != nil {
		return zero, fmt.Errorf("encoding %s result: %w", kind, err)
	}

	if err := s.cache.Set(ctx, key, string(resultJSON)); err != nil {
		s.logger.Warn("failed to cache projection", "kind", kind, "err", err)
	}

	// saving is best effort
	record := domain.Projection{
		Kind:      kind,
		Input:     string(inputJSON),
		Result:    string(resultJSON),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Warn("failed to save projection", "kind", kind, "err", err)
	}

	return out, nil
}

func cacheKey(kind domain.ProjectionKind, inputJSON []byte) string {
	return fmt.Sprintf("pandaledger:%s:%016x", kind, xxhash.Sum64(inputJSON))
}
