package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/rider"
	"github.com/vdsgame/vds-api/internal/domain/roster"
	"github.com/vdsgame/vds-api/internal/platform/logging"
)

const defaultRevalidateWorkers = 8

// RevalidateResult summarizes one season-wide validity sweep.
type RevalidateResult struct {
	TeamCount    int `json:"team_count"`
	ChangedCount int `json:"changed_count"`
	ErrorCount   int `json:"error_count"`
}

// RevalidateService recomputes stored validity flags after rule or price
// corrections. Triggered through the internal jobs endpoint, never by
// player traffic.
type RevalidateService struct {
	rosterRepo roster.Repository
	riderRepo  rider.Repository
	workers    int
	logger     *logging.Logger
}

func NewRevalidateService(rosterRepo roster.Repository, riderRepo rider.Repository, workers int, logger *logging.Logger) *RevalidateService {
	if workers <= 0 {
		workers = defaultRevalidateWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RevalidateService{
		rosterRepo: rosterRepo,
		riderRepo:  riderRepo,
		workers:    workers,
		logger:     logger,
	}
}

func (s *RevalidateService) RevalidateSeason(ctx context.Context, year int, division game.Division) (RevalidateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "RevalidateService.RevalidateSeason")
	defer span.End()

	if year <= 0 {
		return RevalidateResult{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if _, ok := game.AllDivisions[division]; !ok {
		return RevalidateResult{}, fmt.Errorf("%w: invalid division", ErrInvalidInput)
	}

	prices, err := s.riderRepo.PricesByName(ctx, year, division)
	if err != nil {
		return RevalidateResult{}, fmt.Errorf("load rider prices: %w", err)
	}
	teams, err := s.rosterRepo.ListBySeason(ctx, year, division)
	if err != nil {
		return RevalidateResult{}, fmt.Errorf("list teams: %w", err)
	}
	entries, err := s.rosterRepo.ListEntriesBySeason(ctx, year, division)
	if err != nil {
		return RevalidateResult{}, fmt.Errorf("list roster entries: %w", err)
	}

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return RevalidateResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	rules := roster.RulesFor(division)
	result := RevalidateResult{TeamCount: len(teams)}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, team := range teams {
		team := team
		wg.Add(1)
		submitErr := workerPool.Submit(func() {
			defer wg.Done()

			names := make([]string, 0, len(entries[team.ID]))
			for _, e := range entries[team.ID] {
				names = append(names, e.RiderName)
			}

			verdict := roster.Validate(names, prices, rules)
			if verdict.IsValid == team.IsValid {
				return
			}

			if _, err := s.rosterRepo.SetValidity(ctx, team.ID, verdict.IsValid); err != nil {
				s.logger.WarnContext(ctx, "set team validity failed",
					"team_id", team.ID,
					"error", err,
				)
				mu.Lock()
				result.ErrorCount++
				mu.Unlock()
				return
			}

			mu.Lock()
			result.ChangedCount++
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			result.ErrorCount++
			mu.Unlock()
		}
	}
	wg.Wait()

	s.logger.InfoContext(ctx, "season revalidated",
		"year", year,
		"division", division,
		"team_count", result.TeamCount,
		"changed_count", result.ChangedCount,
		"error_count", result.ErrorCount,
	)

	return result, nil
}
