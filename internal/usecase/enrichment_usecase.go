package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
)

// EnrichmentUseCase - обогащение ближайших мест страницами из сервиса контента
type EnrichmentUseCase struct {
	proximity     *ProximityUseCase
	contentRepo   repository.ContentRepository
	observer      EnrichmentObserver
	logger        *zap.Logger
	concurrency   int
	lookupTimeout time.Duration
}

// NewEnrichmentUseCase создает новый EnrichmentUseCase.
// concurrency = 1 - строго последовательные запросы, по одному в полёте.
func NewEnrichmentUseCase(
	proximity *ProximityUseCase,
	contentRepo repository.ContentRepository,
	observer EnrichmentObserver,
	logger *zap.Logger,
	concurrency int,
	lookupTimeout time.Duration,
) *EnrichmentUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	if observer == nil {
		observer = NewLogObserver(logger)
	}
	return &EnrichmentUseCase{
		proximity:     proximity,
		contentRepo:   contentRepo,
		observer:      observer,
		logger:        logger,
		concurrency:   concurrency,
		lookupTimeout: lookupTimeout,
	}
}

// Enrich ищет страницы контента для мест в радиусе от seed, пока не наберёт maxResults
// или не закончатся кандидаты. Сбой отдельного запроса не прерывает обработку.
// При отмене ctx новые запросы не выполняются и возвращается частичный результат вместе с ctx.Err().
func (uc *EnrichmentUseCase) Enrich(
	ctx context.Context,
	seedID string,
	radiusMiles float64,
	maxResults int,
) (*domain.EnrichmentResult, error) {
	started := time.Now()
	result := &domain.EnrichmentResult{
		SeedID: seedID,
		Pages:  []domain.EnrichedPage{},
	}
	defer func() {
		uc.observer.ObserveRun(result, time.Since(started))
	}()

	if maxResults <= 0 {
		return result, nil
	}

	candidates := uniqueInOrder(uc.proximity.NearbyIDs(seedID, radiusMiles))
	result.Candidates = len(candidates)

	for start := 0; start < len(candidates) && len(result.Pages) < maxResults; {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		width := min(uc.concurrency, maxResults-len(result.Pages), len(candidates)-start)
		outcomes := uc.lookupBatch(ctx, candidates[start:start+width])
		start += width

		for _, outcome := range outcomes {
			if outcome.Status == domain.LookupFailed && ctx.Err() != nil {
				// отменено вызывающей стороной, а не сбой сервиса
				return result, ctx.Err()
			}

			result.Attempted++
			uc.observer.ObserveLookup(seedID, outcome)

			switch outcome.Status {
			case domain.LookupFound:
				result.Found++
				if len(result.Pages) < maxResults {
					result.Pages = append(result.Pages, *outcome.Page)
				}
			case domain.LookupNotFound:
				result.Missed++
			case domain.LookupFailed:
				result.Failed++
			}
		}
	}

	return result, nil
}

// lookupBatch выполняет запросы окна кандидатов; исходы возвращаются в порядке кандидатов
func (uc *EnrichmentUseCase) lookupBatch(ctx context.Context, ids []string) []domain.LookupOutcome {
	outcomes := make([]domain.LookupOutcome, len(ids))
	if len(ids) == 1 {
		outcomes[0] = uc.lookup(ctx, ids[0])
		return outcomes
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			outcomes[i] = uc.lookup(gctx, id)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (uc *EnrichmentUseCase) lookup(ctx context.Context, externalID string) domain.LookupOutcome {
	callCtx := ctx
	if uc.lookupTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, uc.lookupTimeout)
		defer cancel()
	}

	started := time.Now()
	page, err := uc.contentRepo.LookupPage(callCtx, externalID)
	outcome := domain.LookupOutcome{
		ExternalID: externalID,
		Elapsed:    time.Since(started),
	}

	switch {
	case err != nil:
		outcome.Status = domain.LookupFailed
		outcome.Err = err
	case page == nil:
		outcome.Status = domain.LookupNotFound
	default:
		cp := *page
		cp.ExternalID = externalID
		outcome.Status = domain.LookupFound
		outcome.Page = &cp
	}

	return outcome
}

func uniqueInOrder(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
