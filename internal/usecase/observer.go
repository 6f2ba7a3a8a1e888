package usecase

import (
	"time"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
)

// EnrichmentObserver получает итог каждого запроса к сервису контента
// и сводку по каждому запуску обогащения
type EnrichmentObserver interface {
	ObserveLookup(seedID string, outcome domain.LookupOutcome)
	ObserveRun(result *domain.EnrichmentResult, elapsed time.Duration)
}

// LogObserver пишет исходы запросов в zap
type LogObserver struct {
	logger *zap.Logger
}

func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) ObserveLookup(seedID string, outcome domain.LookupOutcome) {
	fields := []zap.Field{
		zap.String("seed_id", seedID),
		zap.String("external_id", outcome.ExternalID),
		zap.String("status", string(outcome.Status)),
		zap.Duration("elapsed", outcome.Elapsed),
	}

	if outcome.Status == domain.LookupFailed {
		o.logger.Warn("Page lookup failed, skipping candidate", append(fields, zap.Error(outcome.Err))...)
		return
	}
	o.logger.Debug("Page lookup finished", fields...)
}

func (o *LogObserver) ObserveRun(result *domain.EnrichmentResult, elapsed time.Duration) {
	o.logger.Info("Nearby enrichment finished",
		zap.String("seed_id", result.SeedID),
		zap.Int("candidates", result.Candidates),
		zap.Int("attempted", result.Attempted),
		zap.Int("found", result.Found),
		zap.Int("missed", result.Missed),
		zap.Int("failed", result.Failed),
		zap.Duration("elapsed", elapsed))
}

// MultiObserver рассылает события нескольким наблюдателям
type MultiObserver []EnrichmentObserver

func (m MultiObserver) ObserveLookup(seedID string, outcome domain.LookupOutcome) {
	for _, o := range m {
		o.ObserveLookup(seedID, outcome)
	}
}

func (m MultiObserver) ObserveRun(result *domain.EnrichmentResult, elapsed time.Duration) {
	for _, o := range m {
		o.ObserveRun(result, elapsed)
	}
}
