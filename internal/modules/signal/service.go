package signal

import (
	"context"
	"time"

	"github.com/aristath/tactical/internal/modules/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MetricsFetcher produces the metrics record for a symbol.
type MetricsFetcher interface {
	FetchMetrics(ctx context.Context, symbol string) (*metrics.StockMetrics, error)
}

// Service fetches metrics and applies the buy policy.
type Service struct {
	fetcher    MetricsFetcher
	thresholds Thresholds
	log        zerolog.Logger
	now        func() time.Time
}

// NewService creates a signal service using DefaultThresholds.
func NewService(fetcher MetricsFetcher, log zerolog.Logger) *Service {
	return &Service{
		fetcher:    fetcher,
		thresholds: DefaultThresholds(),
		log:        log.With().Str("service", "signal").Logger(),
		now:        time.Now,
	}
}

// Thresholds returns the policy in use.
func (s *Service) Thresholds() Thresholds {
	return s.thresholds
}

// Metrics fetches the metrics record without evaluating it.
func (s *Service) Metrics(ctx context.Context, symbol string) (*metrics.StockMetrics, error) {
	return s.fetcher.FetchMetrics(ctx, symbol)
}

// IsGoodTimeToBuy fetches metrics for symbol and evaluates them.
func (s *Service) IsGoodTimeToBuy(ctx context.Context, symbol string) (*Decision, error) {
	m, err := s.fetcher.FetchMetrics(ctx, symbol)
	if err != nil {
		return nil, err
	}

	decision := Evaluate(*m, s.thresholds)
	decision.ID = uuid.New().String()
	decision.EvaluatedAt = s.now().UTC()

	s.log.Info().
		Str("id", decision.ID).
		Str("symbol", symbol).
		Bool("good_time_to_buy", decision.GoodTimeToBuy).
		Bool("fundamentals", decision.Fundamentals).
		Bool("technicals", decision.Technicals).
		Strs("failed", decision.Failed).
		Msg("Signal evaluated")

	return &decision, nil
}
