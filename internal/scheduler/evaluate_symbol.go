package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aristath/tactical/internal/modules/signal"
	"github.com/rs/zerolog"
)

// DefaultEvaluateTimeout bounds one scheduled evaluation
const DefaultEvaluateTimeout = 2 * time.Minute

// Evaluator produces a buy decision for a symbol
type Evaluator interface {
	IsGoodTimeToBuy(ctx context.Context, symbol string) (*signal.Decision, error)
}

// EvaluateSymbolJob re-evaluates one symbol and logs the decision.
// Nothing is stored; the log line is the record.
type EvaluateSymbolJob struct {
	log       zerolog.Logger
	evaluator Evaluator
	symbol    string
	timeout   time.Duration

	mu   sync.Mutex
	last *signal.Decision
}

// EvaluateSymbolConfig holds configuration for the evaluate job
type EvaluateSymbolConfig struct {
	Log       zerolog.Logger
	Evaluator Evaluator
	Symbol    string
	Timeout   time.Duration
}

// NewEvaluateSymbolJob creates a new evaluate job
func NewEvaluateSymbolJob(cfg EvaluateSymbolConfig) *EvaluateSymbolJob {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultEvaluateTimeout
	}

	symbol := strings.ToUpper(strings.TrimSpace(cfg.Symbol))

	return &EvaluateSymbolJob{
		log:       cfg.Log.With().Str("job", "evaluate_symbol").Str("symbol", symbol).Logger(),
		evaluator: cfg.Evaluator,
		symbol:    symbol,
		timeout:   timeout,
	}
}

// Name returns the job name
func (j *EvaluateSymbolJob) Name() string {
	return "evaluate_" + strings.ToLower(j.symbol)
}

// Run executes one evaluation
func (j *EvaluateSymbolJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	decision, err := j.evaluator.IsGoodTimeToBuy(ctx, j.symbol)
	if err != nil {
		return fmt.Errorf("failed to evaluate %s: %w", j.symbol, err)
	}

	j.mu.Lock()
	j.last = decision
	j.mu.Unlock()

	j.log.Info().
		Str("decision_id", decision.ID).
		Bool("good_time_to_buy", decision.GoodTimeToBuy).
		Strs("failed", decision.Failed).
		Float64("rsi", decision.Metrics.RSI).
		Float64("recent_performance", decision.Metrics.RecentPerformance).
		Msg("Scheduled evaluation")

	return nil
}

// LastDecision returns the decision from the most recent successful run
func (j *EvaluateSymbolJob) LastDecision() *signal.Decision {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last
}
