package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aristath/tactical/internal/clients/alphavantage"
	"github.com/aristath/tactical/internal/config"
	"github.com/aristath/tactical/internal/modules/metrics"
	tsignal "github.com/aristath/tactical/internal/modules/signal"
	"github.com/aristath/tactical/internal/scheduler"
	"github.com/aristath/tactical/internal/server"
	"github.com/aristath/tactical/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"
)

// deps bundles what every command needs
type deps struct {
	cfg     *config.Config
	log     zerolog.Logger
	client  *alphavantage.Client
	service *tsignal.Service
}

func setup(c *cli.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.LogLevel
	if l := c.GlobalString("log-level"); l != "" {
		level = l
	}
	log := logger.New(logger.Config{
		Level:  level,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	client := alphavantage.NewClient(cfg.AlphaVantage.APIKey, log, cfg.AlphaVantage.ClientOptions()...)
	fetcher := metrics.NewFetcher(client, log)

	return &deps{
		cfg:     cfg,
		log:     log,
		client:  client,
		service: tsignal.NewService(fetcher, log),
	}, nil
}

func symbolArg(c *cli.Context, fallback string) string {
	if s := strings.TrimSpace(c.Args().First()); s != "" {
		return strings.ToUpper(s)
	}
	return fallback
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func checkAction(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	ctx, cancel := signalContext()
	defer cancel()

	symbol := symbolArg(c, rt.cfg.Symbol)
	if err := runCheck(ctx, os.Stdout, rt.service, symbol); err != nil {
		rt.log.Error().Err(err).Str("symbol", symbol).Msg("Evaluation failed")
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

// runCheck evaluates one symbol and prints the two result lines
func runCheck(ctx context.Context, out io.Writer, evaluator scheduler.Evaluator, symbol string) error {
	decision, err := evaluator.IsGoodTimeToBuy(ctx, symbol)
	if err != nil {
		return err
	}

	answer := "No"
	if decision.GoodTimeToBuy {
		answer = "Yes"
	}

	if _, err := fmt.Fprintf(out, "Is it a good time to buy %s? %s\n", symbol, answer); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Stock Data: %s\n", decision.Metrics.String())
	return err
}

func serveAction(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	port := rt.cfg.Port
	if p := c.Int("port"); p > 0 {
		port = p
	}

	srv := server.New(server.Config{
		Log:           rt.log,
		Port:          port,
		DevMode:       rt.cfg.DevMode,
		Version:       version,
		SignalService: rt.service,
		Quota:         rt.client,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, cancel := signalContext()
	defer cancel()

	select {
	case err := <-errCh:
		if err != nil {
			rt.log.Error().Err(err).Msg("HTTP server failed")
			return cli.NewExitError(err.Error(), 1)
		}
		return nil
	case <-ctx.Done():
	}

	rt.log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		rt.log.Error().Err(err).Msg("Server forced to shutdown")
	}

	rt.log.Info().Msg("Server stopped")
	return nil
}

func watchAction(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	schedule := rt.cfg.Schedule
	if s := c.String("schedule"); s != "" {
		schedule = s
	}

	job := scheduler.NewEvaluateSymbolJob(scheduler.EvaluateSymbolConfig{
		Log:       rt.log,
		Evaluator: rt.service,
		Symbol:    symbolArg(c, rt.cfg.Symbol),
	})

	sched := scheduler.New(rt.log)
	if err := sched.AddJob(schedule, job); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	if c.Bool("now") {
		if err := sched.RunNow(job); err != nil {
			rt.log.Error().Err(err).Str("job", job.Name()).Msg("Immediate run failed")
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	sched.Start()
	<-ctx.Done()
	sched.Stop()

	return nil
}
