package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/viewer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"go.uber.org/zap"
)

type rootOptions struct {
	configFile string
	debug      bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "boids",
		Short:         "Boids flocking inside a walled volume",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "flock config file (.json, .yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "verbose development logging")

	cmd.AddCommand(newRunCmd(opts), newViewCmd(opts))
	return cmd
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	if o.debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (o *rootOptions) config() (simulation.Config, error) {
	if o.configFile == "" {
		return *simulation.DefaultConfig(), nil
	}
	cfg, err := simulation.LoadConfig(o.configFile)
	if err != nil {
		return simulation.Config{}, err
	}
	return *cfg, nil
}

func (o *rootOptions) actorLogger() golog.Logger {
	if o.debug {
		return golog.DefaultLogger
	}
	return golog.DiscardLogger
}

func (o *rootOptions) startSystem(ctx context.Context, name string) (actor.ActorSystem, error) {
	system, err := actor.NewActorSystem(name, actor.WithLogger(o.actorLogger()))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}
	return system, nil
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		ticks       int
		metricsAddr string
		trace       int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the flock headless for a number of ticks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger, err := opts.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := opts.config()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			if metricsAddr != "" {
				srv := &http.Server{Addr: metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server failed", zap.Error(err))
					}
				}()
				defer func() { _ = srv.Shutdown(context.Background()) }()
				logger.Info("serving metrics", zap.String("addr", metricsAddr))
			}

			flock, err := simulation.NewFlock(cfg,
				simulation.WithLogger(logger),
				simulation.WithMetrics(simulation.NewMetrics(reg)))
			if err != nil {
				return err
			}
			if trace >= flock.Len() {
				return fmt.Errorf("--trace %d: flock has only %d boids", trace, flock.Len())
			}

			system, err := opts.startSystem(ctx, "FlockRun")
			if err != nil {
				return err
			}
			// one snapshot per tick keeps the sender in lock step with the actor
			snapshotCh := make(chan *simulation.Snapshot, 1)
			pid, err := simulation.SpawnFlock(ctx, system, flock, snapshotCh)
			if err != nil {
				_ = system.Stop(ctx)
				return err
			}

			start := time.Now()
			var last *simulation.Snapshot
		loop:
			for i := 0; i < ticks; i++ {
				if err := actor.Tell(ctx, pid, simulation.NewTick(0)); err != nil {
					_ = system.Stop(context.Background())
					return fmt.Errorf("tick %d: %w", i, err)
				}
				select {
				case last = <-snapshotCh:
				case <-ctx.Done():
					logger.Warn("interrupted", zap.Int("ticks", i))
					break loop
				}
			}
			elapsed := time.Since(start)
			if err := system.Stop(context.Background()); err != nil {
				return fmt.Errorf("failed to stop actor system: %w", err)
			}

			if last == nil {
				last = flock.Snapshot()
			}
			hw, hh := cfg.HalfExtent()
			logger.Info("run finished",
				zap.Uint64("ticks", last.Tick),
				zap.Int("boids", len(last.Boids)),
				zap.Duration("elapsed", elapsed),
				zap.Stringer("centreOfMass", last.CentreOfMass),
				zap.Float64("halfWidth", hw),
				zap.Float64("halfHeight", hh))

			if trace >= 0 {
				feet, err := flock.WallFootPoints(trace)
				if err != nil {
					return err
				}
				b := flock.Boid(trace)
				logger.Info("boid trace",
					zap.Int("boid", trace),
					zap.Stringer("position", b.Position),
					zap.Stringer("velocity", b.Velocity),
					zap.Stringer("top", feet[0]),
					zap.Stringer("bottom", feet[1]),
					zap.Stringer("left", feet[2]),
					zap.Stringer("right", feet[3]))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&ticks, "ticks", "n", 1000, "number of ticks to simulate")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")
	cmd.Flags().IntVar(&trace, "trace", -1, "log position and wall foot points of this boid at the end")
	return cmd
}

func newViewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open a window showing the flock",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger, err := opts.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := opts.config()
			if err != nil {
				return err
			}
			system, err := opts.startSystem(ctx, "FlockView")
			if err != nil {
				return err
			}
			defer func() { _ = system.Stop(context.Background()) }()

			game, err := viewer.NewGame(ctx, cfg, system, logger)
			if err != nil {
				return err
			}
			w, h := game.Layout(0, 0)
			ebiten.SetWindowSize(w, h)
			ebiten.SetWindowTitle("Boids in a Volume")
			return ebiten.RunGame(game)
		},
	}
}
