package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	appmatches "github.com/preston-bernstein/live-scores-service/internal/app/matches"
	"github.com/preston-bernstein/live-scores-service/internal/config"
	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	httpserver "github.com/preston-bernstein/live-scores-service/internal/http"
	"github.com/preston-bernstein/live-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/live-scores-service/internal/http/middleware"
	"github.com/preston-bernstein/live-scores-service/internal/logging"
	"github.com/preston-bernstein/live-scores-service/internal/metrics"
	"github.com/preston-bernstein/live-scores-service/internal/presentation"
	"github.com/preston-bernstein/live-scores-service/internal/scheduler"
	"github.com/preston-bernstein/live-scores-service/internal/seed"
	"github.com/preston-bernstein/live-scores-service/internal/simulator"
	"github.com/preston-bernstein/live-scores-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	service       *appmatches.Service
	simulator     *simulator.Simulator
	highlighter   *presentation.Highlighter
	hub           *presentation.Hub
	httpServer    httpServer
	metricsServer httpServer
	scheduler     Scheduler
	metricsStop   func(context.Context) error
}

// New loads the seed and wires the simulator, scheduler and HTTP surfaces.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	list, err := seed.Load(cfg.Simulation.SeedFile, logger)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	return newServerWithMetrics(cfg, logger, list, nil, nil), nil
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, list []matches.Match, rnd simulator.RandomSource, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	if rnd == nil {
		rnd = simulator.DefaultSource()
	}

	memoryStore := store.NewMemoryStore(list)
	svc := appmatches.NewService(memoryStore)
	highlighter := presentation.NewHighlighter(cfg.Simulation.Highlight)
	hub := presentation.NewHub(memoryStore.ListMatches, highlighter.Duration(), logger)

	sim := simulator.New(memoryStore, rnd, presentation.Fanout{highlighter, hub}, logger, recorder)
	sched := scheduler.New(scheduler.TaskFunc(func(ctx context.Context) error {
		_, err := sim.AdvanceRandomMatch(ctx)
		return err
	}), rnd, logger, recorder, cfg.Simulation.MinDelay, cfg.Simulation.MaxDelay)

	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(svc, list, cfg.AdminToken, logger, highlighter, hub)
	}
	handler := handlers.NewHandler(svc, highlighter, logger, sched.Status)
	httpSrv := buildHTTPServer(cfg, httpserver.NewRouter(handler, hub, admin, logger), logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		service:       svc,
		simulator:     sim,
		highlighter:   highlighter,
		hub:           hub,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		scheduler:     sched,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *appmatches.Service, httpSrv httpServer, sched Scheduler) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
		scheduler:  sched,
	}
}

func buildHTTPServer(cfg config.Config, router http.Handler, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the servers and the score scheduler, then waits for ctx to be
// cancelled (or the HTTP server to fail) and shuts everything down. The
// returned error is the HTTP server's listen failure, if any.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) error {
	g, gctx := errgroup.WithContext(ctx)

	if s.metricsServer != nil {
		logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
		g.Go(func() error {
			// A broken metrics listener does not take the service down.
			_ = serve("metrics", s.metricsServer, s.logger)
			return nil
		})
	}

	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	g.Go(func() error {
		err := serve("http", s.httpServer, s.logger)
		if err != nil && stop != nil {
			stop()
		}
		return err
	})

	s.scheduler.Start(gctx)

	g.Go(func() error {
		<-gctx.Done()
		logging.Info(s.logger, "shutdown signal received")
		s.gracefulShutdown()
		return nil
	})

	return g.Wait()
}

func serve(name string, srv httpServer, logger *slog.Logger) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Warn(logger, name+" server failed", "error", err)
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.scheduler.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop scheduler", err)
	}

	// Hijacked websocket connections are not covered by http.Server.Shutdown.
	if s.hub != nil {
		s.hub.Close()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
