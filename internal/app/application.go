package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/egisf/egisf/internal/gate"
	"github.com/egisf/egisf/internal/ledger"
	"github.com/egisf/egisf/internal/logging"
	"github.com/egisf/egisf/internal/notify"
	"github.com/egisf/egisf/internal/portfolio"
	"github.com/egisf/egisf/internal/webclient"
)

// Application is the global runtime state container. It holds config and
// the services shared across the API and CLI and owns the HTTP listener
// lifecycle.
type Application struct {
	Config    *Config
	Logger    logging.Logger
	Orch      *Orchestrator
	Decisions *DecisionDesk
	Portfolio *portfolio.Portfolio

	ledger *ledger.Ledger
	client webclient.WebClient

	mu       sync.Mutex
	httpSrv  *http.Server
	listener net.Listener
	closed   bool
}

// NewApplication builds every service from cfg. The ledger is opened under
// cfg.StorageRoot.
func NewApplication(cfg *Config, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client, err := webclient.NewWebClient(webClientConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("creating web client: %w", err)
	}

	path, err := cfg.LedgerPath()
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	led, err := ledger.Open(path, logger)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	pf, err := portfolio.Load()
	if err != nil {
		_ = led.Close()
		_ = client.Close()
		return nil, fmt.Errorf("loading portfolio: %w", err)
	}

	dispatcher := notify.NewDispatcher(cfg.Webhook, client, logger)
	orch := NewOrchestrator(gate.NewEvaluator(cfg.Gate), dispatcher, led, logger)

	if !dispatcher.Enabled() {
		logger.Warn("no webhook configured; decisions are recorded locally only")
	}

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Orch:      orch,
		Decisions: NewDecisionDesk(pf, led, logger),
		Portfolio: pf,
		ledger:    led,
		client:    client,
	}, nil
}

// webClientConfig returns the client settings used for webhook delivery. The
// client timeout is raised to the webhook timeout so that webhook.timeout is
// the bound that applies.
func webClientConfig(cfg *Config) webclient.Config {
	wc := cfg.WebClient
	if cfg.Webhook.Timeout > wc.Timeout {
		wc.Timeout = cfg.Webhook.Timeout
	}
	return wc
}

// Start serves handler on Config.Server.Addr and blocks until the listener
// stops. It returns nil after a graceful Shutdown and http.ErrServerClosed
// when Shutdown ran before Start.
func (a *Application) Start(handler http.Handler) error {
	if a == nil {
		return errors.New("application is nil")
	}
	if a.isClosed() {
		return http.ErrServerClosed
	}

	ln, err := net.Listen("tcp", a.Config.Server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.Config.Server.Addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		_ = ln.Close()
		return http.ErrServerClosed
	}
	a.httpSrv = srv
	a.listener = ln
	a.mu.Unlock()

	a.Logger.Info("application starting", logging.Field{Key: "addr", Value: ln.Addr().String()})

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http: %w", err)
	}
	return nil
}

func (a *Application) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// Addr returns the bound listen address once Start is running.
func (a *Application) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Shutdown stops the HTTP server, then releases the ledger and web client.
// The server drain is bounded by Config.Server.ShutdownTimeout.
func (a *Application) Shutdown(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application shutdown initiated")

	timeout := a.Config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	srv := a.httpSrv
	a.mu.Unlock()
	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}

	if a.ledger != nil {
		if err := a.ledger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing ledger: %w", err))
		}
	}
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing web client: %w", err))
		}
	}
	return errors.Join(errs...)
}
