package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ReedRawlings/moodlet/internal/api"
	"github.com/ReedRawlings/moodlet/internal/app/checkin"
	"github.com/ReedRawlings/moodlet/internal/app/reminder"
	"github.com/ReedRawlings/moodlet/internal/app/shop"
	"github.com/ReedRawlings/moodlet/internal/domain"
	_ "github.com/ReedRawlings/moodlet/internal/infra/metrics" // Register Prometheus metrics
	"github.com/ReedRawlings/moodlet/internal/infra/sqlite"
)

// Daemon is the core Moodlet runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Checkin *checkin.Service
	Server  *api.Server
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(moodletHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := shop.SyncCatalog(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sync catalog: %w", err)
	}

	// Premium comes from config; the profile mirrors it so the shop rules
	// see the current entitlement.
	profile, err := db.LoadProfile()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile.IsPremium != cfg.Profile.Premium {
		profile.IsPremium = cfg.Profile.Premium
		if err := db.SaveProfile(profile); err != nil {
			db.Close()
			return nil, fmt.Errorf("save profile: %w", err)
		}
	}

	clock := domain.SystemClock{}
	svc := checkin.NewService(db, db, clock)

	policy := reminder.Policy{
		MaxPerDay:  cfg.Reminders.MaxPerDay,
		QuietStart: cfg.Reminders.QuietStart,
		QuietEnd:   cfg.Reminders.QuietEnd,
	}
	if policy.MaxPerDay == 0 {
		policy = reminder.DefaultPolicy()
	}

	srv := api.NewServer(db, svc, clock, policy)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Checkin: svc,
		Server:  srv,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[daemon] shutdown: %v", err)
		}
		_ = d.DB.Close()
	}()

	fmt.Printf("Moodlet serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
