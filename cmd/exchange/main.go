// Command exchange runs the VFX Specs Exchange API: CRUD for specification
// and template records, logo processing, and PDF/DOCX document export.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vfxspecs/exchange/api"
	"github.com/vfxspecs/exchange/internal/config"
	"github.com/vfxspecs/exchange/internal/store"
	"github.com/vfxspecs/exchange/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "exchange.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Logger is not configured yet; stderr is all we have.
		os.Stderr.WriteString("exchange: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := telemetry.New(os.Stdout, "exchange", telemetry.ParseLevel(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "store_open_failed", map[string]any{"driver": cfg.DB.Driver, "err": err.Error()})
		os.Exit(1)
	}
	defer st.Close()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(st, log, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting", map[string]any{"addr": cfg.Addr, "driver": cfg.DB.Driver})
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn(ctx, "shutdown_incomplete", map[string]any{"err": err.Error()})
		}
		log.Info(ctx, "stopped", nil)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "listen_failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.DB.Driver == "postgres" {
		return store.OpenPostgres(ctx, cfg.DB.DSN)
	}
	return store.OpenSQLite(ctx, cfg.DB.DSN)
}
