package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinetix/booking-engine/internal/booking"
	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/cinetix/booking-engine/internal/payment"
	"github.com/cinetix/booking-engine/internal/repository"
	appvalidator "github.com/cinetix/booking-engine/internal/validator"
	"github.com/cinetix/booking-engine/internal/vcs"
	"github.com/go-playground/validator/v10"
)

var (
	version = vcs.Version()
)

type application struct {
	config    config
	logger    *slog.Logger
	validator *validator.Validate

	showRepo domain.ShowRepository
	ledger   domain.TicketLedger
	engine   *booking.Engine
	payments domain.PaymentProcessor
}

type config struct {
	port    int
	env     string
	holdTTL time.Duration
}

func Run() error {
	var cfg config

	flag.IntVar(&cfg.port, "port", 3000, "server port")
	flag.StringVar(&cfg.env, "env", "dev", "Environment (dev|staging|prod)")
	flag.DurationVar(&cfg.holdTTL, "hold-ttl", booking.DefaultHoldTTL, "TTL of an unconfirmed seat hold")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	showRepo := repository.NewInMemoryShowRepository()
	ledger := repository.NewInMemoryTicketLedger()
	engine := booking.NewEngine(ledger, cfg.holdTTL, logger)

	app := &application{
		config:    cfg,
		logger:    logger,
		validator: appvalidator.NewValidator(),
		showRepo:  showRepo,
		ledger:    ledger,
		engine:    engine,
		payments:  payment.NewProcessor(logger),
	}

	if cfg.env == "dev" {
		if err := app.seedCatalog(context.Background()); err != nil {
			return err
		}
	}

	return app.run()
}

func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
