package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Takaroz/botboss/internal/catalog"
	"github.com/Takaroz/botboss/internal/config"
	"github.com/Takaroz/botboss/internal/domain"
	"github.com/Takaroz/botboss/internal/scanner"
	"github.com/Takaroz/botboss/internal/store"
	"github.com/Takaroz/botboss/internal/telegram"
	"github.com/Takaroz/botboss/internal/tracker"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	if cfg.AlertChatID == 0 {
		// Misconfigured sink is fatal at startup, not a per-alert surprise.
		return nil, errors.New("alert chat id not configured")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting botboss",
		zap.String("tz", a.cfg.Timezone),
		zap.Duration("scan_interval", a.cfg.ScanInterval),
		zap.Duration("alert_window", a.cfg.AlertWindow),
	)

	loc, err := time.LoadLocation(a.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", a.cfg.Timezone, err)
	}
	clock := domain.TZClock{Loc: loc}

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready", zap.String("path", a.cfg.DBPath))

	if a.cfg.CatalogPath != "" {
		cat, err := catalog.Load(a.cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if err := cat.Seed(ctx, repo, clock, a.log); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	svc := tracker.New(repo, clock, a.log)
	router := telegram.NewRouter(a.bot, a.log, svc)
	scan := scanner.New(repo, a.log, clock, router, a.cfg.AlertChatID,
		a.cfg.ScanInterval, a.cfg.AlertWindow)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		scan.Run(ctx)
		return nil
	})

	g.Go(func() error {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 30
		updCh := a.bot.GetUpdatesChan(u)
		for {
			select {
			case <-ctx.Done():
				a.bot.StopReceivingUpdates()
				return nil
			case upd := <-updCh:
				router.HandleUpdate(ctx, upd)
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("shutdown signal received")

		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpSrv.Shutdown(shCtx)
	})

	err = g.Wait()

	if a.repo != nil {
		_ = a.repo.Close()
	}
	return err
}
