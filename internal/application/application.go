// Package application wires configuration, infrastructure and the long
// running modules together.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/mymmrac/telego"
	"golang.org/x/sync/errgroup"

	"cs_market/internal/config"
	"cs_market/internal/domain/entity"
	"cs_market/internal/domain/service/pricing"
	"cs_market/internal/infrastructure/csfloat"
	"cs_market/internal/infrastructure/empire"
	"cs_market/internal/infrastructure/notifier"
	"cs_market/internal/infrastructure/persistence"
	"cs_market/internal/infrastructure/steam"
	"cs_market/internal/server"
	"cs_market/internal/tasks"
	"cs_market/internal/transport/bot"
	"cs_market/internal/transport/bot/handler"
	"cs_market/internal/worker"
	"cs_market/pkg/application/connectors"
	"cs_market/pkg/application/modules"
	"cs_market/pkg/contextx"
	"cs_market/pkg/logx"
	"cs_market/pkg/middlewarex"
)

const (
	appName    = "cs-market"
	appVersion = "1.0.0"

	alertBuffer     = 100
	disputeDedupTTL = time.Hour
)

func Run(ctx context.Context, log *slog.Logger) error { //nolint:funlen
	ctx = contextx.WithLogger(ctx, log)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	rd := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	redisClient := rd.Client(ctx)
	defer rd.Close(ctx)

	itemRepo := persistence.NewItemRepository(db)
	sellerRepo := persistence.NewSellerRepository(db)
	purchaseRepo := persistence.NewPurchaseRepository(db)

	empireClient := empire.NewClient(cfg.Empire, cfg.Ops.LogFieldMaxLen)
	steamClient := steam.NewClient(cfg.Steam, cfg.Ops.LogFieldMaxLen)
	floatClient := csfloat.NewClient(cfg.CSFloat, cfg.Ops.LogFieldMaxLen)

	calc, err := pricing.NewCalculator(cfg.CSFloat.Divider)
	if err != nil {
		return fmt.Errorf("pricing.NewCalculator: %w", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	})
	defer asynqClient.Close()

	queue := tasks.NewEnqueuer(asynqClient)
	taskHandler := tasks.NewHandler(purchaseRepo, sellerRepo, itemRepo)

	tgBot, err := telego.NewBot(cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("telego.NewBot: %w", err)
	}

	alerts := make(chan entity.Alert, alertBuffer)
	alertBot := notifier.NewTelegramBot(tgBot, cfg.Bot.ChatID)

	adminBot, err := bot.New(ctx, tgBot, cfg.Bot.AdminID, handler.New(purchaseRepo, itemRepo))
	if err != nil {
		return fmt.Errorf("bot.New: %w", err)
	}

	reconciler := worker.NewReconciler(
		empireClient,
		steamClient,
		queue,
		worker.NewRedisDeduper(redisClient, disputeDedupTTL),
		calc,
		alerts,
	).WithPollInterval(cfg.Empire.PollInterval, cfg.Empire.PollJitter)

	refresher := worker.NewPriceRefresher(itemRepo, floatClient, calc).
		WithSchedule(cfg.CSFloat.RefreshInterval, cfg.CSFloat.BatchSize, cfg.CSFloat.BatchPause)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.Ops.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:              cfg.Ops.APIListenAddress,
		Handler:           newRouter(cfg, purchaseRepo, sellerRepo, itemRepo),
		ReadHeaderTimeout: 10 * time.Second,
	})

	modules.ProbeServer{
		Name:          appName,
		Version:       appVersion,
		ListenAddress: cfg.Ops.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.Ops.MetricsListenAddress}.Run(ctx, g)

	modules.AsynqServer{
		RedisAddress:  cfg.Redis.Address,
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g, modules.AsynqQueues{tasks.QueuePersist: 1}, taskHandler.Handlers()...)

	g.Go(func() error {
		defer close(alerts)
		return reconciler.Run(ctx)
	})

	g.Go(func() error {
		return refresher.Run(ctx)
	})

	g.Go(func() error {
		return alertBot.Run(ctx, alerts)
	})

	g.Go(func() error {
		return adminBot.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func newRouter(
	cfg config.Config,
	purchaseRepo *persistence.PurchaseRepository,
	sellerRepo *persistence.SellerRepository,
	itemRepo *persistence.ItemRepository,
) chi.Router {
	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, cfg.Ops.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.Ops.LogFieldMaxLen),
	)

	server.NewServer(
		server.NewMarketServer(purchaseRepo, sellerRepo, itemRepo),
	).RegisterRoutes(router)

	return router
}
