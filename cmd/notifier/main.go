package main

import (
	"context"
	"log/slog"
	"os"

	"quotecast/config"
	"quotecast/internal/delivery"
	"quotecast/internal/delivery/cron"
	"quotecast/internal/delivery/worker"
	"quotecast/internal/delivery/worker/handler"
	"quotecast/internal/domain/repository"
	"quotecast/internal/domain/service"
	"quotecast/internal/infra/clock"
	logs "quotecast/internal/infra/log"
	"quotecast/internal/infra/persistence/postgres"
	"quotecast/internal/infra/push"
	"quotecast/internal/infra/redis"
	"quotecast/internal/infra/runlock"
	"quotecast/internal/usecase"
	"quotecast/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		redis.New,
		clock.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewDeviceRepository,
			postgres.NewContentRepository,
			postgres.NewDeliveryRepository,
			postgres.NewHistoryRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			push.New,
			runlock.New,
		),
	)
}

// newSchedulerService adapts config values into the scheduler constructor
func newSchedulerService(
	userRepo repository.UserRepository,
	deliveryRepo repository.DeliveryRepository,
	clk service.Clock,
	logger *slog.Logger,
	cfg *config.Config,
) usecase.SchedulerUsecase {
	return impl.NewSchedulerService(userRepo, deliveryRepo, clk, logger, cfg.Scheduler.DefaultTimezone)
}

// newDispatchService adapts config values into the dispatch constructor
func newDispatchService(
	deliveryRepo repository.DeliveryRepository,
	userRepo repository.UserRepository,
	deviceRepo repository.DeviceRepository,
	contentUC usecase.ContentUsecase,
	pushSvc service.PushService,
	txManager repository.TransactionManager,
	clk service.Clock,
	logger *slog.Logger,
	cfg *config.Config,
) usecase.DispatchUsecase {
	return impl.NewDispatchService(
		deliveryRepo,
		userRepo,
		deviceRepo,
		contentUC,
		pushSvc,
		txManager,
		clk,
		logger,
		cfg.Scheduler.DispatchBatchSize,
		cfg.Notification.Title,
	)
}

// newDeviceService adapts config values into the device service constructor
func newDeviceService(
	deviceRepo repository.DeviceRepository,
	userRepo repository.UserRepository,
	pushSvc service.PushService,
	clk service.Clock,
	logger *slog.Logger,
	cfg *config.Config,
) usecase.DeviceUsecase {
	return impl.NewDeviceService(deviceRepo, userRepo, pushSvc, clk, logger, cfg.Scheduler.DeviceScanBatchSize)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewContentService,
			newSchedulerService,
			newDispatchService,
			newDeviceService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				cron.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
