package main

import (
	"context"
	"log/slog"
	"os"

	"quotecast/config"
	"quotecast/internal/delivery"
	"quotecast/internal/delivery/http"
	httpmiddleware "quotecast/internal/delivery/http/middleware"
	"quotecast/internal/delivery/http/router/handler"
	"quotecast/internal/domain/repository"
	"quotecast/internal/domain/service"
	"quotecast/internal/infra/clock"
	logs "quotecast/internal/infra/log"
	"quotecast/internal/infra/persistence/postgres"
	"quotecast/internal/infra/pubsub"
	"quotecast/internal/infra/push"
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
		injectMiddleware(),
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
		clock.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewDeviceRepository,
			postgres.NewDeliveryRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			push.New,
			pubsub.NewEventPublisher,
		),
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
			newDeviceService,
			impl.NewPreferenceService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewDeviceHandler,
			handler.NewPreferenceHandler,
			handler.NewDeliveryHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
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
