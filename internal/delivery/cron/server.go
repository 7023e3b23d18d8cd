// Package cron runs the periodic scheduling and dispatch trigger.
package cron

import (
	"context"
	"log/slog"

	"quotecast/config"
	"quotecast/internal/delivery"
	"quotecast/internal/domain/service"
	"quotecast/internal/errors"
	"quotecast/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// Run-lock names shared by every notifier instance.
const (
	triggerLockName = "notifier-trigger"
	cleanupLockName = "token-cleanup"
)

// ServerParams holds dependencies for the cron runner
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	SchedulerUC usecase.SchedulerUsecase
	DispatchUC  usecase.DispatchUsecase
	DeviceUC    usecase.DeviceUsecase
	RunLock     service.RunLock
}

type cronServer struct {
	cfg         *config.Config
	logger      *slog.Logger
	runner      *cron.Cron
	schedulerUC usecase.SchedulerUsecase
	dispatchUC  usecase.DispatchUsecase
	deviceUC    usecase.DeviceUsecase
	runLock     service.RunLock
	done        chan struct{}
}

// NewServer creates the cron runner with its trigger and cleanup jobs
// registered.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &cronServer{
		cfg:         params.Cfg,
		logger:      params.Logger,
		runner:      cron.New(),
		schedulerUC: params.SchedulerUC,
		dispatchUC:  params.DispatchUC,
		deviceUC:    params.DeviceUC,
		runLock:     params.RunLock,
		done:        make(chan struct{}),
	}

	if _, err := srv.runner.AddFunc(params.Cfg.Scheduler.CronSpec, srv.runTrigger); err != nil {
		return nil, errors.Wrap(err, "failed to register trigger job")
	}
	if _, err := srv.runner.AddFunc(params.Cfg.Scheduler.TokenCleanupSpec, srv.runTokenCleanup); err != nil {
		return nil, errors.Wrap(err, "failed to register token cleanup job")
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve starts the cron runner and blocks until shutdown.
func (s *cronServer) Serve(ctx context.Context) error {
	s.logger.Info("Starting cron runner",
		slog.String("triggerSpec", s.cfg.Scheduler.CronSpec),
		slog.String("cleanupSpec", s.cfg.Scheduler.TokenCleanupSpec),
	)
	s.runner.Start()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return nil
	}
}

func (s *cronServer) stop(ctx context.Context) error {
	s.logger.Info("Stopping cron runner")

	stopCtx := s.runner.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	close(s.done)

	return nil
}

// runTrigger executes one schedule-then-dispatch cycle under the shared
// run-lock. Losing the lock means another instance is mid-cycle.
func (s *cronServer) runTrigger() {
	ctx := context.Background()

	acquired, err := s.runLock.Acquire(ctx, triggerLockName, s.cfg.Scheduler.LockTTL)
	if err != nil {
		s.logger.Error("Failed to acquire trigger lock", slog.Any("error", err))

		return
	}
	if !acquired {
		return
	}
	defer func() {
		if err := s.runLock.Release(ctx, triggerLockName); err != nil {
			s.logger.Error("Failed to release trigger lock", slog.Any("error", err))
		}
	}()

	scheduleReport, err := s.schedulerUC.ScheduleAll(ctx)
	if err != nil {
		s.logger.Error("Scheduling pass failed", slog.Any("error", err))
	} else {
		s.logger.Info("Scheduling pass finished",
			slog.Int("usersProcessed", scheduleReport.UsersProcessed),
			slog.Int("usersFailed", scheduleReport.UsersFailed),
			slog.Int("deliveriesCreated", scheduleReport.DeliveriesCreated),
		)
	}

	summary, err := s.dispatchUC.DispatchDue(ctx)
	if err != nil {
		s.logger.Error("Dispatch cycle failed", slog.Any("error", err))

		return
	}
	s.logger.Info("Dispatch cycle finished",
		slog.Int("processed", summary.Processed),
		slog.Int("sent", summary.Sent),
		slog.Int("failed", summary.Failed),
		slog.Int("skipped", summary.Skipped),
	)
}

// runTokenCleanup sweeps invalid device tokens once a day.
func (s *cronServer) runTokenCleanup() {
	ctx := context.Background()

	acquired, err := s.runLock.Acquire(ctx, cleanupLockName, s.cfg.Scheduler.LockTTL)
	if err != nil {
		s.logger.Error("Failed to acquire cleanup lock", slog.Any("error", err))

		return
	}
	if !acquired {
		return
	}
	defer func() {
		if err := s.runLock.Release(ctx, cleanupLockName); err != nil {
			s.logger.Error("Failed to release cleanup lock", slog.Any("error", err))
		}
	}()

	removed, message, err := s.deviceUC.CleanupInvalidTokens(ctx)
	if err != nil {
		s.logger.Error("Token cleanup failed", slog.Any("error", err))

		return
	}
	s.logger.Info("Token cleanup finished",
		slog.Int64("removed", removed),
		slog.String("message", message),
	)
}
