// notifyctl is the operator CLI for scheduling and repair tasks.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"quotecast/config"
	"quotecast/internal/infra/clock"
	logs "quotecast/internal/infra/log"
	"quotecast/internal/infra/persistence/postgres"
	"quotecast/internal/infra/push"
	"quotecast/internal/usecase"
	"quotecast/internal/usecase/impl"

	"github.com/google/uuid"
)

const usage = `Usage: notifyctl <command> [flags]

Commands:
  schedule        Run a scheduling pass (all users, or one with -user)
  clean-invalid   Delete deliveries with a null or pre-epoch scheduled_at
  cleanup-tokens  Remove device tokens the push provider reports invalid
`

type app struct {
	cfg           *config.Config
	logger        *slog.Logger
	schedulerUC   usecase.SchedulerUsecase
	maintenanceUC usecase.MaintenanceUsecase
	deviceUC      usecase.DeviceUsecase
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notifyctl: %v\n", err)
		os.Exit(1)
	}

	var runErr error
	switch os.Args[1] {
	case "schedule":
		runErr = a.runSchedule(ctx, os.Args[2:])
	case "clean-invalid":
		runErr = a.runCleanInvalid(ctx, os.Args[2:])
	case "cleanup-tokens":
		runErr = a.runCleanupTokens(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "notifyctl: %v\n", runErr)
		os.Exit(1)
	}
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := postgres.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	userRepo := postgres.NewUserRepository(db)
	deviceRepo := postgres.NewDeviceRepository(db)
	deliveryRepo := postgres.NewDeliveryRepository(db)

	pushSvc, err := push.New(push.Params{Ctx: ctx, Config: cfg, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to create push service: %w", err)
	}

	clk := clock.New()

	schedulerUC := impl.NewSchedulerService(userRepo, deliveryRepo, clk, logger, cfg.Scheduler.DefaultTimezone)

	return &app{
		cfg:           cfg,
		logger:        logger,
		schedulerUC:   schedulerUC,
		maintenanceUC: impl.NewMaintenanceService(deliveryRepo, schedulerUC, logger),
		deviceUC:      impl.NewDeviceService(deviceRepo, userRepo, pushSvc, clk, logger, cfg.Scheduler.DeviceScanBatchSize),
	}, nil
}

func (a *app) runSchedule(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	userFlag := fs.String("user", "", "schedule a single user by ID instead of all users")
	fs.Parse(args)

	if *userFlag != "" {
		userID, err := uuid.Parse(*userFlag)
		if err != nil {
			return fmt.Errorf("invalid user ID %q: %w", *userFlag, err)
		}

		created, err := a.schedulerUC.ScheduleForUser(ctx, userID)
		if err != nil {
			return err
		}
		fmt.Printf("created %d deliveries for user %s\n", created, userID)

		return nil
	}

	report, err := a.schedulerUC.ScheduleAll(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("processed %d users (%d failed), created %d deliveries\n",
		report.UsersProcessed, report.UsersFailed, report.DeliveriesCreated)

	return nil
}

func (a *app) runCleanInvalid(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clean-invalid", flag.ExitOnError)
	reprogram := fs.Bool("reprogram", false, "reschedule affected users after deletion")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args)

	invalid, err := a.maintenanceUC.FindInvalidDeliveries(ctx)
	if err != nil {
		return err
	}
	if len(invalid) == 0 {
		fmt.Println("no invalid deliveries found")

		return nil
	}

	fmt.Printf("found %d deliveries with a null or pre-epoch scheduled_at:\n", len(invalid))
	for _, delivery := range invalid {
		scheduled := "null"
		if delivery.ScheduledAt != nil {
			scheduled = delivery.ScheduledAt.String()
		}
		fmt.Printf("  %s  user=%s  status=%s  scheduled_at=%s\n",
			delivery.ID, delivery.UserID, delivery.Status, scheduled)
	}

	if !*yes && !confirm(fmt.Sprintf("delete these %d deliveries?", len(invalid))) {
		fmt.Println("aborted")

		return nil
	}

	report, err := a.maintenanceUC.CleanInvalidDeliveries(ctx, *reprogram)
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d deliveries affecting %d users\n", report.Deleted, len(report.AffectedUsers))
	if *reprogram {
		fmt.Printf("rescheduled %d deliveries\n", report.Rescheduled)
	}

	return nil
}

func (a *app) runCleanupTokens(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cleanup-tokens", flag.ExitOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args)

	if !*yes && !confirm("validate all device tokens and delete invalid ones?") {
		fmt.Println("aborted")

		return nil
	}

	removed, message, err := a.deviceUC.CleanupInvalidTokens(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (removed %d)\n", message, removed)

	return nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes"
}
