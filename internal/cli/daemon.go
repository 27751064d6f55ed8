package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KenRoach/kitzV1-sub005/internal/bus"
	"github.com/KenRoach/kitzV1-sub005/internal/config"
	"github.com/KenRoach/kitzV1-sub005/internal/event"
	"github.com/KenRoach/kitzV1-sub005/internal/ledger"
	"github.com/KenRoach/kitzV1-sub005/internal/middleware"
	"github.com/KenRoach/kitzV1-sub005/internal/sweep"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the coordination kernel until interrupted",
	RunE:  runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	led, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer led.Close()

	acks := middleware.NewPendingAcks(time.Duration(cfg.Ack.WindowMinutes) * time.Minute)
	warRoom := middleware.NewWarRoom(
		time.Duration(cfg.WarRoom.WindowMinutes)*time.Minute,
		cfg.WarRoom.Threshold,
	)

	b := bus.New(led)
	// Registration order is execution order: hops must exist before the TTL
	// check and the router see them.
	b.Use(middleware.NewAckTracker(acks))
	b.Use(middleware.NewHopTracker())
	b.Use(middleware.NewTTLEnforcer())
	b.Use(middleware.NewMessageRouter())
	b.Use(middleware.NewWarRoomActivator(warRoom))

	b.Subscribe(event.TypeWildcard, func(ctx context.Context, e *event.Event) error {
		if triggered, _ := e.Payload[event.KeyWarRoomTriggered].(bool); triggered {
			slog.Warn("war room activated", "id", e.ID, "type", e.Type, "source", e.Source)
		}
		return nil
	})
	b.Subscribe(event.TypeSwarmHandoff, func(ctx context.Context, e *event.Event) error {
		slog.Info("swarm handoff", "id", e.ID, "source", e.Source)
		return nil
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := sweep.New(b, acks, time.Duration(cfg.Sweep.IntervalSeconds)*time.Second)
	go func() {
		if err := sweeper.Start(ctx); err != nil && ctx.Err() == nil {
			slog.Error("ack sweeper stopped", "error", err)
		}
	}()

	slog.Info("kitz kernel running", "ledger", cfg.Ledger.Backend)
	<-ctx.Done()
	slog.Info("kitz kernel shutting down")
	return nil
}

func openLedger(cfg config.Config) (ledger.Ledger, error) {
	switch cfg.Ledger.Backend {
	case "file":
		return ledger.NewFileLedger(cfg.Ledger.Dir)
	case "sqlite":
		return ledger.NewSQLiteLedger(cfg.Ledger.DBPath)
	case "remote":
		return ledger.NewRemote(), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend: %s", cfg.Ledger.Backend)
	}
}
