package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/attendance-management/internal/activity"
	activityPostgres "github.com/frahmantamala/attendance-management/internal/activity/postgres"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Manage events: publish test events and inspect the activity log`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event through the event bus. Audited event types are written to the activity log.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := publishTestEvent(args[0]); err != nil {
			log.Fatal(err)
		}
	},
}

var (
	eventData       string
	eventEmployeeID int64
)

func publishTestEvent(eventType string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	lg := logger.Init(cfg.Observability.Logging)

	db, sqlDB, err := initDB(cfg.Database, cfg.Observability.Logging.Level)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	eventBus := events.NewEventBus(lg)
	activity.NewService(activityPostgres.NewActivityRepository(db), lg).RegisterEventHandlers(eventBus)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	testEvent := events.BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": eventData,
			"source":  "cli-command",
		},
	}
	if eventEmployeeID > 0 {
		testEvent.EmployeeID = &eventEmployeeID
	}

	lg.Info("publishing test event", "event_type", eventType, "event_id", testEvent.ID)

	if err := eventBus.PublishSync(context.Background(), testEvent); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	lg.Info("test event published successfully")
	return nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")
	publishEventCmd.Flags().Int64Var(&eventEmployeeID, "employee", 0, "Employee the event refers to")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
