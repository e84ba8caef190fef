package main

import (
	"log/slog"
	"time"

	"github.com/Jore52/Notificador-RSU/pkg/notification"
	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
)

// The binary runs one evaluation cycle over all instances and exits.
// Scheduling (e.g. a daily cron) is the responsibility of the deployment.
func main() {
	slog.Info("Starting notification checker job")
	start := time.Now()

	for _, instanceID := range conf.InstanceIDs {
		slog.Debug("Start checking notification conditions for instance", slog.String("instanceID", instanceID))
		counters := InitNotificationCounter()

		scheduler := notification.NewScheduler(
			historyStore{instanceID: instanceID},
			smtpBridgeClient,
		)

		outcomes, err := scheduler.EvaluateAll(projectSource{instanceID: instanceID})
		if err != nil {
			// without the project snapshot nothing can be evaluated,
			// the next scheduled run will retry
			slog.Error("Failed to run evaluation cycle", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
			continue
		}

		for _, outcome := range outcomes {
			counters.IncreaseCounter(outcome.Sent)
		}

		counters.Stop()
		slog.Info("Finished checking notification conditions for instance",
			slog.String("instanceID", instanceID),
			slog.Int64("duration", counters.Duration),
			slog.Int("success", counters.Success),
			slog.Int("failed", counters.Failed))
	}

	slog.Info("Notification checker job completed", slog.String("duration", time.Since(start).String()))
}

// projectSource adapts the project DB service to the scheduler's project
// source collaborator for one instance.
type projectSource struct {
	instanceID string
}

func (s projectSource) ListNotificationEnabledProjects() ([]types.Project, error) {
	return projectDBService.GetNotificationEnabledProjects(s.instanceID)
}

// historyStore adapts the messaging DB service to the scheduler's history
// collaborator for one instance.
type historyStore struct {
	instanceID string
}

func (h historyStore) HasSuccessfulSend(conditionID string) (bool, error) {
	return messagingDBService.HasSuccessfulSendForCondition(h.instanceID, conditionID)
}

func (h historyStore) Append(record types.SentEmail) error {
	_, err := messagingDBService.AddToSentEmails(h.instanceID, record)
	return err
}
