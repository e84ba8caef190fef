package notification

import (
	"errors"
	"log/slog"
	"time"

	"github.com/Jore52/Notificador-RSU/pkg/notification/deadline"
	"github.com/Jore52/Notificador-RSU/pkg/notification/templates"
	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
)

// ErrAlreadyRecorded is returned by a HistoryStore append when another
// evaluation cycle already recorded a successful send for the same condition.
var ErrAlreadyRecorded = errors.New("successful send already recorded for condition")

// ProjectSource delivers a consistent snapshot of the projects to evaluate.
type ProjectSource interface {
	ListNotificationEnabledProjects() ([]types.Project, error)
}

// MailSender delivers one email. Retry policy is the sender's concern.
type MailSender interface {
	Send(to string, subject string, body string, attachments []string) error
}

// HistoryStore is the append-only ledger of send attempts. Appending a second
// successful record for a ONCE condition must fail with ErrAlreadyRecorded, so
// that concurrent cycles cannot both claim a send.
type HistoryStore interface {
	HasSuccessfulSend(conditionID string) (bool, error)
	Append(record types.SentEmail) error
}

// SendOutcome describes the result of one (project, condition) evaluation that
// led to a send attempt.
type SendOutcome struct {
	ProjectID   string
	ConditionID string
	Recipient   string
	Subject     string
	Sent        bool
	Error       string
}

// Scheduler runs the evaluation cycle over projects and conditions.
// Both the periodic job and the eager check after saving a project go through
// the same code path, so they always take identical per-condition decisions.
type Scheduler struct {
	History HistoryStore
	Mail    MailSender

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewScheduler(history HistoryStore, mail MailSender) *Scheduler {
	return &Scheduler{
		History: history,
		Mail:    mail,
		Now:     time.Now,
	}
}

func (s *Scheduler) today() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// EvaluateAll fetches the project snapshot and evaluates every condition.
// A failing project list fetch aborts the whole cycle; everything else is
// isolated per (project, condition) pair.
func (s *Scheduler) EvaluateAll(source ProjectSource) ([]SendOutcome, error) {
	projects, err := source.ListNotificationEnabledProjects()
	if err != nil {
		return nil, err
	}

	outcomes := []SendOutcome{}
	for _, project := range projects {
		outcomes = append(outcomes, s.EvaluateProject(project)...)
	}
	return outcomes, nil
}

// EvaluateProject evaluates all conditions of a single project.
func (s *Scheduler) EvaluateProject(project types.Project) []SendOutcome {
	outcomes := []SendOutcome{}
	if !project.NotificationsEnabled {
		return outcomes
	}

	today := s.today()
	deadlineDays, hasDeadline := deadline.ProjectDeadlineDays(project, today)
	if !hasDeadline {
		slog.Debug("project has no deadline, skipping", slog.String("projectID", project.ID))
		return outcomes
	}

	method := types.ParseDeadlineCalculationMethod(string(project.DeadlineCalculationMethod))
	finalReportDate, _ := deadline.FinalReportDate(project.EndDate, method, project.DeadlineOffsetDays())

	for _, condition := range project.Conditions {
		if !IsConditionSatisfied(condition, deadlineDays) {
			continue
		}

		if types.ParseFrequencyType(string(condition.Frequency)) == types.FREQUENCY_ONCE {
			alreadySent, err := s.History.HasSuccessfulSend(condition.ID)
			if err != nil {
				// without a reliable answer, do not risk a duplicate send
				slog.Error("failed to check send history", slog.String("conditionID", condition.ID), slog.String("error", err.Error()))
				continue
			}
			if alreadySent {
				slog.Debug("condition already notified, skipping", slog.String("conditionID", condition.ID))
				continue
			}
		}

		outcomes = append(outcomes, s.sendAndRecord(project, condition, deadlineDays, finalReportDate))
	}
	return outcomes
}

func (s *Scheduler) sendAndRecord(
	project types.Project,
	condition types.Condition,
	deadlineDays int,
	finalReportDate time.Time,
) SendOutcome {
	infos := templates.TemplateInfos{
		Project:         project,
		DeadlineDays:    deadlineDays,
		FinalReportDate: finalReportDate,
		HasDeadline:     true,
	}
	subject := templates.ResolvePlaceholders(condition.Subject, infos)
	body := templates.ResolvePlaceholders(condition.Body, infos)

	sendErr := s.Mail.Send(project.CoordinatorEmail, subject, body, condition.AttachmentUris)

	record := types.SentEmail{
		ProjectID:      project.ID,
		ConditionID:    condition.ID,
		RecipientEmail: project.CoordinatorEmail,
		Subject:        subject,
		Body:           body,
		SentAt:         s.today(),
		WasSuccessful:  sendErr == nil,
	}
	if sendErr != nil {
		record.ErrorMessage = sendErr.Error()
		slog.Error("failed to send notification email",
			slog.String("projectID", project.ID),
			slog.String("conditionID", condition.ID),
			slog.String("error", sendErr.Error()))
	}

	if err := s.History.Append(record); err != nil {
		if errors.Is(err, ErrAlreadyRecorded) {
			slog.Warn("concurrent evaluation already recorded this send", slog.String("conditionID", condition.ID))
		} else {
			slog.Error("failed to append to send history", slog.String("conditionID", condition.ID), slog.String("error", err.Error()))
		}
	}

	outcome := SendOutcome{
		ProjectID:   project.ID,
		ConditionID: condition.ID,
		Recipient:   project.CoordinatorEmail,
		Subject:     subject,
		Sent:        sendErr == nil,
	}
	if sendErr != nil {
		outcome.Error = sendErr.Error()
	}
	return outcome
}
