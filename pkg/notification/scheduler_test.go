package notification

import (
	"errors"
	"testing"
	"time"

	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
)

type fakeHistory struct {
	records      []types.SentEmail
	lookupErr    error
	appendErr    error
	appendFailed int
}

func (h *fakeHistory) HasSuccessfulSend(conditionID string) (bool, error) {
	if h.lookupErr != nil {
		return false, h.lookupErr
	}
	for _, r := range h.records {
		if r.ConditionID == conditionID && r.WasSuccessful {
			return true, nil
		}
	}
	return false, nil
}

func (h *fakeHistory) Append(record types.SentEmail) error {
	if h.appendErr != nil {
		h.appendFailed++
		return h.appendErr
	}
	if record.WasSuccessful {
		// mirror the unique index on successful ledger entries
		for _, r := range h.records {
			if r.ConditionID == record.ConditionID && r.WasSuccessful {
				return ErrAlreadyRecorded
			}
		}
	}
	h.records = append(h.records, record)
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (m *fakeMailer) Send(to string, subject string, body string, attachments []string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeSource struct {
	projects []types.Project
	err      error
}

func (s *fakeSource) ListNotificationEnabledProjects() ([]types.Project, error) {
	return s.projects, s.err
}

func fixedToday() time.Time {
	return time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
}

func testProject(conditions ...types.Condition) types.Project {
	endDate := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	return types.Project{
		ID:                        "proj-1",
		Name:                      "Proyecto Huertos",
		CoordinatorName:           "Luis Mamani",
		CoordinatorEmail:          "coordinador@universidad.edu",
		NotificationsEnabled:      true,
		DeadlineCalculationMethod: types.DEADLINE_CALCULATION_CALENDAR_DAYS,
		FixedDeadlineDays:         10,
		EndDate:                   &endDate,
		Conditions:                conditions,
	}
}

// with endDate 2024-01-10, offset 10 calendar days and today 2024-01-15
// the computed deadline days are 5
func matchingCondition(id string, frequency types.FrequencyType) types.Condition {
	return types.Condition{
		ID:           id,
		Name:         "recordatorio",
		Subject:      "Quedan {diasRestantes} días para {nombreProyecto}",
		Body:         "Estimado/a {nombreCoordinador}, el informe final vence el {fechaInformeFinal}.",
		DeadlineDays: 5,
		Operator:     types.CONDITION_OPERATOR_EQUAL_TO,
		Frequency:    frequency,
	}
}

func newTestScheduler(history *fakeHistory, mailer *fakeMailer) *Scheduler {
	s := NewScheduler(history, mailer)
	s.Now = fixedToday
	return s
}

func TestEvaluateAllSendsAndRecords(t *testing.T) {
	history := &fakeHistory{}
	mailer := &fakeMailer{}
	scheduler := newTestScheduler(history, mailer)
	source := &fakeSource{projects: []types.Project{testProject(matchingCondition("cond-1", types.FREQUENCY_ONCE))}}

	outcomes, err := scheduler.EvaluateAll(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 1 || !outcomes[0].Sent {
		t.Fatalf("expected one successful outcome, got %+v", outcomes)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(mailer.sent))
	}
	if mailer.sent[0].to != "coordinador@universidad.edu" {
		t.Errorf("unexpected recipient: %s", mailer.sent[0].to)
	}
	if mailer.sent[0].subject != "Quedan 5 días para Proyecto Huertos" {
		t.Errorf("unexpected subject: %s", mailer.sent[0].subject)
	}
	if mailer.sent[0].body != "Estimado/a Luis Mamani, el informe final vence el 2024-01-20." {
		t.Errorf("unexpected body: %s", mailer.sent[0].body)
	}
	if len(history.records) != 1 || !history.records[0].WasSuccessful {
		t.Fatalf("expected one successful history record, got %+v", history.records)
	}
}

func TestOnceConditionNeverDoubleFires(t *testing.T) {
	history := &fakeHistory{}
	mailer := &fakeMailer{}
	scheduler := newTestScheduler(history, mailer)
	source := &fakeSource{projects: []types.Project{testProject(matchingCondition("cond-1", types.FREQUENCY_ONCE))}}

	for i := 0; i < 3; i++ {
		if _, err := scheduler.EvaluateAll(source); err != nil {
			t.Fatalf("cycle %d: unexpected error: %v", i, err)
		}
	}

	if len(mailer.sent) != 1 {
		t.Errorf("expected exactly one send across cycles, got %d", len(mailer.sent))
	}
	if len(history.records) != 1 {
		t.Errorf("expected exactly one history record, got %d", len(history.records))
	}
}

func TestDailyConditionFiresEveryCycle(t *testing.T) {
	history := &fakeHistory{}
	mailer := &fakeMailer{}
	scheduler := newTestScheduler(history, mailer)
	source := &fakeSource{projects: []types.Project{testProject(matchingCondition("cond-1", types.FREQUENCY_DAILY))}}

	for i := 0; i < 2; i++ {
		if _, err := scheduler.EvaluateAll(source); err != nil {
			t.Fatalf("cycle %d: unexpected error: %v", i, err)
		}
	}

	if len(mailer.sent) != 2 {
		t.Errorf("expected a send on both cycles, got %d", len(mailer.sent))
	}
}

func TestNotificationsDisabledSuppressesAllSends(t *testing.T) {
	history := &fakeHistory{}
	mailer := &fakeMailer{}
	scheduler := newTestScheduler(history, mailer)

	project := testProject(matchingCondition("cond-1", types.FREQUENCY_DAILY))
	project.NotificationsEnabled = false
	source := &fakeSource{projects: []types.Project{project}}

	outcomes, err := scheduler.EvaluateAll(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 0 || len(mailer.sent) != 0 {
		t.Errorf("expected no sends for disabled project, got %d outcomes and %d mails", len(outcomes), len(mailer.sent))
	}
}

func TestProjectWithoutEndDateNeverFires(t *testing.T) {
	history := &fakeHistory{}
	mailer := &fakeMailer{}
	scheduler := newTestScheduler(history, mailer)

	project := testProject(matchingCondition("cond-1", types.FREQUENCY_DAILY))
	project.EndDate = nil
	source := &fakeSource{projects: []types.Project{project}}

	outcomes, err := scheduler.EvaluateAll(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 0 || len(mailer.sent) != 0 {
		t.Error("expected no sends for project without deadline")
	}
}

func TestFailedSendIsRecordedAndRetriedNextCycle(t *testing.T) {
	history := &fakeHistory{}
	mailer := &fakeMailer{sendErr: errors.New("smtp unavailable")}
	scheduler := newTestScheduler(history, mailer)
	source := &fakeSource{projects: []types.Project{testProject(matchingCondition("cond-1", types.FREQUENCY_ONCE))}}

	outcomes, err := scheduler.EvaluateAll(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].Sent {
		t.Fatalf("expected one failed outcome, got %+v", outcomes)
	}
	if len(history.records) != 1 || history.records[0].WasSuccessful {
		t.Fatalf("expected one failed history record, got %+v", history.records)
	}
	if history.records[0].ErrorMessage != "smtp unavailable" {
		t.Errorf("unexpected error message: %s", history.records[0].ErrorMessage)
	}

	// only a successful record blocks a ONCE condition, so the next cycle retries
	mailer.sendErr = nil
	if _, err := scheduler.EvaluateAll(source); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Errorf("expected retry to send, got %d mails", len(mailer.sent))
	}
	if len(history.records) != 2 || !history.records[1].WasSuccessful {
		t.Fatalf("expected a successful record after retry, got %+v", history.records)
	}
}

func TestSendFailureDoesNotAbortRemainingConditions(t *testing.T) {
	history := &fakeHistory{}
	mailer := &fakeMailer{sendErr: errors.New("quota exceeded")}
	scheduler := newTestScheduler(history, mailer)

	first := matchingCondition("cond-1", types.FREQUENCY_DAILY)
	second := matchingCondition("cond-2", types.FREQUENCY_DAILY)
	source := &fakeSource{projects: []types.Project{testProject(first, second)}}

	outcomes, err := scheduler.EvaluateAll(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected both conditions evaluated, got %d outcomes", len(outcomes))
	}
	if len(history.records) != 2 {
		t.Errorf("expected both attempts recorded, got %d", len(history.records))
	}
}

func TestHistoryLookupFailureSkipsSend(t *testing.T) {
	history := &fakeHistory{lookupErr: errors.New("db down")}
	mailer := &fakeMailer{}
	scheduler := newTestScheduler(history, mailer)
	source := &fakeSource{projects: []types.Project{testProject(matchingCondition("cond-1", types.FREQUENCY_ONCE))}}

	outcomes, err := scheduler.EvaluateAll(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 0 || len(mailer.sent) != 0 {
		t.Error("expected no send when history lookup fails")
	}
}

func TestProjectListFetchFailureAbortsCycle(t *testing.T) {
	scheduler := newTestScheduler(&fakeHistory{}, &fakeMailer{})
	source := &fakeSource{err: errors.New("cannot reach db")}

	if _, err := scheduler.EvaluateAll(source); err == nil {
		t.Error("expected a hard failure when the project list cannot be fetched")
	}
}

func TestUnparsableCalculationMethodDegradesToBusinessDays(t *testing.T) {
	history := &fakeHistory{}
	mailer := &fakeMailer{}
	scheduler := newTestScheduler(history, mailer)

	// end date Friday 2024-01-05, corrupt method: business day fallback
	// puts the final report date on 2024-01-19, 4 business days from today (Mon 2024-01-15)
	endDate := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	project := testProject(types.Condition{
		ID:           "cond-1",
		Subject:      "s",
		Body:         "b",
		DeadlineDays: 4,
		Operator:     types.CONDITION_OPERATOR_EQUAL_TO,
		Frequency:    types.FREQUENCY_DAILY,
	})
	project.EndDate = &endDate
	project.DeadlineCalculationMethod = "CORRUPT_VALUE"
	source := &fakeSource{projects: []types.Project{project}}

	outcomes, err := scheduler.EvaluateAll(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 1 || !outcomes[0].Sent {
		t.Fatalf("expected the fallback method to fire the condition, got %+v", outcomes)
	}
}

func TestConcurrentDuplicateAppendIsTolerated(t *testing.T) {
	history := &fakeHistory{appendErr: ErrAlreadyRecorded}
	mailer := &fakeMailer{}
	scheduler := newTestScheduler(history, mailer)
	source := &fakeSource{projects: []types.Project{testProject(matchingCondition("cond-1", types.FREQUENCY_ONCE))}}

	outcomes, err := scheduler.EvaluateAll(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("expected one outcome, got %d", len(outcomes))
	}
	if history.appendFailed != 1 {
		t.Errorf("expected one rejected append, got %d", history.appendFailed)
	}
}
