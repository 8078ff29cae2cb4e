package kafka

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"rendezvous/backend/internal/domain"
	"rendezvous/backend/internal/service/availability"
	"rendezvous/backend/internal/store"
)

type fakeAppointmentRepo struct {
	created []domain.Appointment
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	appt.ID = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")
	f.created = append(f.created, appt)
	return appt, nil
}

func (f *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	panic("not used")
}

func (f *fakeAppointmentRepo) List(ctx context.Context) ([]domain.Appointment, error) {
	panic("not used")
}

func (f *fakeAppointmentRepo) ListByClientName(ctx context.Context, clientName string) ([]domain.Appointment, error) {
	panic("not used")
}

func (f *fakeAppointmentRepo) ListByAdmin(ctx context.Context, adminID int64) ([]domain.Appointment, error) {
	panic("not used")
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	panic("not used")
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	panic("not used")
}

func (f *fakeAppointmentRepo) CountByDate(ctx context.Context) ([]store.DateCount, error) {
	panic("not used")
}

// in-memory availability store so the consumer tests exercise the real
// merge path end to end
type memAvailabilityRepo struct {
	records map[int64]domain.Availability
}

func newMemAvailabilityRepo() *memAvailabilityRepo {
	return &memAvailabilityRepo{records: make(map[int64]domain.Availability)}
}

func (m *memAvailabilityRepo) GetByAdmin(ctx context.Context, adminID int64) (domain.Availability, error) {
	av, ok := m.records[adminID]
	if !ok {
		return domain.Availability{}, store.ErrNotFound
	}
	return av, nil
}

func (m *memAvailabilityRepo) Upsert(ctx context.Context, av domain.Availability) (domain.Availability, error) {
	if av.ID == uuid.Nil {
		av.ID = uuid.New()
	}
	m.records[av.AdminID] = av
	return av, nil
}

func newTestConsumer(repo *fakeAppointmentRepo, availRepo *memAvailabilityRepo) *Consumer {
	return NewConsumer(nil, "", repo, availability.NewService(availRepo), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleAppointmentEvent_StoresRecord(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	c := newTestConsumer(repo, newMemAvailabilityRepo())

	payload := `{"userId":"7","userName":"Alice","adminId":"3","date":"2024-05-01","time":"09:30","details":"checkup"}`
	if err := c.HandleAppointmentEvent(context.Background(), []byte(payload)); err != nil {
		t.Fatalf("HandleAppointmentEvent error: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("created %d records, want 1", len(repo.created))
	}
	got := repo.created[0]
	if got.UserID != 7 || got.AdminID != 3 {
		t.Fatalf("ids = (%d, %d), want (7, 3)", got.UserID, got.AdminID)
	}
	if got.ClientName != "Alice" {
		t.Fatalf("client name = %q, want Alice", got.ClientName)
	}
	if got.Name != "Appointement of Alice" {
		t.Fatalf("name = %q, want %q", got.Name, "Appointement of Alice")
	}
	if got.Date != "2024-05-01" || got.Time != "09:30" {
		t.Fatalf("date/time = %q/%q", got.Date, got.Time)
	}
	if got.Details != "checkup" {
		t.Fatalf("details = %q", got.Details)
	}
	if got.Status != domain.StatusPending {
		t.Fatalf("status = %q, want PENDING", got.Status)
	}
}

func TestHandleAppointmentEvent_DiscardsWhenRequiredFieldMissing(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "missing adminId",
			payload: `{"userId":"7","userName":"Alice","date":"2024-05-01","time":"09:30"}`,
		},
		{
			name:    "non-numeric userId",
			payload: `{"userId":"alice","adminId":"3","date":"2024-05-01","time":"09:30"}`,
		},
		{
			name:    "bad date",
			payload: `{"userId":"7","adminId":"3","date":"May 1st","time":"09:30"}`,
		},
		{
			name:    "bad time",
			payload: `{"userId":"7","adminId":"3","date":"2024-05-01","time":"late"}`,
		},
		{
			name:    "not json",
			payload: `{{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppointmentRepo{}
			c := newTestConsumer(repo, newMemAvailabilityRepo())

			if err := c.HandleAppointmentEvent(context.Background(), []byte(tt.payload)); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
			if len(repo.created) != 0 {
				t.Fatalf("store changed on a discarded message: %+v", repo.created)
			}
		})
	}
}

func TestHandleAppointmentEvent_OptionalFieldsMayBeAbsent(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	c := newTestConsumer(repo, newMemAvailabilityRepo())

	payload := `{"userId":"7","adminId":"3","date":"2024-05-01","time":"09:30"}`
	if err := c.HandleAppointmentEvent(context.Background(), []byte(payload)); err != nil {
		t.Fatalf("HandleAppointmentEvent error: %v", err)
	}
	got := repo.created[0]
	if got.ClientName != "" || got.Details != "" {
		t.Fatalf("optional fields should stay empty: %+v", got)
	}
	if got.Name != "Appointement of " {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestHandleAvailabilityEvent_MergesAcrossEvents(t *testing.T) {
	availRepo := newMemAvailabilityRepo()
	c := newTestConsumer(&fakeAppointmentRepo{}, availRepo)
	ctx := context.Background()

	events := []string{
		`{"adminId":3,"dayOfWeek":"monday","startTime":"08:00","endTime":"12:00"}`,
		`{"adminId":3,"dayOfWeek":"WEDNESDAY","startTime":"09:00","endTime":"17:00"}`,
		`{"adminId":3,"dayOfWeek":"MONDAY","startTime":"10:00","endTime":"18:00"}`,
	}
	for _, ev := range events {
		if err := c.HandleAvailabilityEvent(ctx, []byte(ev)); err != nil {
			t.Fatalf("HandleAvailabilityEvent(%s) error: %v", ev, err)
		}
	}

	got := availRepo.records[3]
	if got.AvailableDays != "MONDAY,WEDNESDAY" {
		t.Fatalf("days = %q, want MONDAY,WEDNESDAY", got.AvailableDays)
	}
	if got.StartTime != "10:00" || got.EndTime != "18:00" {
		t.Fatalf("window = %q-%q, want the latest event's 10:00-18:00", got.StartTime, got.EndTime)
	}
}

func TestHandleAvailabilityEvent_InvalidWeekdayDiscarded(t *testing.T) {
	availRepo := newMemAvailabilityRepo()
	c := newTestConsumer(&fakeAppointmentRepo{}, availRepo)
	ctx := context.Background()

	good := `{"adminId":3,"dayOfWeek":"FRIDAY","startTime":"08:00","endTime":"12:00"}`
	if err := c.HandleAvailabilityEvent(ctx, []byte(good)); err != nil {
		t.Fatalf("HandleAvailabilityEvent error: %v", err)
	}
	before := availRepo.records[3]

	bad := `{"adminId":3,"dayOfWeek":"CASUALFRIDAY","startTime":"10:00","endTime":"18:00"}`
	if err := c.HandleAvailabilityEvent(ctx, []byte(bad)); err == nil {
		t.Fatalf("expected error for invalid weekday")
	}
	if availRepo.records[3] != before {
		t.Fatalf("record changed on a discarded message: %+v", availRepo.records[3])
	}
}

func TestHandleAvailabilityEvent_BadAdminIDDiscarded(t *testing.T) {
	availRepo := newMemAvailabilityRepo()
	c := newTestConsumer(&fakeAppointmentRepo{}, availRepo)

	payload := `{"dayOfWeek":"FRIDAY","startTime":"08:00","endTime":"12:00"}`
	if err := c.HandleAvailabilityEvent(context.Background(), []byte(payload)); err == nil {
		t.Fatalf("expected error for missing adminId")
	}
	if len(availRepo.records) != 0 {
		t.Fatalf("store changed on a discarded message")
	}
}
