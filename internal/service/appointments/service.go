package appointments

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"rendezvous/backend/internal/domain"
	"rendezvous/backend/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Notifier publishes the post-creation event. Implementations are expected
// to be best-effort; the service never fails a create over a publish error.
type Notifier interface {
	AppointmentCreated(ctx context.Context, userID string) error
}

type Service struct {
	repo          store.AppointmentRepository
	notifier      Notifier
	log           *slog.Logger
	notifyTimeout time.Duration
}

func NewService(repo store.AppointmentRepository, notifier Notifier, log *slog.Logger, notifyTimeout time.Duration) *Service {
	if log == nil {
		log = slog.Default()
	}
	if notifyTimeout <= 0 {
		notifyTimeout = 5 * time.Second
	}
	return &Service{
		repo:          repo,
		notifier:      notifier,
		log:           log.With(slog.String("component", "service.appointments")),
		notifyTimeout: notifyTimeout,
	}
}

// Create persists the record as supplied, defaulting the status to PENDING,
// and then publishes the creation event. The publish is fire-and-forget:
// the store write has already committed, so a transport failure is logged
// and swallowed.
func (s *Service) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	status, err := domain.NormalizeStatus(string(appt.Status))
	if err != nil {
		return domain.Appointment{}, validationError(err.Error())
	}
	appt.Status = status

	if appt.Date, err = domain.ParseDate(appt.Date); err != nil {
		return domain.Appointment{}, validationError(err.Error())
	}
	if appt.Time, err = domain.ParseTimeOfDay(appt.Time); err != nil {
		return domain.Appointment{}, validationError(err.Error())
	}

	created, err := s.repo.Create(ctx, appt)
	if err != nil {
		return domain.Appointment{}, err
	}

	if s.notifier != nil {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()
		userID := strconv.FormatInt(created.UserID, 10)
		if err := s.notifier.AppointmentCreated(notifyCtx, userID); err != nil {
			s.log.Warn("creation event publish failed",
				slog.Any("err", err),
				slog.String("appointment_id", created.ID.String()),
				slog.String("user_id", userID),
			)
		}
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByClientName(ctx context.Context, clientName string) ([]domain.Appointment, error) {
	return s.repo.ListByClientName(ctx, clientName)
}

func (s *Service) ListByAdmin(ctx context.Context, adminID int64) ([]domain.Appointment, error) {
	return s.repo.ListByAdmin(ctx, adminID)
}

// Update replaces the date and user of an existing appointment. The admin
// id is overwritten with the patch's *user* id: that is the contract the
// previous system shipped and its clients still rely on, so it is kept
// verbatim. Client name, label, details and status are untouched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch domain.Appointment) (domain.Appointment, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Appointment{}, err
	}

	date, err := domain.ParseDate(patch.Date)
	if err != nil {
		return domain.Appointment{}, validationError(err.Error())
	}

	existing.Date = date
	existing.UserID = patch.UserID
	existing.AdminID = patch.UserID

	return s.repo.Update(ctx, existing)
}

// UpdateStatus replaces only the status of an existing appointment.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (domain.Appointment, error) {
	normalized, err := domain.NormalizeStatus(status)
	if err != nil {
		return domain.Appointment{}, validationError(err.Error())
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Appointment{}, err
	}

	existing.Status = normalized
	return s.repo.Update(ctx, existing)
}

// Delete reports whether a record was removed. Deleting an absent id is not
// an error; it returns false.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) CountByDate(ctx context.Context) ([]store.DateCount, error) {
	return s.repo.CountByDate(ctx)
}
