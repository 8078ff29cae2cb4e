package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	kafkago "github.com/segmentio/kafka-go"

	"rendezvous/backend/internal/domain"
	"rendezvous/backend/internal/store"
)

type availabilityApplier interface {
	Apply(ctx context.Context, adminID int64, day, startTime, endTime string) (domain.Availability, error)
}

// Consumer ingests the two inbound topics. Each topic gets its own reader
// goroutine; a malformed message is logged and dropped, never re-queued, so
// one bad payload cannot wedge the stream.
type Consumer struct {
	brokers      []string
	groupID      string
	appointments store.AppointmentRepository
	availability availabilityApplier
	log          *slog.Logger
}

func NewConsumer(brokers []string, groupID string, appointments store.AppointmentRepository, availability availabilityApplier, log *slog.Logger) *Consumer {
	if log == nil {
		log = slog.Default()
	}
	if groupID == "" {
		groupID = DefaultGroupID
	}
	return &Consumer{
		brokers:      brokers,
		groupID:      groupID,
		appointments: appointments,
		availability: availability,
		log:          log.With(slog.String("component", "kafka.consumer")),
	}
}

// Run blocks until ctx is canceled, consuming both inbound topics.
func (c *Consumer) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, sub := range []struct {
		topic  string
		handle func(context.Context, []byte) error
	}{
		{topic: TopicAvailabilityCreated, handle: c.HandleAvailabilityEvent},
		{topic: TopicAppointmentCreated, handle: c.HandleAppointmentEvent},
	} {
		sub := sub
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.consume(ctx, sub.topic, sub.handle)
		}()
	}
	wg.Wait()
}

func (c *Consumer) consume(ctx context.Context, topic string, handle func(context.Context, []byte) error) {
	log := c.log.With(slog.String("topic", topic))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: c.brokers,
		GroupID: c.groupID,
		Topic:   topic,
	})
	defer func() {
		if err := reader.Close(); err != nil {
			log.Warn("reader close failed", slog.Any("err", err))
		}
	}()

	log.Info("consuming")
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				log.Info("consumer stopped")
				return
			}
			log.Error("read failed", slog.Any("err", err))
			return
		}
		if err := handle(ctx, msg.Value); err != nil {
			log.Error("event discarded", slog.Any("err", err), slog.Int64("offset", msg.Offset))
		}
	}
}

type availabilityEvent struct {
	AdminID   json.Number `json:"adminId"`
	DayOfWeek string      `json:"dayOfWeek"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
}

// HandleAvailabilityEvent folds one availability-created payload into the
// admin's stored record. Any decode or validation failure discards the
// message; the merge itself is idempotent, so redelivery is harmless.
func (c *Consumer) HandleAvailabilityEvent(ctx context.Context, payload []byte) error {
	var ev availabilityEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("decode availability event: %w", err)
	}

	adminID, err := ev.AdminID.Int64()
	if err != nil {
		return fmt.Errorf("availability event adminId %q: %w", ev.AdminID, err)
	}

	merged, err := c.availability.Apply(ctx, adminID, ev.DayOfWeek, ev.StartTime, ev.EndTime)
	if err != nil {
		return fmt.Errorf("apply availability for admin %d: %w", adminID, err)
	}

	c.log.Info("availability stored",
		slog.Int64("admin_id", adminID),
		slog.String("available_days", merged.AvailableDays),
	)
	return nil
}

type appointmentEvent struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	AdminID  string `json:"adminId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Details  string `json:"details"`
}

// HandleAppointmentEvent stores an externally-created appointment. The
// numeric ids and the date/time must parse or the message is discarded;
// the optional fields pass through as-is. No duplicate suppression: a
// redelivered event creates a second record.
func (c *Consumer) HandleAppointmentEvent(ctx context.Context, payload []byte) error {
	var ev appointmentEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("decode appointment event: %w", err)
	}

	userID, err := strconv.ParseInt(ev.UserID, 10, 64)
	if err != nil {
		return fmt.Errorf("appointment event userId %q: %w", ev.UserID, err)
	}
	adminID, err := strconv.ParseInt(ev.AdminID, 10, 64)
	if err != nil {
		return fmt.Errorf("appointment event adminId %q: %w", ev.AdminID, err)
	}
	date, err := domain.ParseDate(ev.Date)
	if err != nil {
		return fmt.Errorf("appointment event: %w", err)
	}
	timeOfDay, err := domain.ParseTimeOfDay(ev.Time)
	if err != nil {
		return fmt.Errorf("appointment event: %w", err)
	}

	appt := domain.Appointment{
		UserID:     userID,
		ClientName: ev.UserName,
		AdminID:    adminID,
		Name:       "Appointement of " + ev.UserName,
		Date:       date,
		Time:       timeOfDay,
		Details:    ev.Details,
		Status:     domain.StatusPending,
	}

	created, err := c.appointments.Create(ctx, appt)
	if err != nil {
		return fmt.Errorf("store appointment for user %d: %w", userID, err)
	}

	c.log.Info("appointment stored",
		slog.String("appointment_id", created.ID.String()),
		slog.Int64("user_id", userID),
		slog.String("date", date),
		slog.String("time", timeOfDay),
	)
	return nil
}
