package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rendezvous/backend/internal/domain"
	"rendezvous/backend/internal/service/appointments"
	"rendezvous/backend/internal/store"
)

type appointmentsService interface {
	Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	ListByClientName(ctx context.Context, clientName string) ([]domain.Appointment, error)
	ListByAdmin(ctx context.Context, adminID int64) ([]domain.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.Appointment) (domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CountByDate(ctx context.Context) ([]store.DateCount, error)
}

type availabilityReader interface {
	GetByAdmin(ctx context.Context, adminID int64) (domain.Availability, error)
}

// RendezVousHandler is the HTTP face of the appointment service. All
// collaborators are passed in; it holds no globals.
type RendezVousHandler struct {
	svc          appointmentsService
	availability availabilityReader
	log          *slog.Logger
}

func NewRendezVousHandler(svc appointmentsService, availability availabilityReader, log *slog.Logger) *RendezVousHandler {
	if log == nil {
		log = slog.Default()
	}
	return &RendezVousHandler{
		svc:          svc,
		availability: availability,
		log:          log.With(slog.String("component", "http.rendezvous")),
	}
}

func (h *RendezVousHandler) Create(c *gin.Context) {
	var appt domain.Appointment
	if err := c.ShouldBindJSON(&appt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
		return
	}
	appt.ID = uuid.Nil // ids are server-assigned

	created, err := h.svc.Create(c.Request.Context(), appt)
	if err != nil {
		var vErr *appointments.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		h.log.Error("create failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.log.Info("appointment created",
		slog.String("appointment_id", created.ID.String()),
		slog.Int64("user_id", created.UserID),
	)
	c.JSON(http.StatusCreated, created)
}

func (h *RendezVousHandler) List(c *gin.Context) {
	appts, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("list failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if appts == nil {
		appts = []domain.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

func (h *RendezVousHandler) ListByClient(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
		return
	}

	appts, err := h.svc.ListByClientName(c.Request.Context(), req.Name)
	if err != nil {
		h.log.Error("list by client failed", slog.Any("err", err), slog.String("client_name", req.Name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if appts == nil {
		appts = []domain.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

func (h *RendezVousHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	appt, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error("get failed", slog.Any("err", err), slog.String("appointment_id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *RendezVousHandler) ListByAdmin(c *gin.Context) {
	adminID, ok := pathInt64(c, "id")
	if !ok {
		return
	}

	appts, err := h.svc.ListByAdmin(c.Request.Context(), adminID)
	if err != nil {
		h.log.Error("list by admin failed", slog.Any("err", err), slog.Int64("admin_id", adminID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if appts == nil {
		appts = []domain.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

func (h *RendezVousHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch domain.Appointment
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.respondUpdateError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RendezVousHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
		return
	}

	updated, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondUpdateError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RendezVousHandler) respondUpdateError(c *gin.Context, id uuid.UUID, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	var vErr *appointments.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		return
	}
	h.log.Error("update failed", slog.Any("err", err), slog.String("appointment_id", id.String()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func (h *RendezVousHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.log.Error("delete failed", slog.Any("err", err), slog.String("appointment_id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !deleted {
		c.Status(http.StatusNotFound)
		return
	}
	// confirmation text kept byte-for-byte from the previous system
	c.String(http.StatusOK, "Apointement deleted with success")
}

func (h *RendezVousHandler) AvailabilityByAdmin(c *gin.Context) {
	adminID, ok := pathInt64(c, "adminId")
	if !ok {
		return
	}

	av, err := h.availability.GetByAdmin(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error("availability lookup failed", slog.Any("err", err), slog.Int64("admin_id", adminID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, av)
}

func (h *RendezVousHandler) CountByDate(c *gin.Context) {
	counts, err := h.svc.CountByDate(c.Request.Context())
	if err != nil {
		h.log.Error("count by date failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if counts == nil {
		counts = []store.DateCount{}
	}
	c.JSON(http.StatusOK, counts)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func pathInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}
