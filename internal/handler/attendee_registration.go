package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/model"
	"github.com/gatherly/eventhub/internal/queue"
	"github.com/gatherly/eventhub/internal/repository"
	queue_publisher "github.com/gatherly/eventhub/internal/service"
)

// AttendeeHandler bundles repositories for attendee-facing actions:
// registering for events, cancelling, and leaving reviews.
type AttendeeHandler struct {
	EventRepo        *repository.EventRepo
	RegistrationRepo *repository.RegistrationRepo
	ReviewRepo       *repository.ReviewRepo
}

func NewAttendeeHandler(events *repository.EventRepo, regs *repository.RegistrationRepo, reviews *repository.ReviewRepo) *AttendeeHandler {
	if events == nil || regs == nil || reviews == nil {
		panic("nil repository passed to NewAttendeeHandler")
	}
	return &AttendeeHandler{EventRepo: events, RegistrationRepo: regs, ReviewRepo: reviews}
}

// Register signs the caller up for a published event. Duplicates are
// rejected with 409, as are full events. A confirmation message is
// published to the broker on success; publish failures are logged by
// the publisher and do not fail the registration.
func (h *AttendeeHandler) Register(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	event, err := h.EventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if event.Status != model.StatusPublished {
		return c.JSON(http.StatusConflict, echo.Map{"error": "event is not open for registration"})
	}

	reg := &model.Registration{EventID: eventID, AttendeeID: uid}
	if err := h.RegistrationRepo.Create(ctx, reg); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyRegistered):
			return c.JSON(http.StatusConflict, echo.Map{"error": "already registered"})
		case errors.Is(err, repository.ErrEventFull):
			return c.JSON(http.StatusConflict, echo.Map{"error": "event full"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "register failed"})
		}
	}

	_ = queue_publisher.PublishRegistrationConfirmed(ctx, queue.RegistrationConfirmedEvent{
		RegistrationID: reg.ID,
		EventID:        event.ID,
		EventTitle:     event.Title,
		EventSlug:      event.Slug,
		AttendeeID:     uid,
		StartAt:        event.StartAt.UTC().Format(time.RFC3339),
		RegisteredAt:   reg.RegisteredAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"id":            reg.ID,
		"event_id":      reg.EventID,
		"registered_at": reg.RegisteredAt.UTC().Format(time.RFC3339),
		"checked_in":    reg.CheckedIn,
	})
}

// MyRegistration returns the caller's registration for an event, or 404
// when they are not registered.
func (h *AttendeeHandler) MyRegistration(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	reg, err := h.RegistrationRepo.GetForAttendee(c.Request().Context(), eventID, uid)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{
			"id":            reg.ID,
			"event_id":      reg.EventID,
			"registered_at": reg.RegisteredAt.UTC().Format(time.RFC3339),
			"checked_in":    reg.CheckedIn,
		})
	case errors.Is(err, repository.ErrRegistrationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// Cancel withdraws the caller's registration for an event.
func (h *AttendeeHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.RegistrationRepo.Cancel(c.Request().Context(), eventID, uid)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrRegistrationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview leaves a rating and optional comment on an event that
// has started. The rating bound is checked here and again in the
// repository before anything is persisted.
func (h *AttendeeHandler) CreateReview(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidRating(req.Rating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx := c.Request().Context()
	event, err := h.EventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !event.IsActive() || !event.HasStarted() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "event cannot be reviewed yet"})
	}

	rev := &model.Review{EventID: eventID, AuthorID: &uid, Rating: req.Rating, Comment: req.Comment}
	if err := h.ReviewRepo.Create(ctx, rev); err != nil {
		if errors.Is(err, repository.ErrRatingRange) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         rev.ID,
		"event_id":   rev.EventID,
		"rating":     rev.Rating,
		"comment":    rev.Comment,
		"created_at": rev.CreatedAt.UTC().Format(time.RFC3339),
	})
}
