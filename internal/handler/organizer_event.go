package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/model"
	"github.com/gatherly/eventhub/internal/repository"
	"github.com/gatherly/eventhub/internal/utils"
)

// OrganizerHandler bundles repositories for organizers to manage their
// events, attendee lists and check-ins.
type OrganizerHandler struct {
	EventRepo        *repository.EventRepo
	RegistrationRepo *repository.RegistrationRepo
	CategoryRepo     *repository.CategoryRepo
	ReviewRepo       *repository.ReviewRepo
}

func NewOrganizerHandler(events *repository.EventRepo, regs *repository.RegistrationRepo, cats *repository.CategoryRepo, reviews *repository.ReviewRepo) *OrganizerHandler {
	if events == nil || regs == nil || cats == nil || reviews == nil {
		panic("nil repository passed to NewOrganizerHandler")
	}
	return &OrganizerHandler{EventRepo: events, RegistrationRepo: regs, CategoryRepo: cats, ReviewRepo: reviews}
}

type eventReq struct {
	Title       string  `json:"title"`
	CategoryID  *uint64 `json:"category_id"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	StartAt     string  `json:"start_at"` // RFC3339
	EndAt       string  `json:"end_at"`   // RFC3339
	Capacity    uint32  `json:"capacity"` // 0 = unlimited
	Status      string  `json:"status"`
}

type eventResp struct {
	ID          uint64  `json:"id"`
	CategoryID  *uint64 `json:"category_id,omitempty"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	StartAt     string  `json:"start_at"`
	EndAt       string  `json:"end_at"`
	Capacity    uint32  `json:"capacity"`
	Status      string  `json:"status"`
}

func toEventResp(e *model.Event) eventResp {
	return eventResp{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Location:    e.Location,
		StartAt:     e.StartAt.UTC().Format(time.RFC3339),
		EndAt:       e.EndAt.UTC().Format(time.RFC3339),
		Capacity:    e.Capacity,
		Status:      e.Status,
	}
}

// parseEventReq validates the request body into an Event. The returned
// event has no ID, slug or organizer set.
func parseEventReq(req eventReq) (*model.Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.New("title required")
	}
	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, errors.New("start_at must be RFC3339")
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return nil, errors.New("end_at must be RFC3339")
	}
	if endAt.Before(startAt) {
		return nil, errors.New("end_at must not precede start_at")
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case "":
		status = model.StatusDraft
	case model.StatusDraft, model.StatusPublished, model.StatusClosed, model.StatusArchived:
	default:
		return nil, errors.New("invalid status")
	}
	return &model.Event{
		CategoryID:  req.CategoryID,
		Title:       title,
		Description: req.Description,
		Location:    strings.TrimSpace(req.Location),
		StartAt:     startAt.UTC(),
		EndAt:       endAt.UTC(),
		Capacity:    req.Capacity,
		Status:      status,
	}, nil
}

// CreateEvent creates an event owned by the caller. The slug is derived
// from the title; on a collision a numeric suffix is appended.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	e, err := parseEventReq(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	e.OrganizerID = uid

	ctx := c.Request().Context()
	if e.CategoryID != nil {
		if _, err := h.CategoryRepo.GetByID(ctx, *e.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	base := utils.Slugify(e.Title)
	if base == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title yields empty slug"})
	}
	// Retry with -2, -3, ... when the slug is taken.
	e.Slug = base
	for i := 2; ; i++ {
		err := h.EventRepo.Create(ctx, e)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrSlugExists) && i <= 20 {
			e.Slug = fmt.Sprintf("%s-%d", base, i)
			continue
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, toEventResp(e))
}

// UpdateEvent rewrites a caller-owned event. The slug follows the title.
func (h *OrganizerHandler) UpdateEvent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	e, err := parseEventReq(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	e.ID = id
	e.Slug = utils.Slugify(e.Title)

	ctx := c.Request().Context()
	current, err := h.EventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if current.Slug != e.Slug {
		// Title changed; pick a free slug the same way CreateEvent does.
		base := e.Slug
		for i := 2; ; i++ {
			err = h.EventRepo.UpdateOwned(ctx, e, uid)
			if !errors.Is(err, repository.ErrSlugExists) || i > 20 {
				break
			}
			e.Slug = fmt.Sprintf("%s-%d", base, i)
		}
	} else {
		err = h.EventRepo.UpdateOwned(ctx, e, uid)
	}
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, toEventResp(e))
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your event"})
	case errors.Is(err, repository.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}
}

// DeleteEvent removes a caller-owned event and, via cascade, its
// registrations and reviews.
func (h *OrganizerHandler) DeleteEvent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.EventRepo.DeleteOwned(c.Request().Context(), id, uid)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your event"})
	case errors.Is(err, repository.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
}

// ListMyEvents returns all of the caller's events, drafts included.
func (h *OrganizerHandler) ListMyEvents(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.EventRepo.ListByOrganizer(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResp(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListEventRegistrations returns the attendee list of a caller-owned event.
func (h *OrganizerHandler) ListEventRegistrations(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rows, err := h.RegistrationRepo.ListByEvent(c.Request().Context(), id, uid)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"items": rows})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your event"})
	case errors.Is(err, repository.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// CheckInAttendee marks a registration of a caller-owned event as
// checked in. Check-in feeds the participation rate on dashboards.
func (h *OrganizerHandler) CheckInAttendee(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	regID, err := strconv.ParseUint(c.Param("registration_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.RegistrationRepo.CheckIn(c.Request().Context(), regID, uid)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your event"})
	case errors.Is(err, repository.ErrRegistrationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check-in failed"})
	}
}
