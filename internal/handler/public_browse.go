// This file defines handlers for the public browsing API: unauthenticated
// users can list published events, view an event by slug together with
// its reviews, search events, and list categories. Sensitive fields
// (organizer IDs, internal timestamps) are filtered from responses.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/model"
	"github.com/gatherly/eventhub/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing. It produces sanitized responses suitable for guests.
type PublicHandler struct {
	EventRepo    *repository.EventRepo
	CategoryRepo *repository.CategoryRepo
	ReviewRepo   *repository.ReviewRepo
}

// publicEvent is an event exposed via the public API. It contains only
// safe fields.
type publicEvent struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Location string `json:"location"`
	StartAt  string `json:"start_at"`
	EndAt    string `json:"end_at"`
	Capacity uint32 `json:"capacity"`
	Status   string `json:"status"`
}

func toPublicEvent(e *model.Event) publicEvent {
	return publicEvent{
		ID:       e.ID,
		Title:    e.Title,
		Slug:     e.Slug,
		Location: e.Location,
		StartAt:  e.StartAt.UTC().Format(time.RFC3339),
		EndAt:    e.EndAt.UTC().Format(time.RFC3339),
		Capacity: e.Capacity,
		Status:   e.Status,
	}
}

// ListEvents returns published events, soonest first.
func (h *PublicHandler) ListEvents(c echo.Context) error {
	events, err := h.EventRepo.ListPublished(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]publicEvent, 0, len(events))
	for _, e := range events {
		out = append(out, toPublicEvent(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetEvent returns one publicly visible event by slug, with its
// description and reviews attached.
func (h *PublicHandler) GetEvent(c echo.Context) error {
	ctx := c.Request().Context()
	event, err := h.EventRepo.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reviews, err := h.ReviewRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	resp := echo.Map{
		"event":       toPublicEvent(event),
		"description": event.Description,
		"reviews":     reviews,
	}
	return c.JSON(http.StatusOK, resp)
}

// SearchEvents searches published events. Query params: title, category,
// location, time (upcoming|active|any), page, page_size.
func (h *PublicHandler) SearchEvents(c echo.Context) error {
	q := repository.EventSearchQuery{
		Title:      c.QueryParam("title"),
		Category:   c.QueryParam("category"),
		Location:   c.QueryParam("location"),
		TimeFilter: c.QueryParam("time"),
	}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		q.Page = n
	}
	if n, err := strconv.Atoi(c.QueryParam("page_size")); err == nil {
		q.PageSize = n
	}
	items, total, err := h.EventRepo.SearchPublished(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total})
}

// ListCategories returns all categories ordered by name.
func (h *PublicHandler) ListCategories(c echo.Context) error {
	cats, err := h.CategoryRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type cat struct {
		ID          uint64 `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	out := make([]cat, 0, len(cats))
	for _, cc := range cats {
		out = append(out, cat{ID: cc.ID, Name: cc.Name, Description: cc.Description})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListReviewAnswers returns the organizer replies below one review.
func (h *PublicHandler) ListReviewAnswers(c echo.Context) error {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	answers, err := h.ReviewRepo.ListAnswers(c.Request().Context(), reviewID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type answer struct {
		ID        uint64 `json:"id"`
		Text      string `json:"text"`
		CreatedAt string `json:"created_at"`
	}
	out := make([]answer, 0, len(answers))
	for _, a := range answers {
		out = append(out, answer{ID: a.ID, Text: a.Text, CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339)})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
