package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/model"
	"github.com/gatherly/eventhub/internal/repository"
)

type answerReq struct {
	Text string `json:"text"`
}

// AnswerReview lets the organizer of the reviewed event post a reply.
func (h *OrganizerHandler) AnswerReview(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req answerReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text required"})
	}

	a := &model.Answer{ReviewID: reviewID, AuthorID: uid, Text: strings.TrimSpace(req.Text)}
	err = h.ReviewRepo.CreateAnswer(c.Request().Context(), a, uid)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, echo.Map{
			"id":         a.ID,
			"review_id":  a.ReviewID,
			"text":       a.Text,
			"created_at": a.CreatedAt.UTC().Format(time.RFC3339),
		})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your event"})
	case errors.Is(err, repository.ErrReviewNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create answer failed"})
	}
}
