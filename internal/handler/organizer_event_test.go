package handler

import (
	"testing"

	"github.com/gatherly/eventhub/internal/model"
)

func TestParseEventReq(t *testing.T) {
	base := eventReq{
		Title:   "Go Meetup",
		StartAt: "2026-09-12T18:00:00Z",
		EndAt:   "2026-09-12T21:00:00Z",
	}

	t.Run("defaults to draft", func(t *testing.T) {
		e, err := parseEventReq(base)
		if err != nil {
			t.Fatalf("parseEventReq: %v", err)
		}
		if e.Status != model.StatusDraft {
			t.Errorf("status = %q, want draft", e.Status)
		}
		if e.Title != "Go Meetup" {
			t.Errorf("title = %q", e.Title)
		}
	})

	t.Run("status normalized", func(t *testing.T) {
		req := base
		req.Status = " PUBLISHED "
		e, err := parseEventReq(req)
		if err != nil {
			t.Fatalf("parseEventReq: %v", err)
		}
		if e.Status != model.StatusPublished {
			t.Errorf("status = %q, want published", e.Status)
		}
	})

	t.Run("rejects blank title", func(t *testing.T) {
		req := base
		req.Title = "   "
		if _, err := parseEventReq(req); err == nil {
			t.Fatal("expected error for blank title")
		}
	})

	t.Run("rejects bad timestamps", func(t *testing.T) {
		req := base
		req.StartAt = "12/09/2026"
		if _, err := parseEventReq(req); err == nil {
			t.Fatal("expected error for non-RFC3339 start_at")
		}
	})

	t.Run("rejects end before start", func(t *testing.T) {
		req := base
		req.EndAt = "2026-09-12T17:00:00Z"
		if _, err := parseEventReq(req); err == nil {
			t.Fatal("expected error when end_at precedes start_at")
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		req := base
		req.Status = "cancelled"
		if _, err := parseEventReq(req); err == nil {
			t.Fatal("expected error for unknown status")
		}
	})
}
