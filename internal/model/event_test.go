package model

import (
	"testing"
	"time"
)

func TestEventIsActive(t *testing.T) {
	for status, want := range map[string]bool{
		StatusDraft:     false,
		StatusPublished: true,
		StatusClosed:    true,
		StatusArchived:  false,
	} {
		e := Event{Status: status}
		if got := e.IsActive(); got != want {
			t.Errorf("IsActive() with status %q = %v, want %v", status, got, want)
		}
	}
}

func TestEventHasStarted(t *testing.T) {
	now := time.Now().UTC()
	past := Event{StartAt: now.Add(-time.Hour)}
	future := Event{StartAt: now.Add(time.Hour)}
	if !past.HasStarted() {
		t.Error("event that began an hour ago reported as not started")
	}
	if future.HasStarted() {
		t.Error("event an hour out reported as started")
	}
}

func TestValidRating(t *testing.T) {
	for r, want := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false} {
		if got := ValidRating(r); got != want {
			t.Errorf("ValidRating(%d) = %v, want %v", r, got, want)
		}
	}
}
