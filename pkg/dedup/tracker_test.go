package dedup

import (
	"testing"
	"time"
)

func TestTracker_MarkSeen(t *testing.T) {
	tracker := NewTracker(1*time.Minute, 5*time.Minute)

	tracker.MarkSeen("msg-1")

	if tracker.TrackedCount() != 1 {
		t.Errorf("Expected 1 tracked ID, got %d", tracker.TrackedCount())
	}

	tracker.MarkSeen("msg-2")

	if tracker.TrackedCount() != 2 {
		t.Errorf("Expected 2 tracked IDs, got %d", tracker.TrackedCount())
	}
}

func TestTracker_IsDuplicate(t *testing.T) {
	tracker := NewTracker(1*time.Minute, 5*time.Minute)

	if tracker.IsDuplicate("msg-1") {
		t.Error("Expected unseen message to return false")
	}

	tracker.MarkSeen("msg-1")

	if !tracker.IsDuplicate("msg-1") {
		t.Error("Expected seen message to return true")
	}

	if tracker.IsDuplicate("msg-2") {
		t.Error("Expected different message to return false")
	}
}

func TestTracker_CleanupExpired(t *testing.T) {
	tracker := NewTracker(1*time.Minute, 1*time.Millisecond) // Very short retention

	tracker.MarkSeen("msg-1")

	if tracker.TrackedCount() != 1 {
		t.Errorf("Expected 1 tracked ID, got %d", tracker.TrackedCount())
	}

	time.Sleep(10 * time.Millisecond)

	tracker.cleanupExpired()

	if tracker.TrackedCount() != 0 {
		t.Errorf("Expected 0 tracked IDs after cleanup, got %d", tracker.TrackedCount())
	}
}

func TestTracker_TrackedIDs(t *testing.T) {
	tracker := NewTracker(1*time.Minute, 5*time.Minute)

	tracker.MarkSeen("msg-1")
	tracker.MarkSeen("msg-2")

	ids := tracker.TrackedIDs()

	if len(ids) != 2 {
		t.Errorf("Expected 2 tracked IDs, got %d", len(ids))
	}

	if _, exists := ids["msg-1"]; !exists {
		t.Error("Expected msg-1 to be tracked")
	}

	if _, exists := ids["msg-2"]; !exists {
		t.Error("Expected msg-2 to be tracked")
	}
}
