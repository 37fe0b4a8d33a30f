// Package dedup tracks recently seen message IDs so redelivered envelopes are
// acknowledged without being processed twice.
package dedup

import (
	"maps"
	"sync"
	"time"

	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
)

// Tracker remembers message IDs for a bounded window.
type Tracker struct {
	seen            map[string]time.Time // Maps message ID to first-seen time
	seenLock        sync.RWMutex
	cleanupInterval time.Duration // How often to run cleanup
	retention       time.Duration // How long an ID stays tracked
	stopChan        chan struct{} // Signal to stop the cleanup routine
}

// NewTracker creates a new tracker
func NewTracker(cleanupInterval, retention time.Duration) *Tracker {
	return &Tracker{
		seen:            make(map[string]time.Time),
		cleanupInterval: cleanupInterval,
		retention:       retention,
		stopChan:        make(chan struct{}),
	}
}

// MarkSeen records a message ID
func (t *Tracker) MarkSeen(messageID string) {
	t.seenLock.Lock()
	defer t.seenLock.Unlock()

	t.seen[messageID] = time.Now()
	logger.Debug("Message marked seen", "messageID", messageID)
}

// IsDuplicate reports whether a message ID has been seen within the retention window
func (t *Tracker) IsDuplicate(messageID string) bool {
	t.seenLock.RLock()
	_, exists := t.seen[messageID]
	t.seenLock.RUnlock()

	if exists {
		logger.Info("Duplicate message detected", "messageID", messageID)
		return true
	}

	return false
}

// StartCleanup starts the cleanup routine
func (t *Tracker) StartCleanup() {
	ticker := time.NewTicker(t.cleanupInterval)
	defer ticker.Stop()

	logger.Info("Dedup cleanup routine started",
		"cleanupInterval", t.cleanupInterval,
		"retention", t.retention)

	for {
		select {
		case <-ticker.C:
			t.cleanupExpired()
		case <-t.stopChan:
			logger.Info("Dedup cleanup routine stopped")
			return
		}
	}
}

// Stop stops the cleanup routine
func (t *Tracker) Stop() {
	close(t.stopChan)
}

// cleanupExpired drops IDs older than the retention window
func (t *Tracker) cleanupExpired() {
	now := time.Now()
	t.seenLock.Lock()
	defer t.seenLock.Unlock()

	cleanedCount := 0
	for messageID, firstSeen := range t.seen {
		if now.Sub(firstSeen) > t.retention {
			delete(t.seen, messageID)
			cleanedCount++
		}
	}

	if cleanedCount > 0 {
		logger.Info("Cleaned up expired message IDs",
			"cleanedCount", cleanedCount,
			"remainingCount", len(t.seen))
	}
}

// TrackedCount gets the number of tracked IDs
func (t *Tracker) TrackedCount() int {
	t.seenLock.RLock()
	defer t.seenLock.RUnlock()
	return len(t.seen)
}

// TrackedIDs gets all tracked IDs (for debugging)
func (t *Tracker) TrackedIDs() map[string]time.Time {
	t.seenLock.RLock()
	defer t.seenLock.RUnlock()
	// return a copy to avoid external modification
	ids := make(map[string]time.Time)
	maps.Copy(ids, t.seen)
	return ids
}
