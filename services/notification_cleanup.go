package services

import (
	"time"

	"github.com/restrohq/restro-app/notifications"
	"github.com/restrohq/restro-app/utils"
)

// NotificationCleanup deletes notifications past the retention window. The
// pipeline itself never deletes rows; this job is the only writer that does.
type NotificationCleanup struct {
	Store     *notifications.Store
	StopChan  chan struct{}
	Interval  time.Duration
	Retention time.Duration
}

func NewNotificationCleanup(store *notifications.Store) *NotificationCleanup {
	return &NotificationCleanup{
		Store:     store,
		StopChan:  make(chan struct{}),
		Interval:  1 * time.Hour,
		Retention: 30 * 24 * time.Hour,
	}
}

func (nc *NotificationCleanup) Start() {
	go func() {
		ticker := time.NewTicker(nc.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				nc.runOnce()
			case <-nc.StopChan:
				return
			}
		}
	}()
}

func (nc *NotificationCleanup) Stop() {
	close(nc.StopChan)
}

func (nc *NotificationCleanup) runOnce() {
	cutoff := time.Now().Add(-nc.Retention)
	deleted, err := nc.Store.DeleteOlderThan(cutoff)
	if err != nil {
		utils.ErrorLogger.Printf("Error cleaning up notifications: %v", err)
		return
	}
	if deleted > 0 {
		utils.InfoLogger.Printf("Deleted %d notifications older than %s", deleted, cutoff.Format(time.RFC3339))
	}
}
