package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

// OpenShiftMonitor periodically scans for shifts that passed their start
// time with no matching clock-in and emits staff.open_shift once per shift.
type OpenShiftMonitor struct {
	DB       *gorm.DB
	Bus      *events.Bus
	StopChan chan struct{}
	Interval time.Duration
	// Grace period after the scheduled start before a shift counts as open.
	Grace time.Duration
}

func NewOpenShiftMonitor(db *gorm.DB, bus *events.Bus) *OpenShiftMonitor {
	return &OpenShiftMonitor{
		DB:       db,
		Bus:      bus,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Minute,
		Grace:    10 * time.Minute,
	}
}

func (m *OpenShiftMonitor) Start() {
	go func() {
		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.checkShifts()
			case <-m.StopChan:
				return
			}
		}
	}()
}

func (m *OpenShiftMonitor) Stop() {
	close(m.StopChan)
}

func (m *OpenShiftMonitor) checkShifts() {
	now := time.Now()
	cutoff := now.Add(-m.Grace)

	var shifts []models.Shift
	if err := m.DB.Preload("User").
		Where("starts_at <= ? AND ends_at > ? AND open_alerted = ?", cutoff, now, false).
		Limit(100).
		Find(&shifts).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching shifts: %v", err)
		return
	}

	for _, shift := range shifts {
		// An entry linked to the shift covers it, as does any entry by the
		// same user overlapping the shift window (clock-ins without a
		// shift_id still count as showing up).
		var count int64
		m.DB.Model(&models.TimeClockEntry{}).
			Where("shift_id = ? OR (user_id = ? AND clock_in_at < ? AND (clock_out_at IS NULL OR clock_out_at > ?))",
				shift.ID, shift.UserID, shift.EndsAt, shift.StartsAt).
			Count(&count)
		if count > 0 {
			continue
		}

		event := events.DomainEvent{
			RestaurantID: shift.RestaurantID,
			Type:         events.StaffOpenShift,
			Actor:        "system",
			Payload: map[string]interface{}{
				"shiftId":    shift.ID,
				"staffName":  shift.User.Name,
				"shiftStart": shift.StartsAt.Format("15:04"),
			},
			OccurredAt: now,
		}
		if err := m.Bus.Emit(context.Background(), events.StaffOpenShift, event); err != nil {
			utils.ErrorLogger.Printf("Error emitting open shift event: %v", err)
			continue
		}

		if err := m.DB.Model(&models.Shift{}).
			Where("id = ?", shift.ID).
			Update("open_alerted", true).Error; err != nil {
			utils.ErrorLogger.Printf("Error marking shift as alerted: %v", err)
		}
	}
}
