package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

func setupMonitorDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.User{},
		&models.Shift{},
		&models.TimeClockEntry{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newMonitorFixture(t *testing.T) (*OpenShiftMonitor, *gorm.DB, *[]events.DomainEvent) {
	utils.InitLogger()
	db := setupMonitorDB(t)
	bus := events.NewBus()

	var emitted []events.DomainEvent
	bus.On(events.StaffOpenShift, func(ctx context.Context, event events.DomainEvent) error {
		emitted = append(emitted, event)
		return nil
	})

	return NewOpenShiftMonitor(db, bus), db, &emitted
}

func seedShift(t *testing.T, db *gorm.DB, start time.Time) (models.User, models.Shift) {
	restaurant := models.Restaurant{Name: "Warung Tes"}
	assert.NoError(t, db.Create(&restaurant).Error)
	user := models.User{
		RestaurantID: restaurant.ID,
		Name:         "Budi",
		Email:        "budi-shift@example.com",
		Password:     "x",
		Role:         "staff",
	}
	assert.NoError(t, db.Create(&user).Error)
	shift := models.Shift{
		RestaurantID: restaurant.ID,
		UserID:       user.ID,
		StartsAt:     start,
		EndsAt:       start.Add(4 * time.Hour),
	}
	assert.NoError(t, db.Create(&shift).Error)
	return user, shift
}

func TestOpenShiftAlertsOncePerShift(t *testing.T) {
	monitor, db, emitted := newMonitorFixture(t)
	_, shift := seedShift(t, db, time.Now().Add(-20*time.Minute))

	monitor.checkShifts()
	assert.Len(t, *emitted, 1)
	assert.Equal(t, "Budi", (*emitted)[0].Payload["staffName"])

	var reloaded models.Shift
	assert.NoError(t, db.First(&reloaded, shift.ID).Error)
	assert.True(t, reloaded.OpenAlerted)

	// Next sweep stays quiet.
	monitor.checkShifts()
	assert.Len(t, *emitted, 1)
}

func TestOpenShiftSuppressedByLinkedEntry(t *testing.T) {
	monitor, db, emitted := newMonitorFixture(t)
	user, shift := seedShift(t, db, time.Now().Add(-20*time.Minute))

	assert.NoError(t, db.Create(&models.TimeClockEntry{
		RestaurantID: shift.RestaurantID,
		UserID:       user.ID,
		ShiftID:      &shift.ID,
		ClockInAt:    time.Now().Add(-15 * time.Minute),
	}).Error)

	monitor.checkShifts()
	assert.Empty(t, *emitted)
}

// A clock-in without a shift_id still counts as showing up when it overlaps
// the shift window.
func TestOpenShiftSuppressedByUnlinkedOverlappingEntry(t *testing.T) {
	monitor, db, emitted := newMonitorFixture(t)
	user, shift := seedShift(t, db, time.Now().Add(-20*time.Minute))

	assert.NoError(t, db.Create(&models.TimeClockEntry{
		RestaurantID: shift.RestaurantID,
		UserID:       user.ID,
		ClockInAt:    time.Now().Add(-15 * time.Minute),
	}).Error)

	monitor.checkShifts()
	assert.Empty(t, *emitted)
}

func TestOpenShiftNotAlertedInsideGracePeriod(t *testing.T) {
	monitor, db, emitted := newMonitorFixture(t)
	seedShift(t, db, time.Now().Add(-5*time.Minute))

	monitor.checkShifts()
	assert.Empty(t, *emitted)
}

func TestOpenShiftIgnoresOtherUsersEntries(t *testing.T) {
	monitor, db, emitted := newMonitorFixture(t)
	_, shift := seedShift(t, db, time.Now().Add(-20*time.Minute))

	other := models.User{
		RestaurantID: shift.RestaurantID,
		Name:         "Sari",
		Email:        "sari-shift@example.com",
		Password:     "x",
		Role:         "staff",
	}
	assert.NoError(t, db.Create(&other).Error)
	assert.NoError(t, db.Create(&models.TimeClockEntry{
		RestaurantID: shift.RestaurantID,
		UserID:       other.ID,
		ClockInAt:    time.Now().Add(-15 * time.Minute),
	}).Error)

	monitor.checkShifts()
	assert.Len(t, *emitted, 1)
}
