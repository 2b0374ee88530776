package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/controllers"
	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
)

func setupTimeClockRouter(t *testing.T, db *gorm.DB, userID uint) *gin.Engine {
	bus, _ := setupPipeline(t, db)
	router := newTestRouter()
	ctrl := controllers.NewTimeClockController(db, bus, nil)
	auth := router.Group("/", authAs(1, userID, "staff"))
	auth.POST("/timeclock/clock-in", ctrl.ClockIn)
	auth.POST("/timeclock/clock-out", ctrl.ClockOut)
	auth.POST("/timeclock/break/start", ctrl.StartBreak)
	auth.POST("/timeclock/break/end", ctrl.EndBreak)
	auth.GET("/timeclock", ctrl.GetEntries)
	return router
}

func TestClockInCreatesEntryAndNotifiesManagers(t *testing.T) {
	db := setupTestDB(t)
	seedRestaurant(t, db, "Warung Tes")
	staff := seedUser(t, db, 1, "Budi", "budi@example.com", "staff", "secret")
	router := setupTimeClockRouter(t, db, staff.ID)

	w := performJSON(t, router, "POST", "/timeclock/clock-in", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var entry models.TimeClockEntry
	assert.NoError(t, db.Where("user_id = ?", staff.ID).First(&entry).Error)
	assert.Nil(t, entry.ClockOutAt)

	notifs := notificationsOfType(t, db, events.StaffClockIn)
	assert.Len(t, notifs, 1)
	assert.Equal(t, "Budi clocked in.", notifs[0].Message)

	// The draft targets the owner and manager roles, not the whole restaurant.
	var recipients []models.NotificationRecipient
	assert.NoError(t, db.Where("notification_id = ?", notifs[0].ID).Find(&recipients).Error)
	assert.Len(t, recipients, 2)
	for _, r := range recipients {
		assert.Equal(t, "role", r.Kind)
	}
}

func TestClockInTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	seedRestaurant(t, db, "Warung Tes")
	staff := seedUser(t, db, 1, "Budi", "budi2@example.com", "staff", "secret")
	router := setupTimeClockRouter(t, db, staff.ID)

	w := performJSON(t, router, "POST", "/timeclock/clock-in", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, router, "POST", "/timeclock/clock-in", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClockOutClosesEntry(t *testing.T) {
	db := setupTestDB(t)
	seedRestaurant(t, db, "Warung Tes")
	staff := seedUser(t, db, 1, "Budi", "budi3@example.com", "staff", "secret")
	router := setupTimeClockRouter(t, db, staff.ID)

	w := performJSON(t, router, "POST", "/timeclock/clock-out", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	performJSON(t, router, "POST", "/timeclock/clock-in", nil)
	w = performJSON(t, router, "POST", "/timeclock/clock-out", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var entry models.TimeClockEntry
	assert.NoError(t, db.Where("user_id = ?", staff.ID).First(&entry).Error)
	assert.NotNil(t, entry.ClockOutAt)

	assert.Len(t, notificationsOfType(t, db, events.StaffClockOut), 1)
}

func TestBreakFlow(t *testing.T) {
	db := setupTestDB(t)
	seedRestaurant(t, db, "Warung Tes")
	staff := seedUser(t, db, 1, "Budi", "budi4@example.com", "staff", "secret")
	router := setupTimeClockRouter(t, db, staff.ID)

	performJSON(t, router, "POST", "/timeclock/clock-in", nil)

	// End before start is a conflict.
	w := performJSON(t, router, "POST", "/timeclock/break/end", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = performJSON(t, router, "POST", "/timeclock/break/start", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performJSON(t, router, "POST", "/timeclock/break/start", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = performJSON(t, router, "POST", "/timeclock/break/end", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, notificationsOfType(t, db, events.StaffBreakStart), 1)
	assert.Len(t, notificationsOfType(t, db, events.StaffBreakEnd), 1)
}
