package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/realtime"
	"github.com/restrohq/restro-app/utils"
)

type TimeClockController struct {
	DB  *gorm.DB
	Bus *events.Bus
	Hub *realtime.Hub
}

func NewTimeClockController(db *gorm.DB, bus *events.Bus, hub *realtime.Hub) *TimeClockController {
	return &TimeClockController{DB: db, Bus: bus, Hub: hub}
}

// ClockIn opens a time-clock entry for the caller and emits staff.clock_in.
func (tc *TimeClockController) ClockIn(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	userID := c.GetUint("userID")

	var open models.TimeClockEntry
	if err := tc.DB.Where("user_id = ? AND clock_out_at IS NULL", userID).First(&open).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("already clocked in"))
		return
	}

	var body struct {
		ShiftID *uint `json:"shift_id"`
	}
	_ = c.ShouldBindJSON(&body)

	entry := models.TimeClockEntry{
		RestaurantID: restaurantID,
		UserID:       userID,
		ShiftID:      body.ShiftID,
		ClockInAt:    time.Now(),
	}
	if err := tc.DB.Create(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tc.emitStaffEvent(c, events.StaffClockIn, entry); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Clocked in", entry)
}

// ClockOut closes the caller's open entry and emits staff.clock_out.
func (tc *TimeClockController) ClockOut(c *gin.Context) {
	userID := c.GetUint("userID")

	var entry models.TimeClockEntry
	if err := tc.DB.Where("user_id = ? AND clock_out_at IS NULL", userID).First(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no open time-clock entry"))
		return
	}

	now := time.Now()
	entry.ClockOutAt = &now
	if err := tc.DB.Save(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tc.emitStaffEvent(c, events.StaffClockOut, entry); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Clocked out", entry)
}

// StartBreak stamps the break start on the open entry.
func (tc *TimeClockController) StartBreak(c *gin.Context) {
	userID := c.GetUint("userID")

	var entry models.TimeClockEntry
	if err := tc.DB.Where("user_id = ? AND clock_out_at IS NULL", userID).First(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no open time-clock entry"))
		return
	}
	if entry.BreakStartAt != nil && entry.BreakEndAt == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("break already in progress"))
		return
	}

	now := time.Now()
	entry.BreakStartAt = &now
	entry.BreakEndAt = nil
	if err := tc.DB.Save(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tc.emitStaffEvent(c, events.StaffBreakStart, entry); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Break started", entry)
}

// EndBreak stamps the break end on the open entry.
func (tc *TimeClockController) EndBreak(c *gin.Context) {
	userID := c.GetUint("userID")

	var entry models.TimeClockEntry
	if err := tc.DB.Where("user_id = ? AND clock_out_at IS NULL", userID).First(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no open time-clock entry"))
		return
	}
	if entry.BreakStartAt == nil || entry.BreakEndAt != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("no break in progress"))
		return
	}

	now := time.Now()
	entry.BreakEndAt = &now
	if err := tc.DB.Save(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tc.emitStaffEvent(c, events.StaffBreakEnd, entry); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Break ended", entry)
}

// GetEntries lists the restaurant's time-clock entries.
func (tc *TimeClockController) GetEntries(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var entries []models.TimeClockEntry
	if err := tc.DB.Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("clock_in_at DESC").
		Limit(200).
		Find(&entries).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Time clock entries", entries)
}

func (tc *TimeClockController) emitStaffEvent(c *gin.Context, eventType string, entry models.TimeClockEntry) error {
	var user models.User
	staffName := ""
	if err := tc.DB.First(&user, entry.UserID).Error; err == nil {
		staffName = user.Name
	}

	if tc.Hub != nil {
		tc.Hub.BroadcastStaffUpdate(entry.RestaurantID, entry)
	}

	return tc.Bus.Emit(c.Request.Context(), eventType, events.DomainEvent{
		RestaurantID: entry.RestaurantID,
		Type:         eventType,
		Actor:        actorFromContext(c),
		Payload: map[string]interface{}{
			"entryId":   entry.ID,
			"staffId":   entry.UserID,
			"staffName": staffName,
		},
		OccurredAt: time.Now(),
	})
}
