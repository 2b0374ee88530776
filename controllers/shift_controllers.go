package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

type ShiftController struct {
	DB *gorm.DB
}

func NewShiftController(db *gorm.DB) *ShiftController {
	return &ShiftController{DB: db}
}

// GetAllShifts lists the restaurant's scheduled shifts.
func (sc *ShiftController) GetAllShifts(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var shifts []models.Shift
	if err := sc.DB.Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("starts_at DESC").
		Limit(200).
		Find(&shifts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All shifts", shifts)
}

// CreateShift schedules a shift for a staff member.
func (sc *ShiftController) CreateShift(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var body struct {
		UserID   uint      `json:"user_id" binding:"required"`
		StartsAt time.Time `json:"starts_at" binding:"required"`
		EndsAt   time.Time `json:"ends_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !body.EndsAt.After(body.StartsAt) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("shift must end after it starts"))
		return
	}

	var user models.User
	if err := sc.DB.Where("restaurant_id = ?", restaurantID).First(&user, body.UserID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("staff member not found"))
		return
	}

	shift := models.Shift{
		RestaurantID: restaurantID,
		UserID:       body.UserID,
		StartsAt:     body.StartsAt,
		EndsAt:       body.EndsAt,
	}
	if err := sc.DB.Create(&shift).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Shift created", shift)
}

// DeleteShift removes a scheduled shift.
func (sc *ShiftController) DeleteShift(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id := c.Param("shift_id")

	if err := sc.DB.Where("restaurant_id = ?", restaurantID).
		Delete(&models.Shift{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Shift deleted", gin.H{"shift_id": id})
}
