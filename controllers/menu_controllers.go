package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus lists the restaurant's menu.
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	query := mc.DB.Preload("Category").Where("restaurant_id = ?", restaurantID)
	if catID := c.Query("category_id"); catID != "" {
		query = query.Where("category_id = ?", catID)
	}

	var menus []models.Menu
	if err := query.Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// CreateMenu adds a menu item.
func (mc *MenuController) CreateMenu(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var body struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu := models.Menu{
		RestaurantID: restaurantID,
		CategoryID:   body.CategoryID,
		Name:         body.Name,
		Price:        body.Price,
		Available:    true,
		Description:  body.Description,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// GetMenuByID returns one menu item.
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := mc.DB.Preload("Category").
		Where("restaurant_id = ?", restaurantID).
		First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// UpdateMenu edits price, availability or text fields.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := mc.DB.Where("restaurant_id = ?", restaurantID).First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Available   *bool    `json:"available"`
		Description *string  `json:"description"`
		CategoryID  *uint    `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		menu.Name = *body.Name
	}
	if body.Price != nil {
		menu.Price = *body.Price
	}
	if body.Available != nil {
		menu.Available = *body.Available
	}
	if body.Description != nil {
		menu.Description = *body.Description
	}
	if body.CategoryID != nil {
		menu.CategoryID = *body.CategoryID
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu removes a menu item.
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("menu_id"))

	if err := mc.DB.Where("restaurant_id = ?", restaurantID).
		Delete(&models.Menu{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}
