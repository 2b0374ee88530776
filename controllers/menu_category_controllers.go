package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

type MenuCategoryController struct {
	DB *gorm.DB
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{DB: db}
}

// GetAllCategories lists the restaurant's menu categories.
func (cc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var categories []models.MenuCategory
	if err := cc.DB.Where("restaurant_id = ?", restaurantID).Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All categories", categories)
}

// CreateCategory adds a category.
func (cc *MenuCategoryController) CreateCategory(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{
		RestaurantID: restaurantID,
		Name:         body.Name,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory renames a category.
func (cc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("cat_id"))

	var category models.MenuCategory
	if err := cc.DB.Where("restaurant_id = ?", restaurantID).First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category.Name = body.Name
	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory removes a category.
func (cc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("cat_id"))

	if err := cc.DB.Where("restaurant_id = ?", restaurantID).
		Delete(&models.MenuCategory{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"cat_id": id})
}
