package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register creates a restaurant together with its owner account, or adds a
// staff account to an existing restaurant.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name           string `json:"name" binding:"required"`
		Email          string `json:"email" binding:"required,email"`
		Password       string `json:"password" binding:"required"`
		Role           string `json:"role" binding:"required"` // owner, manager, staff, chef
		RestaurantID   *uint  `json:"restaurant_id"`
		RestaurantName string `json:"restaurant_name"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var restaurantID uint
	if req.RestaurantID != nil {
		restaurantID = *req.RestaurantID
	} else {
		if req.Role != "owner" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("restaurant_id required for non-owner accounts"))
			return
		}
		name := req.RestaurantName
		if name == "" {
			name = req.Name + "'s Restaurant"
		}
		restaurant := models.Restaurant{Name: name}
		if err := uc.DB.Create(&restaurant).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		restaurantID = restaurant.ID
	}

	user := models.User{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashed),
		Role:         req.Role,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s, restaurant=%d)", user.Email, user.Role, restaurantID)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id":       user.ID,
		"restaurant_id": restaurantID,
	})
}

// Login checks credentials and returns a JWT.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.RestaurantID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":         token,
		"user_role":     strings.ToLower(user.Role),
		"restaurant_id": user.RestaurantID,
	})
}

// GetProfile returns the authenticated user.
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	user.Password = ""

	utils.RespondJSON(c, http.StatusOK, "Profile", user)
}

// GetAllUsers lists the restaurant's staff.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var users []models.User
	if err := uc.DB.Where("restaurant_id = ?", restaurantID).Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	for i := range users {
		users[i].Password = ""
	}

	utils.RespondJSON(c, http.StatusOK, "All users", users)
}
