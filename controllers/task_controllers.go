package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

type TaskController struct {
	DB  *gorm.DB
	Bus *events.Bus
}

func NewTaskController(db *gorm.DB, bus *events.Bus) *TaskController {
	return &TaskController{DB: db, Bus: bus}
}

// GetAllTasks lists the restaurant's tasks, optionally by status.
func (tc *TaskController) GetAllTasks(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	query := tc.DB.Preload("Assignee").Where("restaurant_id = ?", restaurantID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All tasks", tasks)
}

// CreateTask adds a task and emits task.created. Assigned tasks notify the
// assignee only; unassigned ones go restaurant-wide.
func (tc *TaskController) CreateTask(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var body struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		AssigneeID  *uint  `json:"assignee_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	task := models.Task{
		RestaurantID: restaurantID,
		Title:        body.Title,
		Description:  body.Description,
		AssigneeID:   body.AssigneeID,
		Status:       models.TaskStatusOpen,
	}
	if err := tc.DB.Create(&task).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	payload := map[string]interface{}{
		"taskId":    task.ID,
		"taskTitle": task.Title,
	}
	if task.AssigneeID != nil {
		payload["assigneeId"] = *task.AssigneeID
	}

	err := tc.Bus.Emit(c.Request.Context(), events.TaskCreated, events.DomainEvent{
		RestaurantID: restaurantID,
		Type:         events.TaskCreated,
		Actor:        actorFromContext(c),
		Payload:      payload,
		OccurredAt:   time.Now(),
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Task created", task)
}

// CompleteTask closes an open task and emits task.completed.
func (tc *TaskController) CompleteTask(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("task_id"))

	var task models.Task
	if err := tc.DB.Where("restaurant_id = ?", restaurantID).First(&task, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if task.Status == models.TaskStatusCompleted {
		utils.RespondError(c, http.StatusConflict, errors.New("task already completed"))
		return
	}

	now := time.Now()
	task.Status = models.TaskStatusCompleted
	task.CompletedAt = &now
	if err := tc.DB.Save(&task).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	err := tc.Bus.Emit(c.Request.Context(), events.TaskCompleted, events.DomainEvent{
		RestaurantID: restaurantID,
		Type:         events.TaskCompleted,
		Actor:        actorFromContext(c),
		Payload: map[string]interface{}{
			"taskId":    task.ID,
			"taskTitle": task.Title,
		},
		OccurredAt: now,
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Task completed", task)
}

// DeleteTask removes a task.
func (tc *TaskController) DeleteTask(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")
	id, _ := strconv.Atoi(c.Param("task_id"))

	if err := tc.DB.Where("restaurant_id = ?", restaurantID).
		Delete(&models.Task{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Task deleted", gin.H{"task_id": id})
}
