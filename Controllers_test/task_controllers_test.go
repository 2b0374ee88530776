package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/controllers"
	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
)

func setupTaskRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	bus, _ := setupPipeline(t, db)
	router := newTestRouter()
	ctrl := controllers.NewTaskController(db, bus)
	auth := router.Group("/", authAs(1, 1, "manager"))
	auth.POST("/tasks", ctrl.CreateTask)
	auth.PATCH("/tasks/:task_id/complete", ctrl.CompleteTask)
	auth.GET("/tasks", ctrl.GetAllTasks)
	auth.DELETE("/tasks/:task_id", ctrl.DeleteTask)
	return router
}

func TestCreateUnassignedTaskBroadcasts(t *testing.T) {
	db := setupTestDB(t)
	router := setupTaskRouter(t, db)

	w := performJSON(t, router, "POST", "/tasks", map[string]interface{}{
		"title": "Clean the fryer",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	notifs := notificationsOfType(t, db, events.TaskCreated)
	assert.Len(t, notifs, 1)
	assert.Equal(t, "Task 'Clean the fryer' was created.", notifs[0].Message)

	var recipient models.NotificationRecipient
	assert.NoError(t, db.Where("notification_id = ?", notifs[0].ID).First(&recipient).Error)
	assert.Equal(t, "restaurant", recipient.Kind)
}

func TestCreateAssignedTaskNotifiesAssigneeOnly(t *testing.T) {
	db := setupTestDB(t)
	router := setupTaskRouter(t, db)
	seedRestaurant(t, db, "Warung Tes")
	staff := seedUser(t, db, 1, "Budi", "assignee@example.com", "staff", "secret")

	w := performJSON(t, router, "POST", "/tasks", map[string]interface{}{
		"title":       "Restock napkins",
		"assignee_id": staff.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	notifs := notificationsOfType(t, db, events.TaskCreated)
	assert.Len(t, notifs, 1)

	var recipients []models.NotificationRecipient
	assert.NoError(t, db.Where("notification_id = ?", notifs[0].ID).Find(&recipients).Error)
	assert.Len(t, recipients, 1)
	assert.Equal(t, "user", recipients[0].Kind)
	assert.Equal(t, staff.ID, *recipients[0].UserID)
}

func TestCompleteTask(t *testing.T) {
	db := setupTestDB(t)
	router := setupTaskRouter(t, db)

	task := models.Task{RestaurantID: 1, Title: "Mop the floor", Status: models.TaskStatusOpen}
	assert.NoError(t, db.Create(&task).Error)

	url := fmt.Sprintf("/tasks/%d/complete", task.ID)
	w := performJSON(t, router, "PATCH", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Task
	assert.NoError(t, db.First(&reloaded, task.ID).Error)
	assert.Equal(t, models.TaskStatusCompleted, reloaded.Status)
	assert.NotNil(t, reloaded.CompletedAt)

	notifs := notificationsOfType(t, db, events.TaskCompleted)
	assert.Len(t, notifs, 1)
	assert.Equal(t, "Task 'Mop the floor' was completed.", notifs[0].Message)

	// Completing again conflicts.
	w = performJSON(t, router, "PATCH", url, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
