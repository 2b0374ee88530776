package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/realtime"
	"github.com/restrohq/restro-app/services"
	"github.com/restrohq/restro-app/utils"
)

type AdminController struct {
	DB      *gorm.DB
	Billing *services.BillingService
	Hub     *realtime.Hub
}

func NewAdminController(db *gorm.DB, billing *services.BillingService, hub *realtime.Hub) *AdminController {
	return &AdminController{DB: db, Billing: billing, Hub: hub}
}

// GetDashboardStats returns headline counts for the back-office dashboard.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var (
		totalOrders  int64
		activeOrders int64
		openTasks    int64
		lowStock     int64
		revenue      float64
	)

	ac.DB.Model(&models.Order{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&totalOrders)
	ac.DB.Model(&models.Order{}).
		Where("restaurant_id = ? AND status IN ?", restaurantID,
			[]string{models.OrderStatusReceived, models.OrderStatusPreparing, models.OrderStatusReady}).
		Count(&activeOrders)
	ac.DB.Model(&models.Task{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, models.TaskStatusOpen).
		Count(&openTasks)
	ac.DB.Model(&models.InventoryItem{}).
		Where("restaurant_id = ? AND low_stock_level > 0 AND stock <= low_stock_level", restaurantID).
		Count(&lowStock)
	ac.DB.Model(&models.Order{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, models.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue)

	onlineClients := 0
	if ac.Hub != nil {
		onlineClients = ac.Hub.ClientCount(restaurantID)
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"total_orders":    totalOrders,
		"active_orders":   activeOrders,
		"open_tasks":      openTasks,
		"low_stock_items": lowStock,
		"revenue":         revenue,
		"online_clients":  onlineClients,
	})
}

// GetSubscription returns the restaurant's billing state.
func (ac *AdminController) GetSubscription(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var sub models.Subscription
	if err := ac.DB.Where("restaurant_id = ?", restaurantID).First(&sub).Error; err != nil {
		utils.RespondJSON(c, http.StatusOK, "Subscription status", gin.H{
			"status": "trial",
		})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Subscription status", sub)
}

// ActivateSubscription starts or renews the restaurant's plan for 30 days.
func (ac *AdminController) ActivateSubscription(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var body struct {
		Plan string `json:"plan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	sub, err := ac.Billing.Activate(restaurantID, body.Plan, 30*24*time.Hour)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Subscription activated", sub)
}

// ExportPDF renders a sales summary report for the restaurant.
func (ac *AdminController) ExportPDF(c *gin.Context) {
	restaurantID := c.GetUint("restaurantID")

	var restaurant models.Restaurant
	if err := ac.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var orders []models.Order
	if err := ac.DB.
		Where("restaurant_id = ? AND status = ?", restaurantID, models.OrderStatusCompleted).
		Order("created_at DESC").
		Limit(100).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Sales Report - %s", restaurant.Name))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(25, 8, "Order", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 8, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Source", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	var total float64
	for _, order := range orders {
		total += order.TotalAmount
		pdf.CellFormat(25, 8, fmt.Sprintf("#%d", order.ID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 8, order.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, order.Source, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, utils.FormatCurrency(order.TotalAmount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(100, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, utils.FormatCurrency(total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=sales-report.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
