package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
	"gorm.io/gorm"
)

// GetOrders lists every order, newest first unless ?sort=asc, with the
// page metadata the admin panel paginates on.
func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 15
	}
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	filter := func(db *gorm.DB) *gorm.DB {
		if status := strings.ToUpper(ctx.Query("status")); status != "" {
			db = db.Where("status = ?", status)
		}
		if paymentStatus := strings.ToUpper(ctx.Query("paymentStatus")); paymentStatus != "" {
			db = db.Where("payment_status = ?", paymentStatus)
		}
		return db
	}

	result := initializers.DB.Preload("OrderItems").
		Scopes(filter).
		Order("order_date " + sortOrder).
		Order("id " + sortOrder).
		Limit(limit).
		Offset(offset).
		Find(&orders)
	if result.Error != nil {
		sendDBError(ctx, result.Error, "unable to fetch orders")
		return
	}

	var count int64
	if err := initializers.DB.Model(&models.Order{}).Scopes(filter).Count(&count).Error; err != nil {
		sendDBError(ctx, err, "unable to count orders")
		return
	}

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": nonNil(orders),
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"totalPages":   int(totalPages),
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func findOrder(ctx *gin.Context) (models.Order, bool) {
	orderID, ok := parseID(ctx, "id")
	if !ok {
		return models.Order{}, false
	}

	var order models.Order
	if err := initializers.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch order")
		return order, false
	}
	return order, true
}

func GetOrderByID(ctx *gin.Context) {
	order, ok := findOrder(ctx)
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

// UpdateOrderStatus sets any member of the status enumeration; there is no
// transition graph.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status" binding:"required,orderstatus"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, models.ErrInvalidOrderStatus.Error())
		return
	}

	order, ok := findOrder(ctx)
	if !ok {
		return
	}

	previous := order.Status
	order.Status = models.OrderStatus(orderStatusData.Status)
	if err := updateOrder(order.ID, map[string]any{"status": order.Status}); err != nil {
		sendDBError(ctx, err, "failed to update order status")
		return
	}

	initializers.Logger.Info("order status updated", "order_id", order.ID, "from", previous, "to", order.Status)
	publishStatusChange(ctx.Request.Context(), order, "status", string(previous), string(order.Status))
	sendJSONResponse(ctx, http.StatusOK, order)
}

func UpdatePaymentStatus(ctx *gin.Context) {
	var paymentStatusData struct {
		PaymentStatus string `json:"paymentStatus" binding:"required,paymentstatus"`
	}
	if err := ctx.ShouldBindJSON(&paymentStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, models.ErrInvalidPaymentState.Error())
		return
	}

	order, ok := findOrder(ctx)
	if !ok {
		return
	}

	previous := order.PaymentStatus
	order.PaymentStatus = models.PaymentStatus(paymentStatusData.PaymentStatus)
	if err := updateOrder(order.ID, map[string]any{"payment_status": order.PaymentStatus}); err != nil {
		sendDBError(ctx, err, "failed to update payment status")
		return
	}

	initializers.Logger.Info("payment status updated", "order_id", order.ID, "from", previous, "to", order.PaymentStatus)
	publishStatusChange(ctx.Request.Context(), order, "paymentStatus", string(previous), string(order.PaymentStatus))
	sendJSONResponse(ctx, http.StatusOK, order)
}

func countOrdersByStatus(db *gorm.DB, column string) (map[string]int64, error) {
	var rows []struct {
		StatusValue string
		Total       int64
	}
	err := db.Model(&models.Order{}).
		Select(column + " AS status_value, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.StatusValue] = row.Total
	}
	return counts, nil
}

func GetOrderStats(ctx *gin.Context) {
	byStatus, err := countOrdersByStatus(initializers.DB, "status")
	if err != nil {
		sendDBError(ctx, err, "failed to compute order stats")
		return
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"totalOrders":      total,
		"pendingOrders":    byStatus[string(models.OrderStatusPending)],
		"confirmedOrders":  byStatus[string(models.OrderStatusConfirmed)],
		"processingOrders": byStatus[string(models.OrderStatusProcessing)],
		"shippedOrders":    byStatus[string(models.OrderStatusShipped)],
		"deliveredOrders":  byStatus[string(models.OrderStatusDelivered)],
		"cancelledOrders":  byStatus[string(models.OrderStatusCancelled)],
	})
}

// GetOrdersByStatus accepts the status name in any case.
func GetOrdersByStatus(ctx *gin.Context) {
	status, err := models.ParseOrderStatus(strings.ToUpper(ctx.Param("status")))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var orders []models.Order
	if err := initializers.DB.Preload("OrderItems").
		Where("status = ?", status).
		Order("order_date desc, id desc").
		Find(&orders).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(orders))
}

func DeleteOrder(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var deleted int64
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Order{}, orderID)
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		sendDBError(ctx, err, "failed to delete order")
		return
	}
	if deleted == 0 {
		sendNotFound(ctx)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
