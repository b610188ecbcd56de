package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const revenueMonths = 6

func countRows(query *gorm.DB) (int64, error) {
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func customerCount(db *gorm.DB) (int64, error) {
	return countRows(db.Model(&models.User{}).Where("role = ?", models.RoleUser))
}

// paidRevenue sums the totals of orders whose payment succeeded.
func paidRevenue(db *gorm.DB) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0) AS total").
		Where("payment_status = ?", models.PaymentStatusSuccess).
		Scan(&row).Error
	return row.Total.Round(2), err
}

func GetDashboardStats(ctx *gin.Context) {
	db := initializers.DB

	totalUsers, err := customerCount(db)
	if err != nil {
		sendDBError(ctx, err, "failed to count users")
		return
	}
	totalProducts, err := countRows(db.Model(&models.Product{}))
	if err != nil {
		sendDBError(ctx, err, "failed to count products")
		return
	}
	totalOrders, err := countRows(db.Model(&models.Order{}))
	if err != nil {
		sendDBError(ctx, err, "failed to count orders")
		return
	}
	totalRevenue, err := paidRevenue(db)
	if err != nil {
		sendDBError(ctx, err, "failed to sum revenue")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"totalUsers":    totalUsers,
		"totalProducts": totalProducts,
		"totalOrders":   totalOrders,
		"totalRevenue":  totalRevenue,
	})
}

func GetRecentOrders(ctx *gin.Context) {
	var orders []models.Order
	if err := initializers.DB.Preload("OrderItems").Order("order_date desc, id desc").Limit(10).Find(&orders).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch recent orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(orders))
}

func GetUserCount(ctx *gin.Context) {
	count, err := customerCount(initializers.DB)
	if err != nil {
		sendDBError(ctx, err, "failed to count users")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, count)
}

func GetUsers(ctx *gin.Context) {
	var users []models.User
	if err := initializers.DB.Order("id asc").Find(&users).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch users")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(users))
}

// DeleteUser removes an account with its cart, wishlist and reviews. Orders
// are kept for the books. Admins cannot delete themselves.
func DeleteUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if userID == currentUser(ctx).UserID {
		sendErrorResponse(ctx, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch user")
		return
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []any{&models.CartItem{}, &models.WishlistItem{}, &models.Review{}} {
			if err := tx.Where("user_id = ?", user.ID).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		sendDBError(ctx, err, "failed to delete user")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func UpdateUserRole(ctx *gin.Context) {
	userID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var body struct {
		Role string `json:"role" binding:"required,role"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, models.ErrInvalidRole.Error())
		return
	}
	role, _ := models.ParseRole(body.Role)

	if userID == currentUser(ctx).UserID && role != models.RoleAdmin {
		sendErrorResponse(ctx, http.StatusBadRequest, "You cannot remove your own admin role")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch user")
		return
	}
	user.Role = role
	if err := initializers.DB.Model(&user).Update("role", role).Error; err != nil {
		sendDBError(ctx, err, "failed to update role")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func GetProductCount(ctx *gin.Context) {
	count, err := countRows(initializers.DB.Model(&models.Product{}))
	if err != nil {
		sendDBError(ctx, err, "failed to count products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, count)
}

func GetOrderCount(ctx *gin.Context) {
	count, err := countRows(initializers.DB.Model(&models.Order{}))
	if err != nil {
		sendDBError(ctx, err, "failed to count orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, count)
}

func GetTotalRevenue(ctx *gin.Context) {
	total, err := paidRevenue(initializers.DB)
	if err != nil {
		sendDBError(ctx, err, "failed to sum revenue")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, total)
}

type monthRevenue struct {
	Month   string          `json:"month"`
	Label   string          `json:"label"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// monthlyRevenue buckets paid orders into the last months calendar months
// (UTC), oldest first, including the current one.
func monthlyRevenue(db *gorm.DB, now time.Time, months int) ([]monthRevenue, error) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	var orders []models.Order
	if err := db.Select("id", "total_price", "order_date").
		Where("payment_status = ? AND order_date >= ?", models.PaymentStatusSuccess, start).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	buckets := make([]monthRevenue, months)
	index := make(map[string]int, months)
	for i := range buckets {
		month := start.AddDate(0, i, 0)
		key := month.Format("2006-01")
		buckets[i] = monthRevenue{Month: key, Label: month.Format("January 2006"), Revenue: decimal.Zero}
		index[key] = i
	}

	for _, order := range orders {
		if i, ok := index[order.OrderDate.UTC().Format("2006-01")]; ok {
			buckets[i].Revenue = buckets[i].Revenue.Add(order.TotalPrice)
			buckets[i].Orders++
		}
	}
	return buckets, nil
}

func GetMonthlyRevenue(ctx *gin.Context) {
	months, err := monthlyRevenue(initializers.DB, time.Now(), revenueMonths)
	if err != nil {
		sendDBError(ctx, err, "failed to compute monthly revenue")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"monthlyRevenue": months})
}

type topSeller struct {
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Sales     int64           `json:"sales"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// GetTopSellingProducts ranks products by units sold in paid orders.
func GetTopSellingProducts(ctx *gin.Context) {
	limit, ok := queryInt(ctx, "limit", "5")
	if !ok {
		return
	}
	if limit < 1 || limit > 50 {
		limit = 5
	}

	var rows []topSeller
	err := initializers.DB.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, MAX(order_items.product_name) AS name, "+
			"SUM(order_items.quantity) AS sales, SUM(order_items.quantity * order_items.price) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.payment_status = ?", models.PaymentStatusSuccess).
		Group("order_items.product_id").
		Order("sales desc, product_id asc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		sendDBError(ctx, err, "failed to rank products")
		return
	}
	for i := range rows {
		rows[i].Revenue = rows[i].Revenue.Round(2)
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(rows))
}

func GetAnalyticsOverview(ctx *gin.Context) {
	db := initializers.DB

	byStatus, err := countOrdersByStatus(db, "status")
	if err != nil {
		sendDBError(ctx, err, "failed to group orders")
		return
	}
	byPayment, err := countOrdersByStatus(db, "payment_status")
	if err != nil {
		sendDBError(ctx, err, "failed to group payments")
		return
	}
	revenue, err := paidRevenue(db)
	if err != nil {
		sendDBError(ctx, err, "failed to sum revenue")
		return
	}
	activeCoupons, err := countRows(db.Model(&models.Coupon{}).Where("is_active = ?", true))
	if err != nil {
		sendDBError(ctx, err, "failed to count coupons")
		return
	}

	var totalOrders int64
	for _, count := range byStatus {
		totalOrders += count
	}
	paidOrders := byPayment[string(models.PaymentStatusSuccess)]

	averageOrderValue := decimal.Zero
	if paidOrders > 0 {
		averageOrderValue = revenue.Div(decimal.NewFromInt(paidOrders)).Round(2)
	}

	ordersByStatus := gin.H{}
	for _, status := range models.OrderStatuses {
		ordersByStatus[string(status)] = byStatus[string(status)]
	}
	paymentsByStatus := gin.H{}
	for _, status := range models.PaymentStatuses {
		paymentsByStatus[string(status)] = byPayment[string(status)]
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"totalOrders":       totalOrders,
		"paidOrders":        paidOrders,
		"totalRevenue":      revenue,
		"averageOrderValue": averageOrderValue,
		"activeCoupons":     activeCoupons,
		"ordersByStatus":    ordersByStatus,
		"paymentsByStatus":  paymentsByStatus,
	})
}
