package handler

import (
	"time"

	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

type dashboardStats struct {
	TotalOrders      int64   `json:"totalOrders"`
	PendingOrders    int64   `json:"pendingOrders"`
	TotalCustomers   int64   `json:"totalCustomers"`
	TotalMenuItems   int64   `json:"totalMenuItems"`
	ActiveStaff      int64   `json:"activeStaff"`
	LowStockItems    int64   `json:"lowStockItems"`
	TodayRevenue     float64 `json:"todayRevenue"`
	YesterdayRevenue float64 `json:"yesterdayRevenue"`
	RevenueGrowth    float64 `json:"revenueGrowth"`
	TodayOrders      int64   `json:"todayOrders"`
}

// GetDashboardStats aggregates the headline numbers for the admin dashboard.
// Revenue is computed from completed payments, not order totals, so refunds
// and unpaid orders never inflate it.
func GetDashboardStats(c *fiber.Ctx) error {
	db := database.DB
	var stats dashboardStats

	db.Model(&model.Order{}).Count(&stats.TotalOrders)
	db.Model(&model.Order{}).Where("status = ?", model.OrderStatusPending).Count(&stats.PendingOrders)
	db.Model(&model.Customer{}).Count(&stats.TotalCustomers)
	db.Model(&model.MenuItem{}).Count(&stats.TotalMenuItems)
	db.Model(&model.Staff{}).Where("is_active = ?", true).Count(&stats.ActiveStaff)
	db.Model(&model.InventoryItem{}).Where("quantity <= reorder_level").Count(&stats.LowStockItems)

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	if err := db.Raw(
		`SELECT COALESCE(SUM(amount), 0)::float8 FROM payments
		 WHERE status = ? AND created_at >= ? AND deleted_at IS NULL`,
		model.PaymentStatusCompleted, todayStart,
	).Scan(&stats.TodayRevenue).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch dashboard statistics", err)
	}

	if err := db.Raw(
		`SELECT COALESCE(SUM(amount), 0)::float8 FROM payments
		 WHERE status = ? AND created_at >= ? AND created_at < ? AND deleted_at IS NULL`,
		model.PaymentStatusCompleted, yesterdayStart, todayStart,
	).Scan(&stats.YesterdayRevenue).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch dashboard statistics", err)
	}

	stats.RevenueGrowth = utils.CalculateGrowth(stats.TodayRevenue, stats.YesterdayRevenue)
	db.Model(&model.Order{}).Where("created_at >= ?", todayStart).Count(&stats.TodayOrders)

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

// GetRevenueSeries returns daily completed-payment revenue for the last N days.
func GetRevenueSeries(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 || days > 90 {
		days = 7
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))

	var rows []struct {
		Day     time.Time `json:"day"`
		Revenue float64   `json:"revenue"`
		Count   int64     `json:"count"`
	}
	if err := database.DB.Raw(
		`SELECT DATE_TRUNC('day', created_at) AS day,
		        COALESCE(SUM(amount), 0)::float8 AS revenue,
		        COUNT(id) AS count
		 FROM payments
		 WHERE status = ? AND created_at >= ? AND deleted_at IS NULL
		 GROUP BY day ORDER BY day ASC`,
		model.PaymentStatusCompleted, start,
	).Scan(&rows).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch revenue series", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"days":   days,
		"series": rows,
	})
}

// GetTopMenuItems ranks menu items by quantity sold across all orders.
func GetTopMenuItems(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 50 {
		limit = 5
	}

	var rows []struct {
		MenuItemID uint    `json:"menuItemId"`
		Name       string  `json:"name"`
		Sold       int64   `json:"sold"`
		Revenue    float64 `json:"revenue"`
	}
	if err := database.DB.Raw(
		`SELECT oi.menu_item_id, mi.name,
		        COALESCE(SUM(oi.quantity), 0) AS sold,
		        COALESCE(SUM(oi.quantity * oi.price), 0)::float8 AS revenue
		 FROM order_items oi
		 JOIN menu_items mi ON mi.id = oi.menu_item_id
		 WHERE oi.deleted_at IS NULL
		 GROUP BY oi.menu_item_id, mi.name
		 ORDER BY sold DESC
		 LIMIT ?`, limit,
	).Scan(&rows).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch top menu items", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}
