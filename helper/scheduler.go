package helper

import (
	"strconv"
	"time"

	"restaurant_manager/config"
	"restaurant_manager/database"
	"restaurant_manager/logger"
	"restaurant_manager/model"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var orderScheduler *cron.Cron

// StartOrderExpiryScheduler sweeps stale PENDING orders every 5 minutes.
func StartOrderExpiryScheduler() {
	orderScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := orderScheduler.AddFunc("*/5 * * * *", expirePendingOrders)
	if err != nil {
		logger.Log.Error("failed to start order expiry scheduler: " + err.Error())
		return
	}

	orderScheduler.Start()
	logger.Log.Info("order expiry scheduler started")
}

func expirePendingOrders() {
	hours, err := strconv.Atoi(config.ConfigOr("ORDER_EXPIRE_HOURS", "6"))
	if err != nil || hours <= 0 {
		hours = 6
	}
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)

	now := time.Now()
	result := database.DB.Model(&model.Order{}).
		Where("status = ? AND created_at < ?", model.OrderStatusPending, cutoff).
		Updates(map[string]any{"status": model.OrderStatusCancelled, "cancelled_at": now})

	if result.Error != nil {
		logger.Log.Error("expire pending orders: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logger.Log.Info("expired stale pending orders", zap.Int64("count", result.RowsAffected))
	}
}

func StopOrderExpiryScheduler() {
	if orderScheduler != nil {
		orderScheduler.Stop()
		logger.Log.Info("order expiry scheduler stopped")
	}
}
