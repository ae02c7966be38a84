package helper

import (
	"time"

	"restaurant_manager/config"
	"restaurant_manager/database"
	"restaurant_manager/logger"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

var inventoryScheduler gocron.Scheduler

// LowStockItems returns inventory rows at or below their reorder level.
func LowStockItems() ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := database.DB.
		Where("quantity <= reorder_level").
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}

func sendLowStockAlert() {
	items, err := LowStockItems()
	if err != nil {
		logger.Log.Error("low stock scan: " + err.Error())
		return
	}
	if len(items) == 0 {
		return
	}
	logger.Log.Info("low stock items found", zap.Int("count", len(items)))

	to := config.Config("ALERT_EMAIL")
	if to == "" {
		return
	}
	utils.SendLowStockAlert(to, items)
}

// StartLowStockScheduler runs the low-stock scan every morning at 08:00 IST.
func StartLowStockScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("IST", 5*3600+1800)),
	)
	if err != nil {
		logger.Log.Error("failed to create low stock scheduler: " + err.Error())
		return
	}

	inventoryScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(8, 0, 0),
			),
		),
		gocron.NewTask(sendLowStockAlert),
	)
	if err != nil {
		logger.Log.Error("failed to schedule low stock job: " + err.Error())
		return
	}

	s.Start()
	logger.Log.Info("low stock scheduler started")
}

func StopLowStockScheduler() {
	if inventoryScheduler != nil {
		if err := inventoryScheduler.Shutdown(); err != nil {
			logger.Log.Error("stop low stock scheduler: " + err.Error())
		}
	}
}
