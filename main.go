package main

import (
	"log"

	"restaurant_manager/config"
	"restaurant_manager/database"
	"restaurant_manager/handler"
	"restaurant_manager/helper"
	"restaurant_manager/logger"
	"restaurant_manager/router"
	"restaurant_manager/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	if err := logger.Initialize(config.Config("LOG_LEVEL")); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Log.Sync()

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	handler.InitRedis()

	helper.StartOrderExpiryScheduler()
	defer helper.StopOrderExpiryScheduler()
	helper.StartLowStockScheduler()
	defer helper.StopLowStockScheduler()

	payments := handler.NewPaymentHandler(service.NewPaymentService(
		database.NewPaymentStore(database.DB),
		service.PaymentPolicy{
			AllowMultiplePayments: config.Config("PAYMENT_ALLOW_SPLIT") != "false",
		},
	))

	router.SetupRoutes(app, payments)

	port := config.ConfigOr("PORT", "8002")
	logger.Log.Info("server starting", zap.String("port", port))
	log.Fatal(app.Listen(":" + port))
}
