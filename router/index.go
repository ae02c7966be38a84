package router

import (
	"restaurant_manager/handler"
	"restaurant_manager/middleware"
	"restaurant_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, payments *handler.PaymentHandler) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Get("/me", middleware.Protected(), handler.Me)

	payments.RegisterRoutes(v1.Group("/payments", logger.New()))

	menu := v1.Group("/menu", logger.New())
	menu.Get("/", handler.GetMenuItems)
	menu.Get("/slug/:slug", handler.GetMenuItemBySlug)
	menu.Get("/:menuItemId", validate.GetById("menuItemId"), handler.GetMenuItemById)
	menu.Post("/", middleware.Protected(), validate.CreateMenuItem(), handler.CreateMenuItem)
	menu.Put("/:menuItemId", middleware.Protected(), validate.EditMenuItem("menuItemId"), handler.EditMenuItem)
	menu.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteMenuItems)
	menu.Patch("/:menuItemId/availability", middleware.Protected(), validate.GetById("menuItemId"), handler.ToggleMenuItemAvailability)
	menu.Post("/upload-signature", middleware.Protected(), handler.GenerateUploadSignature)

	order := v1.Group("/orders", logger.New())
	order.Get("/", handler.GetOrders)
	order.Post("/", validate.CreateOrder(), handler.CreateOrder)
	order.Get("/:orderId", validate.GetById("orderId"), handler.GetOrderById)
	order.Patch("/:orderId/status", middleware.Protected(), validate.UpdateOrderStatus("orderId"), handler.UpdateOrderStatus)
	order.Get("/:orderId/payment-qr", validate.GetById("orderId"), handler.GetOrderPaymentQR)

	customer := v1.Group("/customers", logger.New())
	customer.Get("/", middleware.Protected(), handler.GetCustomers)
	customer.Get("/:customerId", middleware.Protected(), validate.GetById("customerId"), handler.GetCustomerById)
	customer.Get("/:customerId/orders", middleware.Protected(), validate.GetById("customerId"), handler.GetCustomerOrders)
	customer.Post("/", middleware.Protected(), validate.CreateCustomer(), handler.CreateCustomer)
	customer.Put("/:customerId", middleware.Protected(), validate.EditCustomer("customerId"), handler.EditCustomer)
	customer.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteCustomers)

	staff := v1.Group("/staff", logger.New())
	staff.Get("/", middleware.Protected(), handler.GetStaff)
	staff.Get("/stats/overview", middleware.Protected(), handler.GetStaffStats)
	staff.Get("/:staffId", middleware.Protected(), validate.GetById("staffId"), handler.GetStaffById)
	staff.Post("/", middleware.Protected(), validate.CreateStaff(), handler.CreateStaff)
	staff.Put("/:staffId", middleware.Protected(), validate.EditStaff("staffId"), handler.EditStaff)
	staff.Patch("/:staffId/active", middleware.Protected(), validate.GetById("staffId"), handler.ToggleStaffActive)
	staff.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteStaff)

	inventory := v1.Group("/inventory", logger.New())
	inventory.Get("/", middleware.Protected(), handler.GetInventoryItems)
	inventory.Get("/stats/overview", middleware.Protected(), handler.GetInventoryStats)
	inventory.Get("/low-stock", middleware.Protected(), handler.GetLowStockItems)
	inventory.Get("/:itemId", middleware.Protected(), validate.GetById("itemId"), handler.GetInventoryItemById)
	inventory.Post("/", middleware.Protected(), validate.CreateInventoryItem(), handler.CreateInventoryItem)
	inventory.Put("/:itemId", middleware.Protected(), validate.EditInventoryItem("itemId"), handler.EditInventoryItem)
	inventory.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteInventoryItems)

	statistic := v1.Group("/statistic", logger.New())
	statistic.Get("/", middleware.Protected(), handler.GetDashboardStats)
	statistic.Get("/revenue", middleware.Protected(), handler.GetRevenueSeries)
	statistic.Get("/top-items", middleware.Protected(), handler.GetTopMenuItems)

	ws := app.Group("/ws")
	ws.Use(func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	ws.Get("/orders", websocket.New(handler.OrderFeed))
}
