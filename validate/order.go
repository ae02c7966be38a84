package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return body[model.CreateOrderInput]("inputCreateOrder")
}

func UpdateOrderStatus(key string) fiber.Handler {
	return editBody[model.UpdateOrderStatusInput](key, "inputOrderStatus")
}
