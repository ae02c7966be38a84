package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateInventoryItem() fiber.Handler {
	return body[model.CreateInventoryItemInput]("inputCreateInventoryItem")
}

func EditInventoryItem(key string) fiber.Handler {
	return editBody[model.EditInventoryItemInput](key, "inputEditInventoryItem")
}
