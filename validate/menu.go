package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateMenuItem() fiber.Handler {
	return body[model.CreateMenuItemInput]("inputCreateMenuItem")
}

func EditMenuItem(key string) fiber.Handler {
	return editBody[model.EditMenuItemInput](key, "inputEditMenuItem")
}
