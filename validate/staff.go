package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateStaff() fiber.Handler {
	return body[model.CreateStaffInput]("inputCreateStaff")
}

func EditStaff(key string) fiber.Handler {
	return editBody[model.EditStaffInput](key, "inputEditStaff")
}
