package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateCustomer() fiber.Handler {
	return body[model.CreateCustomerInput]("inputCreateCustomer")
}

func EditCustomer(key string) fiber.Handler {
	return editBody[model.EditCustomerInput](key, "inputEditCustomer")
}
