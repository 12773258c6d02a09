package validate

import (
	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/model"
)

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate(c, &model.CreateOrderInput{}, "CreateOrderInput")
	}
}
