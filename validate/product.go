package validate

import (
	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/model"
)

func CreateProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate(c, &model.CreateProductInput{}, "CreateProductInput")
	}
}

func UpdateProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate(c, &model.UpdateProductInput{}, "UpdateProductInput")
	}
}
