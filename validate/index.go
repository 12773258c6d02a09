package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/model"
)

var validate = validator.New()

// parseAndValidate is the shared body → struct → Locals step every input
// middleware goes through.
func parseAndValidate(c *fiber.Ctx, input any, localsKey string) error {
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid input %s", err.Error()),
		})
	}

	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Locals(localsKey, input)
	return c.Next()
}

func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p model.Pagination
		if limit := c.QueryInt("limit", 0); limit > 0 {
			p.Limit = &limit
		}
		if page := c.QueryInt("page", 0); page > 0 {
			p.Page = &page
		}
		c.Locals("pagination", p)
		return c.Next()
	}
}
