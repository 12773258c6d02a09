package validate

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/constants"
	"kage_vpn_store/model"
	"kage_vpn_store/utils"
)

func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.VerifyPaymentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_VERIFY_INPUT, err)
		}
		if input.PaymentId == "" || input.Status == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_VERIFY_INPUT, errors.New("paymentId and status are required"))
		}
		c.Locals("VerifyPaymentInput", &input)
		return c.Next()
	}
}

func DeliverCredentials() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.DeliverCredentialsInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_DELIVER_INPUT, err)
		}
		if input.OrderId == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_DELIVER_INPUT, errors.New("orderId and vpnCredentials are required"))
		}
		c.Locals("DeliverCredentialsInput", &input)
		return c.Next()
	}
}
