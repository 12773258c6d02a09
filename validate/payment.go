package validate

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/constants"
	"kage_vpn_store/model"
	"kage_vpn_store/utils"
)

// SubmitPayment accepts either a JSON body or a multipart form (when the
// customer attaches a payment screenshot). The uploaded file itself is handled
// by the handler; only the fields are validated here.
func SubmitPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentType := string(c.Request().Header.ContentType())

		var input model.SubmitPaymentInput
		if strings.Contains(contentType, "multipart/form-data") {
			input.OrderId = c.FormValue("orderId")
			input.PaymentMethod = c.FormValue("paymentMethod")
			input.TransactionId = c.FormValue("transactionId")
			input.SenderName = c.FormValue("senderName")
			input.SenderPhone = c.FormValue("senderPhone")
			if raw := c.FormValue("amount"); raw != "" {
				amount, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid amount", err, "amount")
				}
				input.Amount = &amount
			}
		} else {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_REQUIRED_FIELDS, err)
			}
		}

		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_REQUIRED_FIELDS, err)
		}

		c.Locals("SubmitPaymentInput", &input)
		return c.Next()
	}
}
