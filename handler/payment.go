package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/constants"
	"kage_vpn_store/helper"
	"kage_vpn_store/model"
	"kage_vpn_store/utils"
)

// SubmitPayment records the customer's manual payment claim against an order.
// Accepts JSON, or multipart form data when a screenshot of the transfer is
// attached; the screenshot goes to cloudinary first so only a URL is stored.
func SubmitPayment(c *fiber.Ctx) error {
	input, ok := c.Locals("SubmitPaymentInput").(*model.SubmitPaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil)
	}

	if file, err := c.FormFile("paymentScreenshot"); err == nil && file != nil {
		url, err := helper.UploadPaymentScreenshot(file)
		if err != nil {
			// The claim still stands without its screenshot.
			log.Printf("screenshot upload for order %s failed: %v", input.OrderId, err)
		} else {
			input.ScreenshotUrl = url
		}
	}

	payment, err := Workflow.SubmitPayment(claim.UserId, *input)
	if err != nil {
		return workflowError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Payment submitted successfully",
		"paymentId":     payment.PublicCode,
		"transactionId": payment.TransactionId,
	})
}
