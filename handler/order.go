package handler

import (
	"encoding/base64"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/database"
	"kage_vpn_store/helper"
	"kage_vpn_store/model"
	"kage_vpn_store/utils"
)

func CreateOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("CreateOrderInput").(*model.CreateOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot read validated input", errors.New("parse data to locals fail"))
	}

	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil)
	}

	// A customer can only create orders for themselves.
	if input.UserId != claim.UserId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You cannot create orders for other users", nil)
	}

	order, err := Workflow.CreateOrder(claim.UserId, *input)
	if err != nil {
		return workflowError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"orderId": order.PublicCode,
		"order":   order,
	})
}

func GetMyOrders(c *fiber.Ctx) error {
	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please log in", nil)
	}

	orders, err := Workflow.MyOrders(claim.UserId)
	if err != nil {
		return workflowError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// GetOrderDetail returns one order together with the store's payment
// instructions and a QR of the order code the customer can attach to their
// transfer note.
func GetOrderDetail(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	claim, user, isAdmin := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please log in", nil)
	}

	order, err := Workflow.GetOrder(claim.UserId, isAdmin, orderCode)
	if err != nil {
		return workflowError(c, err)
	}

	qrBase64 := ""
	qrBytes, err := utils.GenerateQRCode(order.PublicCode, 400)
	if err != nil {
		log.Printf("QR generation for order %s failed: %v", order.PublicCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	var setting model.Setting
	if err := database.DB.First(&setting).Error; err != nil {
		// Instructions are advisory on this page; the order itself still renders.
		log.Printf("loading settings for order %s failed: %v", order.PublicCode, err)
	}

	response := fiber.Map{
		"orderCode":       order.PublicCode,
		"items":           order.Items,
		"total":           order.Total,
		"status":          order.Status,
		"createdAt":       order.CreatedAt,
		"qrCode":          qrBase64,
		"paymentAccounts": setting.PaymentAccounts,
	}
	// The embedded columns exist on every row; only delivered orders carry
	// actual credentials.
	if order.VPNCredentials != nil && order.VPNCredentials.DeliveredAt != nil {
		response["vpnCredentials"] = order.VPNCredentials
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}
