package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/constants"
	"kage_vpn_store/database"
	"kage_vpn_store/model"
	"kage_vpn_store/utils"
)

// VerifyPayment applies the admin's approve/reject decision to a submitted
// payment and its order.
func VerifyPayment(c *fiber.Ctx) error {
	input, ok := c.Locals("VerifyPaymentInput").(*model.VerifyPaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, errors.New("parse data to locals fail"))
	}

	claim, ok := c.Locals("claim").(model.TokenClaim)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", nil)
	}

	status, err := Workflow.VerifyPayment(claim.UserId, *input)
	if err != nil {
		return workflowError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Payment verification completed",
		"paymentId": input.PaymentId,
		"status":    status,
	})
}

// DeliverVPN attaches VPN credentials to a verified order and completes it.
func DeliverVPN(c *fiber.Ctx) error {
	input, ok := c.Locals("DeliverCredentialsInput").(*model.DeliverCredentialsInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, errors.New("parse data to locals fail"))
	}

	claim, ok := c.Locals("claim").(model.TokenClaim)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", nil)
	}

	order, err := Workflow.DeliverCredentials(claim.UserId, *input)
	if err != nil {
		return workflowError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "VPN credentials delivered successfully",
		"orderId": order.PublicCode,
	})
}

func GetOrdersAdmin(c *fiber.Ctx) error {
	pagination, _ := c.Locals("pagination").(model.Pagination)

	var orders model.Orders
	query := database.DB.Preload("Items").Preload("User").Order("created_at desc")
	countQuery := database.DB.Model(&model.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}

	var totalCount int64
	countQuery.Count(&totalCount)

	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       orders,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

func GetPaymentsAdmin(c *fiber.Ctx) error {
	pagination, _ := c.Locals("pagination").(model.Pagination)

	var payments model.Payments
	query := database.DB.Order("submitted_at desc")
	countQuery := database.DB.Model(&model.Payment{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}

	var totalCount int64
	countQuery.Count(&totalCount)

	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).Find(&payments).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       payments,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}
