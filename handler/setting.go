package handler

import (
	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/constants"
	"kage_vpn_store/database"
	"kage_vpn_store/model"
	"kage_vpn_store/utils"
)

// GetSettings exposes the storefront configuration the checkout page needs:
// payment account instructions, contact channels, maintenance flag.
func GetSettings(c *fiber.Ctx) error {
	var setting model.Setting
	if err := database.DB.First(&setting).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, setting)
}

type updateSettingsInput struct {
	StoreName       *string `json:"storeName"`
	MaintenanceMode *bool   `json:"maintenanceMode"`
	PaymentAccounts *string `json:"paymentAccounts"`
	ContactEmail    *string `json:"contactEmail"`
	ContactTelegram *string `json:"contactTelegram"`
}

func UpdateSettings(c *fiber.Ctx) error {
	var input updateSettingsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_REQUIRED_FIELDS, err)
	}

	var setting model.Setting
	if err := database.DB.First(&setting).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, err)
	}

	if input.StoreName != nil {
		setting.StoreName = *input.StoreName
	}
	if input.MaintenanceMode != nil {
		setting.MaintenanceMode = *input.MaintenanceMode
	}
	if input.PaymentAccounts != nil {
		setting.PaymentAccounts = *input.PaymentAccounts
	}
	if input.ContactEmail != nil {
		setting.ContactEmail = *input.ContactEmail
	}
	if input.ContactTelegram != nil {
		setting.ContactTelegram = *input.ContactTelegram
	}

	if err := database.DB.Save(&setting).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, setting)
}
