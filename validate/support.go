package validate

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/constants"
	"kage_vpn_store/model"
	"kage_vpn_store/utils"
)

func SendSupportMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate(c, &model.SendSupportMessageInput{}, "SendSupportMessageInput")
	}
}

func AdminReply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AdminReplyInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_REPLY_INPUT, err)
		}
		if input.ConversationId == "" || input.Message == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_REPLY_INPUT, errors.New("conversationId and message are required"))
		}
		c.Locals("AdminReplyInput", &input)
		return c.Next()
	}
}

func UpdateMessageStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate(c, &model.UpdateMessageStatusInput{}, "UpdateMessageStatusInput")
	}
}
