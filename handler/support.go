package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kage_vpn_store/constants"
	"kage_vpn_store/database"
	"kage_vpn_store/helper"
	"kage_vpn_store/model"
	"kage_vpn_store/utils"
)

// SendSupportMessage accepts a message from a visitor or a logged-in
// customer. The first message of a conversation gets a fresh conversation id
// which the client keeps for follow-ups.
func SendSupportMessage(c *fiber.Ctx) error {
	input, ok := c.Locals("SendSupportMessageInput").(*model.SendSupportMessageInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	conversationId := input.ConversationId
	if conversationId == "" {
		conversationId = uuid.New().String()
	}

	message := model.SupportMessage{
		ConversationId: conversationId,
		Sender:         constants.SENDER_USER,
		Name:           input.Name,
		Email:          input.Email,
		Message:        input.Message,
		Status:         constants.MESSAGE_NEW,
		IP:             c.IP(),
		UserAgent:      c.Get("User-Agent"),
	}

	// Attach the account when the sender is logged in; the form name/email
	// then only serve as display hints.
	if claim, user, _ := helper.GetInfoUserFromToken(c); user != nil {
		message.UserId = &claim.UserId
		if message.Name == "" {
			message.Name = user.Name
		}
		if message.Email == "" {
			message.Email = user.Email
		}
	}

	if err := database.DB.Create(&message).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        "Message sent",
		"conversationId": conversationId,
		"data":           message,
	})
}

// GetConversation returns every message of one conversation, oldest first.
func GetConversation(c *fiber.Ctx) error {
	conversationId := c.Params("conversationId")
	if conversationId == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_REQUIRED_FIELDS, errors.New("conversationId is required"))
	}

	var messages model.SupportMessages
	if err := database.DB.
		Where("conversation_id = ?", conversationId).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, messages)
}

func GetSupportMessagesAdmin(c *fiber.Ctx) error {
	pagination, _ := c.Locals("pagination").(model.Pagination)

	var messages model.SupportMessages
	query := database.DB.Order("created_at desc")
	countQuery := database.DB.Model(&model.SupportMessage{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}
	if conversationId := c.Query("conversationId"); conversationId != "" {
		query = query.Where("conversation_id = ?", conversationId)
		countQuery = countQuery.Where("conversation_id = ?", conversationId)
	}

	var totalCount int64
	countQuery.Count(&totalCount)

	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).Find(&messages).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"data":       messages,
		"totalCount": totalCount,
	})
}

// AdminReply appends an admin message to an existing conversation and marks
// the customer's messages in it as read.
func AdminReply(c *fiber.Ctx) error {
	input, ok := c.Locals("AdminReplyInput").(*model.AdminReplyInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	var exists model.SupportMessage
	if err := database.DB.Where("conversation_id = ?", input.ConversationId).First(&exists).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Conversation not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, err)
	}

	claim, _ := c.Locals("claim").(model.TokenClaim)
	reply := model.SupportMessage{
		ConversationId: input.ConversationId,
		Sender:         constants.SENDER_ADMIN,
		UserId:         &claim.UserId,
		Message:        input.Message,
		Status:         constants.MESSAGE_READ,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		return tx.Model(&model.SupportMessage{}).
			Where("conversation_id = ? AND sender = ?", input.ConversationId, constants.SENDER_USER).
			Update("status", constants.MESSAGE_READ).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Reply sent",
		"data":    reply,
	})
}

func UpdateMessageStatus(c *fiber.Ctx) error {
	input, ok := c.Locals("UpdateMessageStatusInput").(*model.UpdateMessageStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	result := database.DB.Model(&model.SupportMessage{}).
		Where("id = ?", input.Id).
		Update("status", input.Status)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":     input.Id,
		"status": input.Status,
	})
}
