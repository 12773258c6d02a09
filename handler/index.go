package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/constants"
	"kage_vpn_store/utils"
	"kage_vpn_store/workflow"
)

// Workflow is the order-payment-delivery state machine, wired once from main.
// It owns its own notification dispatcher.
var Workflow *workflow.Service

func Init(service *workflow.Service) {
	Workflow = service
}

func statusForCode(code string) int {
	switch code {
	case workflow.CodeValidation:
		return fiber.StatusBadRequest
	case workflow.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case workflow.CodeForbidden:
		return fiber.StatusForbidden
	case workflow.CodeNotFound:
		return fiber.StatusNotFound
	case workflow.CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// workflowError maps a workflow failure onto the response envelope. Anything
// that is not a typed workflow error is an unexpected server fault.
func workflowError(c *fiber.Ctx, err error) error {
	var wfErr *workflow.Error
	if errors.As(err, &wfErr) {
		return utils.ErrorResponse(c, statusForCode(wfErr.Code), wfErr.Message, nil)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}
