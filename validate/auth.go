package validate

import (
	"github.com/gofiber/fiber/v2"

	"kage_vpn_store/model"
)

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate(c, &model.LoginInput{}, "LoginInput")
	}
}

func RegisterUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate(c, &model.RegisterUserInput{}, "RegisterUser")
	}
}

func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate(c, &model.ForgotPasswordRequest{}, "EmailForgotPassword")
	}
}

func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate(c, &model.ResetPasswordRequest{}, "ResetPassword")
	}
}
