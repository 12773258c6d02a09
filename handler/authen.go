package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"github.com/jordan-wright/email"

	"kage_vpn_store/constants"
	"kage_vpn_store/database"
	"kage_vpn_store/helper"
	"kage_vpn_store/model"
	"kage_vpn_store/utils"
)

func setAuthCookies(c *fiber.Ctx, token, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Strict",
		Secure:   os.Getenv("APP_ENV") == "production",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		SameSite: "Strict",
		Secure:   os.Getenv("APP_ENV") == "production",
		Path:     "/",
	})
}

func Login(c *fiber.Ctx) error {
	loginInput, ok := c.Locals("LoginInput").(*model.LoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	emailAddr := strings.ToLower(loginInput.Email)

	allowed, remaining, retryAfter, err := helper.Limiter.Check(c.Context(), emailAddr)
	if err != nil {
		log.Printf("login limiter check failed: %v", err)
	}
	if !allowed {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message":     fmt.Sprintf("Too many failed attempts. Please wait %d minutes", int(retryAfter.Minutes())+1),
			"lockoutTime": int(retryAfter.Minutes()) + 1,
		})
	}

	user, err := helper.GetUserByEmail(emailAddr)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if user == nil {
		helper.Limiter.Record(c.Context(), emailAddr, false)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message":           constants.INVALID_CREDENTIALS,
			"remainingAttempts": remaining - 1,
		})
	}

	// Admins never come in through the storefront login.
	if user.Role == constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("admin on customer login"))
	}

	if !user.IsActive {
		helper.Limiter.Record(c.Context(), emailAddr, false)
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, errors.New("account disabled"))
	}

	if !helper.CheckPasswordHash(loginInput.Password, user.Password) {
		helper.Limiter.Record(c.Context(), emailAddr, false)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message":           constants.INVALID_CREDENTIALS,
			"remainingAttempts": remaining - 1,
		})
	}

	helper.Limiter.Record(c.Context(), emailAddr, true)

	return issueTokens(c, user)
}

// AdminLogin is the back-office entry; the same credential checks, but only
// admin accounts pass.
func AdminLogin(c *fiber.Ctx) error {
	loginInput, ok := c.Locals("LoginInput").(*model.LoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	emailAddr := strings.ToLower(loginInput.Email)

	allowed, _, retryAfter, err := helper.Limiter.Check(c.Context(), emailAddr)
	if err != nil {
		log.Printf("login limiter check failed: %v", err)
	}
	if !allowed {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message":     fmt.Sprintf("Too many failed attempts. Please wait %d minutes", int(retryAfter.Minutes())+1),
			"lockoutTime": int(retryAfter.Minutes()) + 1,
		})
	}

	user, err := helper.GetUserByEmail(emailAddr)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if user == nil || user.Role != constants.ROLE_ADMIN || !user.IsActive ||
		!helper.CheckPasswordHash(loginInput.Password, user.Password) {
		helper.Limiter.Record(c.Context(), emailAddr, false)
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, errors.New("invalid admin credentials"))
	}

	helper.Limiter.Record(c.Context(), emailAddr, true)

	return issueTokens(c, user)
}

func issueTokens(c *fiber.Ctx, user *model.User) error {
	tokenClaim := model.TokenClaim{
		UserId: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	setAuthCookies(c, token, refreshToken)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"isActive": user.IsActive,
		},
	})
}

// Logout blacklists the presented token for the rest of its lifetime and
// clears the auth cookies. An already invalid token still gets a clean logout.
func Logout(c *fiber.Ctx) error {
	token := c.Cookies("access_token")
	if token == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if token != "" {
		if parsed, err := helper.ParseToken(token); err == nil && parsed.Valid {
			if claims, ok := parsed.Claims.(jwt.MapClaims); ok {
				if exp, ok := claims["exp"].(float64); ok {
					ttl := time.Until(time.Unix(int64(exp), 0))
					helper.Blacklist.Add(c.Context(), token, ttl)
				}
				if email, ok := claims["email"].(string); ok {
					log.Printf("User logged out: %s", email)
				}
			}
		} else {
			log.Println("Invalid token during logout, proceeding with cleanup")
		}
	}

	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", HTTPOnly: true, MaxAge: -1, Path: "/"})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", HTTPOnly: true, MaxAge: -1, Path: "/"})

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func RegisterUser(c *fiber.Ctx) error {
	db := database.DB

	userInput, ok := c.Locals("RegisterUser").(*model.RegisterUserInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil, "general")
	}

	existing, err := helper.GetUserByEmail(strings.ToLower(userInput.Email))
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err, "email")
	}
	if existing != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Email is already registered", nil, "email")
	}

	hash, err := helper.HashPassword(userInput.Password)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err, "password")
	}

	var newUser model.User
	copier.Copy(&newUser, userInput)
	newUser.Email = strings.ToLower(userInput.Email)
	newUser.Password = hash
	newUser.Role = constants.ROLE_CUSTOMER
	newUser.IsActive = true

	if err := db.Create(&newUser).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"id":    newUser.ID,
		"name":  newUser.Name,
		"email": newUser.Email,
	})
}

func Me(c *fiber.Ctx) error {
	_, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please log in", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func ForgotPassword(c *fiber.Ctx) error {
	db := database.DB
	emailInput, ok := c.Locals("EmailForgotPassword").(*model.ForgotPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	var user model.User
	if err := db.Where("email = ?", strings.ToLower(emailInput.Email)).First(&user).Error; err != nil {
		// Do not reveal whether the address exists.
		return c.JSON(fiber.Map{"message": "If the email exists, a reset link has been sent"})
	}

	tokenBytes := make([]byte, 16)
	if _, err := rand.Read(tokenBytes); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	token := hex.EncodeToString(tokenBytes)

	resetToken := model.PasswordResetToken{
		UserId:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := db.Create(&resetToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", os.Getenv("APP_URL"), token)
	e := email.NewEmail()
	e.From = os.Getenv("FROM_EMAIL")
	e.To = []string{user.Email}
	e.Subject = "Password Reset - Kage VPN Store"
	e.Text = []byte(fmt.Sprintf("Click the link to reset your password: %s\nThe link expires in 1 hour.", resetLink))
	smtpAddr := fmt.Sprintf("%s:%s", os.Getenv("SMTP_HOST"), os.Getenv("SMTP_PORT"))
	if err := e.Send(smtpAddr, smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), os.Getenv("SMTP_HOST"))); err != nil {
		log.Printf("password reset email to %s failed: %v", user.Email, err)
	}

	return c.JSON(fiber.Map{"message": "If the email exists, a reset link has been sent"})
}

func ResetPassword(c *fiber.Ctx) error {
	db := database.DB
	resetInput, ok := c.Locals("ResetPassword").(*model.ResetPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	var resetToken model.PasswordResetToken
	if err := db.Where("token = ? AND expires_at > ?", resetInput.Token, time.Now()).First(&resetToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid or expired token", err)
	}

	var user model.User
	if err := db.First(&user, resetToken.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	hash, err := helper.HashPassword(resetInput.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	user.Password = hash
	if err := db.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	db.Delete(&resetToken)

	return c.JSON(fiber.Map{"message": "Password has been reset"})
}

func RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing refresh token", nil)
	}

	token, err := helper.ParseToken(refreshToken)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", nil)
	}
	userIdFloat, _ := claims["userId"].(float64)

	var user model.User
	if err := database.DB.First(&user, uint(userIdFloat)).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}
	if !user.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, nil)
	}

	return issueTokens(c, &user)
}
