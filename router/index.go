package router

import (
	"kage_vpn_store/handler"
	"kage_vpn_store/middleware"
	"kage_vpn_store/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())

	auth := api.Group("/auth")
	auth.Post("/register", validate.RegisterUser(), handler.RegisterUser)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Get("/me", middleware.Protected(), handler.Me)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	// Storefront. Checkout closes while maintenance mode is on, browsing stays up.
	api.Get("/products", handler.GetProducts)
	api.Get("/settings", handler.GetSettings)

	orders := api.Group("/orders", middleware.Protected())
	orders.Post("/", middleware.Maintenance(), validate.CreateOrder(), handler.CreateOrder)
	orders.Get("/", handler.GetMyOrders)
	orders.Get("/:orderCode", handler.GetOrderDetail)

	payment := api.Group("/payment", middleware.Protected())
	payment.Post("/submit", middleware.Maintenance(), validate.SubmitPayment(), handler.SubmitPayment)

	support := api.Group("/support")
	support.Post("/messages", middleware.OptionalJWT(), validate.SendSupportMessage(), handler.SendSupportMessage)
	support.Get("/messages/:conversationId", handler.GetConversation)

	// Admin console
	api.Post("/admin/login", validate.Login(), handler.AdminLogin)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminOnly())
	admin.Get("/orders", validate.Pagination(), handler.GetOrdersAdmin)
	admin.Get("/payments", validate.Pagination(), handler.GetPaymentsAdmin)
	admin.Post("/verify-payment", validate.VerifyPayment(), handler.VerifyPayment)
	admin.Post("/deliver-vpn", validate.DeliverCredentials(), handler.DeliverVPN)
	admin.Get("/support/messages", validate.Pagination(), handler.GetSupportMessagesAdmin)
	admin.Post("/support/reply", validate.AdminReply(), handler.AdminReply)
	admin.Put("/support/status", validate.UpdateMessageStatus(), handler.UpdateMessageStatus)
	admin.Get("/products", handler.GetProductsAdmin)
	admin.Post("/products", validate.CreateProduct(), handler.CreateProduct)
	admin.Put("/products/:id", validate.UpdateProduct(), handler.UpdateProduct)
	admin.Put("/settings", handler.UpdateSettings)
}
