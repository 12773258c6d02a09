package database

import (
	"log"
	"os"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kage_vpn_store/constants"
	"kage_vpn_store/model"
)

func SeedData(db *gorm.DB) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@kagevpn.com"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "changeme123"
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 10)
	hash := string(bytes)
	if err != nil {
		log.Println("failed to hash admin password:", err)
		return
	}

	admin := model.User{Name: "Admin", Email: adminEmail, Password: hash, Role: constants.ROLE_ADMIN, IsActive: true}
	if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed admin account:", err)
	}

	products := []model.Product{
		{Name: "Kage VPN Basic", DurationLabel: "1 Month", Price: 10000, Description: "1 device, all servers"},
		{Name: "Kage VPN Basic", DurationLabel: "3 Months", Price: 27000, Description: "1 device, all servers"},
		{Name: "Kage VPN Premium", DurationLabel: "6 Months", Price: 50000, Description: "3 devices, priority servers"},
		{Name: "Kage VPN Premium", DurationLabel: "12 Months", Price: 90000, Description: "3 devices, priority servers"},
	}
	for _, product := range products {
		product.Slug = slug.Make(product.Name + " " + product.DurationLabel)
		product.IsActive = true
		if err := db.Where(model.Product{Slug: product.Slug}).FirstOrCreate(&product).Error; err != nil {
			log.Println("failed to seed product:", product.Slug, "error:", err)
		}
	}

	setting := model.Setting{
		StoreName:       "Kage VPN Store",
		PaymentAccounts: "KPay 09xxxxxxxxx (U Kage) / Wave 09xxxxxxxxx",
		ContactEmail:    "info@kagevpn.com",
		ContactTelegram: "@kagevpn",
	}
	var count int64
	db.Model(&model.Setting{}).Count(&count)
	if count == 0 {
		if err := db.Create(&setting).Error; err != nil {
			log.Println("failed to seed settings:", err)
		}
	}
}
