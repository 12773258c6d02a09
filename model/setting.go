package model

type Setting struct {
	DTO
	StoreName       string `gorm:"default:Kage VPN Store" json:"storeName"`
	MaintenanceMode bool   `gorm:"default:false" json:"maintenanceMode"`
	// Free-form payment instructions shown at checkout (KPay / Wave / bank accounts).
	PaymentAccounts string `json:"paymentAccounts"`
	ContactEmail    string `json:"contactEmail"`
	ContactTelegram string `json:"contactTelegram"`
}
