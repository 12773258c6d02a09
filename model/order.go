package model

import "time"

type Order struct {
	DTO
	PublicCode string      `gorm:"unique;size:20" json:"orderCode"` // ORD-XXXXXXXX
	UserId     uint        `gorm:"not null;index" json:"userId"`
	User       User        `gorm:"foreignKey:UserId" json:"-"`
	Items      []OrderItem `gorm:"foreignKey:OrderId" json:"items"`
	Total      float64     `gorm:"not null" json:"total"`
	Status     string      `gorm:"default:pending_payment" json:"status"`
	// Set exactly once when the customer submits a payment. The link is guarded by
	// an atomic "payment_id IS NULL" update, never by a read-then-write.
	PaymentId *uint    `json:"paymentId,omitempty"`
	Payment   *Payment `gorm:"foreignKey:PaymentId" json:"-"`

	VPNCredentials *VPNCredentials `gorm:"embedded;embeddedPrefix:vpn_" json:"vpnCredentials,omitempty"`
}

type Orders []Order

type OrderItem struct {
	DTO
	OrderId       uint    `gorm:"not null;index" json:"-"`
	ProductName   string  `gorm:"not null" json:"productName"`
	DurationLabel string  `json:"durationLabel"`
	UnitPrice     float64 `gorm:"not null" json:"unitPrice"`
	Quantity      int     `gorm:"not null" json:"quantity"`
}

type VPNCredentials struct {
	Username    string     `json:"username,omitempty"`
	Password    string     `json:"password,omitempty"`
	ServerInfo  string     `json:"serverInfo,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	Code        string     `json:"code,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	DeliveredBy uint       `json:"deliveredBy,omitempty"`
	// Set by the expiry reminder job so a customer is only warned once.
	ExpiryNotified bool `gorm:"default:false" json:"-"`
}

type OrderItemInput struct {
	ProductName   string  `validate:"required" json:"productName"`
	DurationLabel string  `json:"durationLabel"`
	UnitPrice     float64 `validate:"gte=0" json:"unitPrice"`
	Quantity      int     `validate:"required,gte=1" json:"quantity"`
}

type CreateOrderInput struct {
	UserId uint             `validate:"required,gt=0" json:"userId"`
	Items  []OrderItemInput `validate:"required,min=1,dive" json:"items"`
	Total  float64          `validate:"gte=0" json:"total"`
	Status string           `json:"status"`
}

type DeliverCredentialsInput struct {
	OrderId        string           `validate:"required" json:"orderId"`
	VPNCredentials CredentialsInput `validate:"required" json:"vpnCredentials"`
}

type CredentialsInput struct {
	Username   string     `json:"username"`
	Password   string     `json:"password"`
	ServerInfo string     `json:"serverInfo"`
	ExpiryDate *time.Time `json:"expiryDate"`
	Code       string     `json:"code"`
}
