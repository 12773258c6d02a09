package model

import "time"

type Payment struct {
	DTO
	PublicCode string `gorm:"unique;size:20" json:"paymentCode"` // PAY-XXXXXXXXXX
	// One payment per order, enforced by the index rather than application reads.
	OrderId uint  `gorm:"not null;uniqueIndex" json:"orderId"`
	Order   Order `gorm:"foreignKey:OrderId" json:"-"`
	UserId  uint  `gorm:"not null;index" json:"userId"`
	// External payment-rail reference. Globally unique across every payment ever
	// submitted; this is what stops a transaction id from being replayed.
	TransactionId string  `gorm:"uniqueIndex;not null" json:"transactionId"`
	Method        string  `gorm:"not null" json:"paymentMethod"` // KPAY, WAVE, BANK...
	SenderName    string  `gorm:"not null" json:"senderName"`
	SenderPhone   string  `gorm:"not null" json:"senderPhone"`
	Amount        float64 `json:"amount"`
	ScreenshotUrl string  `json:"paymentScreenshot,omitempty"`
	Status        string  `gorm:"default:pending_verification" json:"status"`

	VerifiedAt        *time.Time `json:"verifiedAt,omitempty"`
	VerifiedBy        *uint      `json:"verifiedBy,omitempty"`
	VerificationNotes string     `json:"verificationNotes,omitempty"`
	SubmittedAt       time.Time  `json:"submittedAt"`
}

type Payments []Payment

type SubmitPaymentInput struct {
	OrderId       string   `validate:"required" json:"orderId"`
	PaymentMethod string   `validate:"required" json:"paymentMethod"`
	TransactionId string   `validate:"required" json:"transactionId"`
	SenderName    string   `validate:"required" json:"senderName"`
	SenderPhone   string   `validate:"required" json:"senderPhone"`
	Amount        *float64 `validate:"omitempty,gte=0" json:"amount"`
	ScreenshotUrl string   `json:"paymentScreenshot"`
}

type VerifyPaymentInput struct {
	PaymentId string `validate:"required" json:"paymentId"`
	Status    string `validate:"required" json:"status"` // approved, rejected
	Notes     string `json:"notes"`
}
