package workflow

import (
	"time"

	"kage_vpn_store/model"
)

// Store contracts. Implementations report a missing row with
// gorm.ErrRecordNotFound and a unique-index violation with gorm.ErrDuplicatedKey
// so the service can translate them without knowing the engine.

type OrderStore interface {
	Create(order *model.Order) error
	FindById(id uint) (*model.Order, error)
	FindByPublicCode(code string) (*model.Order, error)
	FindByUser(userId uint) (model.Orders, error)
	// LinkPayment attaches a payment to an order only while payment_id is still
	// NULL, and moves the order to payment_submitted in the same statement.
	// Returns false when another payment won the race.
	LinkPayment(orderId, paymentId uint) (bool, error)
	UpdateStatus(orderId uint, status string) error
	SetCredentials(orderId uint, creds *model.VPNCredentials, status string) error
}

type PaymentStore interface {
	Create(payment *model.Payment) error
	FindByPublicCode(code string) (*model.Payment, error)
	FindByTransactionId(transactionId string) (*model.Payment, error)
	UpdateVerification(paymentId uint, status string, verifiedBy uint, notes string, verifiedAt time.Time) error
}

type UserStore interface {
	FindById(id uint) (*model.User, error)
}

type Store interface {
	Orders() OrderStore
	Payments() PaymentStore
	Users() UserStore
	// Transaction runs fn against a store bound to one transaction; any error
	// rolls every write back.
	Transaction(fn func(Store) error) error
}
