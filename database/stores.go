package database

import (
	"time"

	"gorm.io/gorm"

	"kage_vpn_store/constants"
	"kage_vpn_store/model"
	"kage_vpn_store/workflow"
)

// GormStore adapts the gorm connection to the workflow store contracts. The
// zero value is not usable; build one with NewStore.
type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Orders() workflow.OrderStore {
	return &orderStore{db: s.db}
}

func (s *GormStore) Payments() workflow.PaymentStore {
	return &paymentStore{db: s.db}
}

func (s *GormStore) Users() workflow.UserStore {
	return &userStore{db: s.db}
}

func (s *GormStore) Transaction(fn func(workflow.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

type orderStore struct {
	db *gorm.DB
}

func (s *orderStore) Create(order *model.Order) error {
	return s.db.Create(order).Error
}

func (s *orderStore) FindById(id uint) (*model.Order, error) {
	var order model.Order
	if err := s.db.Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderStore) FindByPublicCode(code string) (*model.Order, error) {
	var order model.Order
	if err := s.db.Preload("Items").Where("public_code = ?", code).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderStore) FindByUser(userId uint) (model.Orders, error) {
	var orders model.Orders
	if err := s.db.Preload("Items").
		Where("user_id = ?", userId).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderStore) LinkPayment(orderId, paymentId uint) (bool, error) {
	res := s.db.Model(&model.Order{}).
		Where("id = ? AND payment_id IS NULL", orderId).
		Updates(map[string]any{
			"status":     constants.ORDER_PAYMENT_SUBMITTED,
			"payment_id": paymentId,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *orderStore) UpdateStatus(orderId uint, status string) error {
	return s.db.Model(&model.Order{}).Where("id = ?", orderId).Update("status", status).Error
}

func (s *orderStore) SetCredentials(orderId uint, creds *model.VPNCredentials, status string) error {
	return s.db.Model(&model.Order{}).Where("id = ?", orderId).Updates(map[string]any{
		"status":              status,
		"vpn_username":        creds.Username,
		"vpn_password":        creds.Password,
		"vpn_server_info":     creds.ServerInfo,
		"vpn_expiry_date":     creds.ExpiryDate,
		"vpn_code":            creds.Code,
		"vpn_delivered_at":    creds.DeliveredAt,
		"vpn_delivered_by":    creds.DeliveredBy,
		"vpn_expiry_notified": false,
	}).Error
}

type paymentStore struct {
	db *gorm.DB
}

func (s *paymentStore) Create(payment *model.Payment) error {
	return s.db.Create(payment).Error
}

func (s *paymentStore) FindByPublicCode(code string) (*model.Payment, error) {
	var payment model.Payment
	if err := s.db.Where("public_code = ?", code).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *paymentStore) FindByTransactionId(transactionId string) (*model.Payment, error) {
	var payment model.Payment
	if err := s.db.Where("transaction_id = ?", transactionId).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *paymentStore) UpdateVerification(paymentId uint, status string, verifiedBy uint, notes string, verifiedAt time.Time) error {
	return s.db.Model(&model.Payment{}).Where("id = ?", paymentId).Updates(map[string]any{
		"status":             status,
		"verified_at":        verifiedAt,
		"verified_by":        verifiedBy,
		"verification_notes": notes,
	}).Error
}

type userStore struct {
	db *gorm.DB
}

func (s *userStore) FindById(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
