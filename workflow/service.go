package workflow

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kage_vpn_store/constants"
	"kage_vpn_store/model"
	"kage_vpn_store/notify"
)

// Service is the single authority for order, payment and delivery state
// transitions. Handlers resolve the caller's identity and role; everything
// else - ownership, uniqueness, status mapping, side effects - happens here.
type Service struct {
	store    Store
	notifier notify.Dispatcher
}

func NewService(store Store, notifier notify.Dispatcher) *Service {
	return &Service{store: store, notifier: notifier}
}

// CreateOrder persists a new order in pending_payment. The client total is
// authoritative once accepted; it is only checked for consistency with the
// line items here and never recomputed afterwards (discount orders keep the
// total they were created with).
func (s *Service) CreateOrder(userId uint, input model.CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, ValidationError("Items, total and userId are required")
	}
	if input.Total < 0 {
		return nil, ValidationError("Total must not be negative")
	}

	var lineSum float64
	items := make([]model.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.ProductName == "" || item.Quantity < 1 || item.UnitPrice < 0 {
			return nil, ValidationError("Invalid order item")
		}
		lineSum += item.UnitPrice * float64(item.Quantity)
		items = append(items, model.OrderItem{
			ProductName:   item.ProductName,
			DurationLabel: item.DurationLabel,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
		})
	}
	if math.Abs(lineSum-input.Total) > 0.01 {
		return nil, ValidationError("Total does not match order items")
	}

	order := &model.Order{
		PublicCode: "ORD-" + uuid.New().String()[:8],
		UserId:     userId,
		Items:      items,
		Total:      input.Total,
		Status:     constants.ORDER_PENDING_PAYMENT,
	}
	if err := s.store.Orders().Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// SubmitPayment records a customer's payment claim and links it to the order.
// The precondition checks run in a fixed sequence so the caller is always told
// the first one that failed; the actual race (two submissions for one order,
// or one transaction id used twice) is closed by the unique indexes and the
// conditional payment_id update, not by these reads.
func (s *Service) SubmitPayment(userId uint, input model.SubmitPaymentInput) (*model.Payment, error) {
	if input.OrderId == "" || input.PaymentMethod == "" || input.TransactionId == "" ||
		input.SenderName == "" || input.SenderPhone == "" {
		return nil, ValidationError(constants.MISSING_REQUIRED_FIELDS)
	}

	order, err := s.store.Orders().FindByPublicCode(input.OrderId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(constants.ORDER_NOT_FOUND)
		}
		return nil, err
	}
	if order.UserId != userId {
		return nil, AuthorizationError(constants.NOT_YOUR_ORDER)
	}
	if order.PaymentId != nil {
		return nil, ConflictError(constants.PAYMENT_ALREADY_SUBMITTED)
	}
	if _, err := s.store.Payments().FindByTransactionId(input.TransactionId); err == nil {
		return nil, ConflictError(constants.TRANSACTION_ID_EXISTS)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	amount := order.Total
	if input.Amount != nil {
		amount = *input.Amount
	}

	payment := &model.Payment{
		PublicCode:    "PAY-" + uuid.New().String()[:10],
		OrderId:       order.ID,
		UserId:        order.UserId,
		TransactionId: input.TransactionId,
		Method:        input.PaymentMethod,
		SenderName:    input.SenderName,
		SenderPhone:   input.SenderPhone,
		Amount:        amount,
		ScreenshotUrl: input.ScreenshotUrl,
		Status:        constants.PAYMENT_PENDING_VERIFICATION,
		SubmittedAt:   time.Now(),
	}

	err = s.store.Transaction(func(tx Store) error {
		if err := tx.Payments().Create(payment); err != nil {
			return err
		}
		linked, err := tx.Orders().LinkPayment(order.ID, payment.ID)
		if err != nil {
			return err
		}
		if !linked {
			return ConflictError(constants.PAYMENT_ALREADY_SUBMITTED)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Two indexes can fire here; tell the caller which claim lost.
			if _, txErr := s.store.Payments().FindByTransactionId(input.TransactionId); txErr == nil {
				return nil, ConflictError(constants.TRANSACTION_ID_EXISTS)
			}
			return nil, ConflictError(constants.PAYMENT_ALREADY_SUBMITTED)
		}
		return nil, err
	}

	return payment, nil
}

// VerifyPayment applies the admin decision to the payment and its order in one
// transaction and, on approval, queues the confirmation email.
//
// Decision mapping, kept exactly as the storefront has always behaved:
// approved -> payment verified / order verified, rejected -> payment rejected /
// order cancelled. Any other decision string is written to the payment as-is
// while the order falls back to verified. That fallback is almost certainly a
// latent bug upstream, so it stays behind this one mapping function instead of
// being scattered across handlers.
func (s *Service) VerifyPayment(adminId uint, input model.VerifyPaymentInput) (string, error) {
	if input.PaymentId == "" || input.Status == "" {
		return "", ValidationError(constants.MISSING_VERIFY_INPUT)
	}

	payment, err := s.store.Payments().FindByPublicCode(input.PaymentId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", NotFoundError(constants.PAYMENT_NOT_FOUND)
		}
		return "", err
	}

	paymentStatus, orderStatus := mapDecision(input.Status)
	now := time.Now()

	err = s.store.Transaction(func(tx Store) error {
		if err := tx.Payments().UpdateVerification(payment.ID, paymentStatus, adminId, input.Notes, now); err != nil {
			return err
		}
		return tx.Orders().UpdateStatus(payment.OrderId, orderStatus)
	})
	if err != nil {
		return "", err
	}

	if input.Status == constants.DECISION_APPROVED {
		s.notifyOrderConfirmed(payment.OrderId)
	}

	return paymentStatus, nil
}

func mapDecision(decision string) (paymentStatus, orderStatus string) {
	switch decision {
	case constants.DECISION_APPROVED:
		return constants.PAYMENT_VERIFIED, constants.ORDER_VERIFIED
	case constants.DECISION_REJECTED:
		return constants.PAYMENT_REJECTED, constants.ORDER_CANCELLED
	default:
		return decision, constants.ORDER_VERIFIED
	}
}

// DeliverCredentials attaches VPN credentials to an order, completes it and
// queues the credential email. A repeat delivery for an already completed
// order is allowed on purpose: it is the admin's correction path, and it
// overwrites the stored credentials and sends a fresh email.
func (s *Service) DeliverCredentials(adminId uint, input model.DeliverCredentialsInput) (*model.Order, error) {
	creds := input.VPNCredentials
	if input.OrderId == "" || (creds.Code == "" && (creds.Username == "" || creds.Password == "")) {
		return nil, ValidationError(constants.MISSING_DELIVER_INPUT)
	}

	order, err := s.store.Orders().FindByPublicCode(input.OrderId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(constants.ORDER_NOT_FOUND)
		}
		return nil, err
	}

	now := time.Now()
	stored := &model.VPNCredentials{
		Username:    creds.Username,
		Password:    creds.Password,
		ServerInfo:  creds.ServerInfo,
		ExpiryDate:  creds.ExpiryDate,
		Code:        creds.Code,
		DeliveredAt: &now,
		DeliveredBy: adminId,
	}
	if err := s.store.Orders().SetCredentials(order.ID, stored, constants.ORDER_COMPLETED); err != nil {
		return nil, err
	}
	order.Status = constants.ORDER_COMPLETED
	order.VPNCredentials = stored

	// The completed state is committed; email failure must never surface.
	if user, err := s.store.Users().FindById(order.UserId); err == nil {
		expiry := ""
		if creds.ExpiryDate != nil {
			expiry = creds.ExpiryDate.Format("02 Jan 2006")
		}
		s.notifier.Send(notify.KindCredentialDelivery, user.Email, map[string]any{
			"orderCode":    order.PublicCode,
			"customerName": user.Name,
			"total":        order.Total,
			"username":     creds.Username,
			"password":     creds.Password,
			"serverInfo":   creds.ServerInfo,
			"expiryDate":   expiry,
			"code":         creds.Code,
		})
	} else {
		log.Printf("workflow: no user for order %s, skipping credential email: %v", order.PublicCode, err)
	}

	return order, nil
}

// MyOrders lists the caller's own orders, newest first.
func (s *Service) MyOrders(userId uint) (model.Orders, error) {
	return s.store.Orders().FindByUser(userId)
}

// GetOrder returns one order; customers can only read their own.
func (s *Service) GetOrder(userId uint, isAdmin bool, code string) (*model.Order, error) {
	order, err := s.store.Orders().FindByPublicCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(constants.ORDER_NOT_FOUND)
		}
		return nil, err
	}
	if !isAdmin && order.UserId != userId {
		return nil, AuthorizationError(constants.NOT_YOUR_ORDER)
	}
	return order, nil
}

func (s *Service) notifyOrderConfirmed(orderId uint) {
	order, err := s.store.Orders().FindById(orderId)
	if err != nil {
		log.Printf("workflow: cannot load order %d for confirmation email: %v", orderId, err)
		return
	}
	user, err := s.store.Users().FindById(order.UserId)
	if err != nil {
		log.Printf("workflow: no user for order %s, skipping confirmation email: %v", order.PublicCode, err)
		return
	}
	s.notifier.Send(notify.KindOrderConfirmation, user.Email, map[string]any{
		"orderCode":    order.PublicCode,
		"customerName": user.Name,
		"total":        order.Total,
	})
}
