package workflow

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"kage_vpn_store/constants"
	"kage_vpn_store/model"
	"kage_vpn_store/notify"
)

// memStore is an in-memory Store that mimics the database behaviors the
// service depends on: gorm sentinel errors, the unique indexes on
// transaction_id and order_id, the conditional payment link, and
// rollback-on-error transactions.
type memStore struct {
	orders   map[uint]*model.Order
	payments map[uint]*model.Payment
	users    map[uint]*model.User

	nextOrderId   uint
	nextPaymentId uint
}

func newMemStore() *memStore {
	return &memStore{
		orders:   map[uint]*model.Order{},
		payments: map[uint]*model.Payment{},
		users:    map[uint]*model.User{},
	}
}

func (s *memStore) Orders() OrderStore     { return memOrders{s} }
func (s *memStore) Payments() PaymentStore { return memPayments{s} }
func (s *memStore) Users() UserStore       { return memUsers{s} }

func (s *memStore) Transaction(fn func(Store) error) error {
	ordersBackup := map[uint]*model.Order{}
	for id, o := range s.orders {
		copied := *o
		ordersBackup[id] = &copied
	}
	paymentsBackup := map[uint]*model.Payment{}
	for id, p := range s.payments {
		copied := *p
		paymentsBackup[id] = &copied
	}
	nextOrder, nextPayment := s.nextOrderId, s.nextPaymentId

	if err := fn(s); err != nil {
		s.orders = ordersBackup
		s.payments = paymentsBackup
		s.nextOrderId, s.nextPaymentId = nextOrder, nextPayment
		return err
	}
	return nil
}

type memOrders struct{ s *memStore }

func (m memOrders) Create(order *model.Order) error {
	m.s.nextOrderId++
	order.ID = m.s.nextOrderId
	copied := *order
	m.s.orders[order.ID] = &copied
	return nil
}

func (m memOrders) FindById(id uint) (*model.Order, error) {
	order, ok := m.s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (m memOrders) FindByPublicCode(code string) (*model.Order, error) {
	for _, order := range m.s.orders {
		if order.PublicCode == code {
			copied := *order
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memOrders) FindByUser(userId uint) (model.Orders, error) {
	var out model.Orders
	for _, order := range m.s.orders {
		if order.UserId == userId {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (m memOrders) LinkPayment(orderId, paymentId uint) (bool, error) {
	order, ok := m.s.orders[orderId]
	if !ok || order.PaymentId != nil {
		return false, nil
	}
	order.PaymentId = &paymentId
	order.Status = constants.ORDER_PAYMENT_SUBMITTED
	return true, nil
}

func (m memOrders) UpdateStatus(orderId uint, status string) error {
	order, ok := m.s.orders[orderId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

func (m memOrders) SetCredentials(orderId uint, creds *model.VPNCredentials, status string) error {
	order, ok := m.s.orders[orderId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *creds
	order.VPNCredentials = &copied
	order.Status = status
	return nil
}

type memPayments struct{ s *memStore }

func (m memPayments) Create(payment *model.Payment) error {
	for _, existing := range m.s.payments {
		if existing.TransactionId == payment.TransactionId || existing.OrderId == payment.OrderId {
			return gorm.ErrDuplicatedKey
		}
	}
	m.s.nextPaymentId++
	payment.ID = m.s.nextPaymentId
	copied := *payment
	m.s.payments[payment.ID] = &copied
	return nil
}

func (m memPayments) FindByPublicCode(code string) (*model.Payment, error) {
	for _, payment := range m.s.payments {
		if payment.PublicCode == code {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memPayments) FindByTransactionId(transactionId string) (*model.Payment, error) {
	for _, payment := range m.s.payments {
		if payment.TransactionId == transactionId {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memPayments) UpdateVerification(paymentId uint, status string, verifiedBy uint, notes string, verifiedAt time.Time) error {
	payment, ok := m.s.payments[paymentId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	payment.Status = status
	payment.VerifiedBy = &verifiedBy
	payment.VerificationNotes = notes
	payment.VerifiedAt = &verifiedAt
	return nil
}

type memUsers struct{ s *memStore }

func (m memUsers) FindById(id uint) (*model.User, error) {
	user, ok := m.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

type sentMail struct {
	kind notify.Kind
	to   string
	data map[string]any
}

type recorder struct {
	sent []sentMail
}

func (r *recorder) Send(kind notify.Kind, to string, data map[string]any) {
	r.sent = append(r.sent, sentMail{kind: kind, to: to, data: data})
}

func newTestService() (*Service, *memStore, *recorder) {
	store := newMemStore()
	store.users[1] = &model.User{DTO: model.DTO{ID: 1}, Name: "Aung Aung", Email: "aung@example.com", Role: constants.ROLE_CUSTOMER, IsActive: true}
	store.users[2] = &model.User{DTO: model.DTO{ID: 2}, Name: "Su Su", Email: "susu@example.com", Role: constants.ROLE_CUSTOMER, IsActive: true}
	store.users[9] = &model.User{DTO: model.DTO{ID: 9}, Name: "Admin", Email: "admin@kagevpn.com", Role: constants.ROLE_ADMIN, IsActive: true}
	mails := &recorder{}
	return NewService(store, mails), store, mails
}

func orderInput(total float64) model.CreateOrderInput {
	return model.CreateOrderInput{
		UserId: 1,
		Items: []model.OrderItemInput{
			{ProductName: "Kage VPN Premium", DurationLabel: "1 Month", UnitPrice: total, Quantity: 1},
		},
		Total: total,
	}
}

func paymentInput(orderCode, transactionId string) model.SubmitPaymentInput {
	return model.SubmitPaymentInput{
		OrderId:       orderCode,
		PaymentMethod: "KPAY",
		TransactionId: transactionId,
		SenderName:    "Aung Aung",
		SenderPhone:   "09123456789",
	}
}

func wantWorkflowError(t *testing.T, err error, code, message string) {
	t.Helper()
	var wfErr *Error
	if !errors.As(err, &wfErr) {
		t.Fatalf("expected *workflow.Error, got %v", err)
	}
	if wfErr.Code != code {
		t.Errorf("error code = %q, want %q", wfErr.Code, code)
	}
	if message != "" && wfErr.Message != message {
		t.Errorf("error message = %q, want %q", wfErr.Message, message)
	}
}

func TestCreateOrderStartsPendingPayment(t *testing.T) {
	svc, _, _ := newTestService()

	input := orderInput(15000)
	input.Status = "completed" // clients cannot pick their own status

	order, err := svc.CreateOrder(1, input)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Status != constants.ORDER_PENDING_PAYMENT {
		t.Errorf("status = %q, want %q", order.Status, constants.ORDER_PENDING_PAYMENT)
	}
	if len(order.PublicCode) != 12 || order.PublicCode[:4] != "ORD-" {
		t.Errorf("unexpected public code %q", order.PublicCode)
	}
	if order.Total != 15000 {
		t.Errorf("total = %v, want 15000", order.Total)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name  string
		input model.CreateOrderInput
	}{
		{"no items", model.CreateOrderInput{UserId: 1, Total: 1000}},
		{"negative total", func() model.CreateOrderInput {
			in := orderInput(15000)
			in.Total = -1
			return in
		}()},
		{"total mismatch", func() model.CreateOrderInput {
			in := orderInput(15000)
			in.Total = 99999
			return in
		}()},
		{"zero quantity", model.CreateOrderInput{
			UserId: 1,
			Items:  []model.OrderItemInput{{ProductName: "Kage VPN Premium", UnitPrice: 15000, Quantity: 0}},
			Total:  15000,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateOrder(1, tc.input); err == nil {
				t.Fatal("expected validation error")
			} else {
				wantWorkflowError(t, err, CodeValidation, "")
			}
		})
	}
}

func TestSubmitPayment(t *testing.T) {
	svc, store, _ := newTestService()

	order, err := svc.CreateOrder(1, orderInput(15000))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	payment, err := svc.SubmitPayment(1, paymentInput(order.PublicCode, "TXN12345"))
	if err != nil {
		t.Fatalf("SubmitPayment: %v", err)
	}
	if payment.Status != constants.PAYMENT_PENDING_VERIFICATION {
		t.Errorf("payment status = %q, want %q", payment.Status, constants.PAYMENT_PENDING_VERIFICATION)
	}
	if payment.Amount != 15000 {
		t.Errorf("amount = %v, want the order total", payment.Amount)
	}

	linked := store.orders[order.ID]
	if linked.Status != constants.ORDER_PAYMENT_SUBMITTED {
		t.Errorf("order status = %q, want %q", linked.Status, constants.ORDER_PAYMENT_SUBMITTED)
	}
	if linked.PaymentId == nil || *linked.PaymentId != payment.ID {
		t.Errorf("order payment link = %v, want %d", linked.PaymentId, payment.ID)
	}
}

func TestSubmitPaymentChecks(t *testing.T) {
	svc, _, _ := newTestService()

	order, _ := svc.CreateOrder(1, orderInput(15000))

	t.Run("missing fields", func(t *testing.T) {
		input := paymentInput(order.PublicCode, "TXN1")
		input.SenderPhone = ""
		_, err := svc.SubmitPayment(1, input)
		wantWorkflowError(t, err, CodeValidation, constants.MISSING_REQUIRED_FIELDS)
	})

	t.Run("order not found", func(t *testing.T) {
		_, err := svc.SubmitPayment(1, paymentInput("ORD-missing1", "TXN2"))
		wantWorkflowError(t, err, CodeNotFound, constants.ORDER_NOT_FOUND)
	})

	t.Run("not the owner", func(t *testing.T) {
		_, err := svc.SubmitPayment(2, paymentInput(order.PublicCode, "TXN3"))
		wantWorkflowError(t, err, CodeForbidden, constants.NOT_YOUR_ORDER)
	})
}

func TestSubmitPaymentSecondSubmissionConflicts(t *testing.T) {
	svc, _, _ := newTestService()

	order, _ := svc.CreateOrder(1, orderInput(15000))
	if _, err := svc.SubmitPayment(1, paymentInput(order.PublicCode, "TXN12345")); err != nil {
		t.Fatalf("first SubmitPayment: %v", err)
	}

	_, err := svc.SubmitPayment(1, paymentInput(order.PublicCode, "TXN99999"))
	wantWorkflowError(t, err, CodeConflict, constants.PAYMENT_ALREADY_SUBMITTED)
}

func TestSubmitPaymentDuplicateTransactionIdAcrossOrders(t *testing.T) {
	svc, store, _ := newTestService()

	first, _ := svc.CreateOrder(1, orderInput(15000))
	if _, err := svc.SubmitPayment(1, paymentInput(first.PublicCode, "DUPTX001")); err != nil {
		t.Fatalf("first SubmitPayment: %v", err)
	}

	secondInput := orderInput(25000)
	secondInput.UserId = 2
	second, _ := svc.CreateOrder(2, secondInput)

	input := paymentInput(second.PublicCode, "DUPTX001")
	input.SenderName = "Su Su"
	_, err := svc.SubmitPayment(2, input)
	wantWorkflowError(t, err, CodeConflict, constants.TRANSACTION_ID_EXISTS)

	// The losing order must stay untouched.
	if got := store.orders[second.ID]; got.Status != constants.ORDER_PENDING_PAYMENT || got.PaymentId != nil {
		t.Errorf("losing order mutated: status=%q paymentId=%v", got.Status, got.PaymentId)
	}
}

// raceStore hides a payment from the duplicate precheck so the conflict is
// only caught by the unique index inside the transaction, the way two
// concurrent submissions would collide.
type raceStore struct {
	*memStore
	hiddenTx string
	checked  bool
}

func (r *raceStore) Payments() PaymentStore { return racePayments{r} }

type racePayments struct{ r *raceStore }

func (p racePayments) Create(payment *model.Payment) error {
	return memPayments{p.r.memStore}.Create(payment)
}

func (p racePayments) FindByPublicCode(code string) (*model.Payment, error) {
	return memPayments{p.r.memStore}.FindByPublicCode(code)
}

func (p racePayments) FindByTransactionId(transactionId string) (*model.Payment, error) {
	if transactionId == p.r.hiddenTx && !p.r.checked {
		p.r.checked = true
		return nil, gorm.ErrRecordNotFound
	}
	return memPayments{p.r.memStore}.FindByTransactionId(transactionId)
}

func (p racePayments) UpdateVerification(paymentId uint, status string, verifiedBy uint, notes string, verifiedAt time.Time) error {
	return memPayments{p.r.memStore}.UpdateVerification(paymentId, status, verifiedBy, notes, verifiedAt)
}

func TestSubmitPaymentDuplicateCaughtAtCommit(t *testing.T) {
	base := newMemStore()
	base.users[1] = &model.User{DTO: model.DTO{ID: 1}, Email: "aung@example.com"}
	store := &raceStore{memStore: base, hiddenTx: "DUPTX001"}
	svc := NewService(store, &recorder{})

	first, _ := svc.CreateOrder(1, orderInput(15000))
	if _, err := svc.SubmitPayment(1, paymentInput(first.PublicCode, "RACETX000")); err != nil {
		t.Fatalf("seed SubmitPayment: %v", err)
	}
	// Seed the contested transaction id on another order directly.
	base.payments[99] = &model.Payment{DTO: model.DTO{ID: 99}, OrderId: 999, UserId: 2, TransactionId: "DUPTX001"}

	second, _ := svc.CreateOrder(1, orderInput(15000))
	_, err := svc.SubmitPayment(1, paymentInput(second.PublicCode, "DUPTX001"))
	wantWorkflowError(t, err, CodeConflict, constants.TRANSACTION_ID_EXISTS)
}

func TestVerifyPaymentApproved(t *testing.T) {
	svc, store, mails := newTestService()

	order, _ := svc.CreateOrder(1, orderInput(15000))
	payment, _ := svc.SubmitPayment(1, paymentInput(order.PublicCode, "TXN12345"))

	status, err := svc.VerifyPayment(9, model.VerifyPaymentInput{
		PaymentId: payment.PublicCode,
		Status:    constants.DECISION_APPROVED,
		Notes:     "KPay statement checked",
	})
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if status != constants.PAYMENT_VERIFIED {
		t.Errorf("returned status = %q, want %q", status, constants.PAYMENT_VERIFIED)
	}

	stored := store.payments[payment.ID]
	if stored.Status != constants.PAYMENT_VERIFIED {
		t.Errorf("payment status = %q, want %q", stored.Status, constants.PAYMENT_VERIFIED)
	}
	if stored.VerifiedBy == nil || *stored.VerifiedBy != 9 {
		t.Errorf("verifiedBy = %v, want 9", stored.VerifiedBy)
	}
	if stored.VerifiedAt == nil {
		t.Error("verifiedAt not set")
	}
	if got := store.orders[order.ID].Status; got != constants.ORDER_VERIFIED {
		t.Errorf("order status = %q, want %q", got, constants.ORDER_VERIFIED)
	}

	if len(mails.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mails.sent))
	}
	if mails.sent[0].kind != notify.KindOrderConfirmation || mails.sent[0].to != "aung@example.com" {
		t.Errorf("unexpected mail %+v", mails.sent[0])
	}
}

func TestVerifyPaymentRejected(t *testing.T) {
	svc, store, mails := newTestService()

	order, _ := svc.CreateOrder(1, orderInput(15000))
	payment, _ := svc.SubmitPayment(1, paymentInput(order.PublicCode, "TXN12345"))

	status, err := svc.VerifyPayment(9, model.VerifyPaymentInput{
		PaymentId: payment.PublicCode,
		Status:    constants.DECISION_REJECTED,
		Notes:     "amount does not match",
	})
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if status != constants.PAYMENT_REJECTED {
		t.Errorf("returned status = %q, want %q", status, constants.PAYMENT_REJECTED)
	}
	if got := store.orders[order.ID].Status; got != constants.ORDER_CANCELLED {
		t.Errorf("order status = %q, want %q", got, constants.ORDER_CANCELLED)
	}
	if len(mails.sent) != 0 {
		t.Errorf("rejection must not send mail, sent %d", len(mails.sent))
	}
}

// An unrecognized decision lands on the payment verbatim while the order falls
// back to verified. Long-standing storefront behavior, kept as-is.
func TestVerifyPaymentUnknownDecision(t *testing.T) {
	svc, store, _ := newTestService()

	order, _ := svc.CreateOrder(1, orderInput(15000))
	payment, _ := svc.SubmitPayment(1, paymentInput(order.PublicCode, "TXN12345"))

	status, err := svc.VerifyPayment(9, model.VerifyPaymentInput{
		PaymentId: payment.PublicCode,
		Status:    "on-hold",
	})
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if status != "on-hold" {
		t.Errorf("payment status = %q, want passthrough", status)
	}
	if got := store.orders[order.ID].Status; got != constants.ORDER_VERIFIED {
		t.Errorf("order status = %q, want %q", got, constants.ORDER_VERIFIED)
	}
}

func TestVerifyPaymentNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.VerifyPayment(9, model.VerifyPaymentInput{PaymentId: "PAY-missing", Status: constants.DECISION_APPROVED})
	wantWorkflowError(t, err, CodeNotFound, constants.PAYMENT_NOT_FOUND)
}

func TestDeliverCredentials(t *testing.T) {
	svc, store, mails := newTestService()

	order, _ := svc.CreateOrder(1, orderInput(15000))
	expiry := time.Now().AddDate(0, 1, 0)

	delivered, err := svc.DeliverCredentials(9, model.DeliverCredentialsInput{
		OrderId: order.PublicCode,
		VPNCredentials: model.CredentialsInput{
			Username:   "kage_user_01",
			Password:   "s3cret",
			ServerInfo: "sg1.kagevpn.com:443",
			ExpiryDate: &expiry,
		},
	})
	if err != nil {
		t.Fatalf("DeliverCredentials: %v", err)
	}
	if delivered.Status != constants.ORDER_COMPLETED {
		t.Errorf("order status = %q, want %q", delivered.Status, constants.ORDER_COMPLETED)
	}

	stored := store.orders[order.ID]
	if stored.VPNCredentials == nil || stored.VPNCredentials.Username != "kage_user_01" {
		t.Fatalf("credentials not stored: %+v", stored.VPNCredentials)
	}
	if stored.VPNCredentials.DeliveredBy != 9 || stored.VPNCredentials.DeliveredAt == nil {
		t.Errorf("delivery audit fields missing: %+v", stored.VPNCredentials)
	}

	if len(mails.sent) != 1 || mails.sent[0].kind != notify.KindCredentialDelivery {
		t.Fatalf("expected one credential mail, got %+v", mails.sent)
	}
	if mails.sent[0].data["username"] != "kage_user_01" {
		t.Errorf("mail data = %+v", mails.sent[0].data)
	}
}

func TestDeliverCredentialsValidation(t *testing.T) {
	svc, _, _ := newTestService()
	order, _ := svc.CreateOrder(1, orderInput(15000))

	// Neither an account nor an activation code.
	_, err := svc.DeliverCredentials(9, model.DeliverCredentialsInput{
		OrderId:        order.PublicCode,
		VPNCredentials: model.CredentialsInput{ServerInfo: "sg1.kagevpn.com"},
	})
	wantWorkflowError(t, err, CodeValidation, constants.MISSING_DELIVER_INPUT)

	// A bare activation code is enough.
	if _, err := svc.DeliverCredentials(9, model.DeliverCredentialsInput{
		OrderId:        order.PublicCode,
		VPNCredentials: model.CredentialsInput{Code: "KAGE-1M-XYZ"},
	}); err != nil {
		t.Fatalf("code-only delivery: %v", err)
	}
}

// Re-delivering replaces the stored credentials and sends a fresh mail; it is
// the admin's correction path for typos in the first delivery.
func TestDeliverCredentialsOverwrite(t *testing.T) {
	svc, store, mails := newTestService()

	order, _ := svc.CreateOrder(1, orderInput(15000))
	input := model.DeliverCredentialsInput{
		OrderId:        order.PublicCode,
		VPNCredentials: model.CredentialsInput{Username: "wrong_user", Password: "pw"},
	}
	if _, err := svc.DeliverCredentials(9, input); err != nil {
		t.Fatalf("first delivery: %v", err)
	}

	input.VPNCredentials.Username = "right_user"
	if _, err := svc.DeliverCredentials(9, input); err != nil {
		t.Fatalf("second delivery: %v", err)
	}

	if got := store.orders[order.ID].VPNCredentials.Username; got != "right_user" {
		t.Errorf("username = %q, want overwrite", got)
	}
	if len(mails.sent) != 2 {
		t.Errorf("sent %d mails, want 2", len(mails.sent))
	}
}

func TestDeliverCredentialsOrderNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.DeliverCredentials(9, model.DeliverCredentialsInput{
		OrderId:        "ORD-missing1",
		VPNCredentials: model.CredentialsInput{Code: "KAGE-1M-XYZ"},
	})
	wantWorkflowError(t, err, CodeNotFound, constants.ORDER_NOT_FOUND)
}

func TestGetOrderOwnership(t *testing.T) {
	svc, _, _ := newTestService()
	order, _ := svc.CreateOrder(1, orderInput(15000))

	if _, err := svc.GetOrder(1, false, order.PublicCode); err != nil {
		t.Errorf("owner read: %v", err)
	}

	_, err := svc.GetOrder(2, false, order.PublicCode)
	wantWorkflowError(t, err, CodeForbidden, constants.NOT_YOUR_ORDER)

	if _, err := svc.GetOrder(2, true, order.PublicCode); err != nil {
		t.Errorf("admin read: %v", err)
	}
}

// The full happy path: order, payment, approval, delivery.
func TestOrderLifecycle(t *testing.T) {
	svc, store, mails := newTestService()

	order, err := svc.CreateOrder(1, orderInput(15000))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	payment, err := svc.SubmitPayment(1, paymentInput(order.PublicCode, "TXN12345"))
	if err != nil {
		t.Fatalf("SubmitPayment: %v", err)
	}

	if _, err := svc.VerifyPayment(9, model.VerifyPaymentInput{
		PaymentId: payment.PublicCode,
		Status:    constants.DECISION_APPROVED,
	}); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}

	if _, err := svc.DeliverCredentials(9, model.DeliverCredentialsInput{
		OrderId:        order.PublicCode,
		VPNCredentials: model.CredentialsInput{Username: "kage_user_01", Password: "s3cret"},
	}); err != nil {
		t.Fatalf("DeliverCredentials: %v", err)
	}

	final := store.orders[order.ID]
	if final.Status != constants.ORDER_COMPLETED {
		t.Errorf("final order status = %q, want %q", final.Status, constants.ORDER_COMPLETED)
	}
	if store.payments[payment.ID].Status != constants.PAYMENT_VERIFIED {
		t.Errorf("final payment status = %q", store.payments[payment.ID].Status)
	}
	if len(mails.sent) != 2 {
		t.Fatalf("sent %d mails, want confirmation + credentials", len(mails.sent))
	}
	if mails.sent[0].kind != notify.KindOrderConfirmation || mails.sent[1].kind != notify.KindCredentialDelivery {
		t.Errorf("mail order = %v, %v", mails.sent[0].kind, mails.sent[1].kind)
	}
}
