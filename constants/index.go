package constants

// Roles
const (
	ROLE_ADMIN    = "admin"
	ROLE_CUSTOMER = "customer"
)

// Order statuses
const (
	ORDER_PENDING_PAYMENT   = "pending_payment"
	ORDER_PAYMENT_SUBMITTED = "payment_submitted"
	ORDER_VERIFIED          = "verified"
	ORDER_CANCELLED         = "cancelled"
	ORDER_COMPLETED         = "completed"
)

// Payment statuses
const (
	PAYMENT_PENDING_VERIFICATION = "pending_verification"
	PAYMENT_VERIFIED             = "verified"
	PAYMENT_REJECTED             = "rejected"
)

// Verification decisions sent by the admin UI
const (
	DECISION_APPROVED = "approved"
	DECISION_REJECTED = "rejected"
)

// Support message
const (
	SENDER_USER  = "user"
	SENDER_ADMIN = "admin"
	MESSAGE_NEW  = "new"
	MESSAGE_READ = "read"
)

// Response messages
const (
	MISSING_LOGIN_INPUT        = "Email and password are required"
	INVALID_CREDENTIALS        = "Invalid email or password"
	ACCOUNT_NOT_ACTIVE         = "Your account is disabled. Please contact support"
	ERROR_INTERNAL_ERROR       = "Server error"
	NOT_ADMIN                  = "Admin access required"
	NOT_FOUND_RECORDS          = "Record not found"
	ERROR_PARSE_DATA_TO_LOCALS = "Cannot read validated input"
	CAN_NOT_HASH_PASSWORD      = "Cannot hash password"
	MISSING_REQUIRED_FIELDS    = "Please fill the required fields"
	ORDER_NOT_FOUND            = "Order not found"
	PAYMENT_NOT_FOUND          = "Payment not found"
	NOT_YOUR_ORDER             = "This is not your order"
	PAYMENT_ALREADY_SUBMITTED  = "Payment already submitted for this order"
	TRANSACTION_ID_EXISTS      = "Transaction ID already exists. Please use a unique transaction ID."
	MAINTENANCE_MODE           = "Store is under maintenance. Please come back later"

	// Admin-facing strings kept from the store frontend
	MISSING_VERIFY_INPUT  = "Payment ID နှင့် status လိုအပ်ပါတယ်"
	MISSING_DELIVER_INPUT = "Order ID နှင့် VPN credentials လိုအပ်ပါတယ်"
	MISSING_REPLY_INPUT   = "conversationId နှင့် message လိုအပ်ပါတယ်"
	ADMIN_SERVER_ERROR    = "Server error ဖြစ်နေပါတယ်"
)
