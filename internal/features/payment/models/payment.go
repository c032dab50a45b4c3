package models

// PaymentMethod is a checkout payment rail.
type PaymentMethod string

const (
	MethodCardCrypto PaymentMethod = "card"
	MethodUSDT       PaymentMethod = "usdt"
	MethodPayPal     PaymentMethod = "paypal"
	MethodStars      PaymentMethod = "stars"
)

// Methods returns the selectable rails in display order.
func Methods() []PaymentMethod {
	return []PaymentMethod{MethodCardCrypto, MethodUSDT, MethodPayPal, MethodStars}
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCardCrypto, MethodUSDT, MethodPayPal, MethodStars:
		return true
	}
	return false
}

// Backend maps the method onto the upstream enum.
func (m PaymentMethod) Backend() string {
	switch m {
	case MethodCardCrypto:
		return "CARD_CRYPTO"
	case MethodUSDT:
		return "USDT_TRC20"
	case MethodPayPal:
		return "PAYPAL"
	case MethodStars:
		return "STARS"
	default:
		return "MANUAL"
	}
}

// Label is the user-facing method name.
func (m PaymentMethod) Label() string {
	switch m {
	case MethodCardCrypto:
		return "Card/Crypto"
	case MethodUSDT:
		return "USDT (TRC20)"
	case MethodPayPal:
		return "PayPal"
	case MethodStars:
		return "Telegram Stars"
	default:
		return string(m)
	}
}

// PaymentStatus is the upstream payment state.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentAwaitingCheck PaymentStatus = "AWAITING_CHECK"
	PaymentConfirmed     PaymentStatus = "CONFIRMED"
	PaymentFailed        PaymentStatus = "FAILED"
)

// AllowedPaymentTransitions lists the moves the admin console offers
// from a given state. The backend owns enforcement; the gateway only
// refuses to offer anything else.
func AllowedPaymentTransitions(from PaymentStatus) []PaymentStatus {
	switch from {
	case PaymentPending:
		return []PaymentStatus{PaymentAwaitingCheck, PaymentConfirmed, PaymentFailed}
	case PaymentAwaitingCheck:
		return []PaymentStatus{PaymentConfirmed, PaymentFailed}
	case PaymentFailed:
		return []PaymentStatus{PaymentPending}
	default:
		return nil
	}
}

// CanTransitPayment reports whether from → to is a legal move.
func CanTransitPayment(from, to PaymentStatus) bool {
	for _, allowed := range AllowedPaymentTransitions(from) {
		if allowed == to {
			return true
		}
	}
	return false
}

// OrderStatus is the upstream fulfillment state, independent of payment.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// AllowedOrderTransitions lists the admin-driven fulfillment moves.
func AllowedOrderTransitions(from OrderStatus) []OrderStatus {
	switch from {
	case OrderPending:
		return []OrderStatus{OrderProcessing, OrderCancelled}
	case OrderProcessing:
		return []OrderStatus{OrderCompleted, OrderCancelled}
	default:
		return nil
	}
}

// CanTransitOrder reports whether from → to is a legal fulfillment move.
func CanTransitOrder(from, to OrderStatus) bool {
	for _, allowed := range AllowedOrderTransitions(from) {
		if allowed == to {
			return true
		}
	}
	return false
}
