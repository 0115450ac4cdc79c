package models

// PaymentMethod represents how a customer pays for a booking or order
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
	PaymentMethodCard        PaymentMethod = "card"
)

// IsValid returns true if the payment method is a recognized value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMobileMoney, PaymentMethodCard:
		return true
	}
	return false
}

// IsElectronic returns true for methods settled through the payment gateway
func (m PaymentMethod) IsElectronic() bool {
	return m == PaymentMethodMobileMoney || m == PaymentMethodCard
}

// PaymentStatus represents the financial state of a record
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid returns true if the payment status is a recognized value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}
