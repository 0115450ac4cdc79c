package models

import "time"

// OrderStatus represents the fulfillment state of a food order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions defines the administrative state machine for orders.
// Delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// IsValid returns true if the status is a recognized order status
func (s OrderStatus) IsValid() bool {
	_, exists := orderTransitions[s]
	return exists
}

// CanTransitionTo returns true if an administrator may move an order from
// this status to the target
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// Order represents a restaurant food order
type Order struct {
	ID               string        `json:"id" db:"id"`
	OrderReference   string        `json:"order_reference" db:"order_reference"`
	CustomerName     string        `json:"customer_name" db:"customer_name"`
	CustomerPhone    string        `json:"customer_phone" db:"customer_phone"`
	CustomerEmail    *string       `json:"customer_email,omitempty" db:"customer_email"`
	TotalAmount      float64       `json:"total_amount" db:"total_amount"`
	Status           OrderStatus   `json:"status" db:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentMethod    PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentReference *string       `json:"payment_reference,omitempty" db:"payment_reference"`
	SourcePlatform   *string       `json:"source_platform,omitempty" db:"source_platform"`
	Items            []OrderItem   `json:"items,omitempty"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

// OrderItem represents a single line of an order
type OrderItem struct {
	ID         string  `json:"id" db:"id"`
	OrderID    string  `json:"order_id" db:"order_id"`
	MenuItemID string  `json:"menu_item_id" db:"menu_item_id"`
	Name       string  `json:"name" db:"name"`
	Quantity   int     `json:"quantity" db:"quantity"`
	UnitPrice  float64 `json:"unit_price" db:"unit_price"`
}

// CreateOrderRequest represents the request to place a food order
type CreateOrderRequest struct {
	CustomerName      string                   `json:"customer_name"`
	CustomerPhone     string                   `json:"customer_phone"`
	CustomerEmail     *string                  `json:"customer_email,omitempty"`
	Items             []CreateOrderItemRequest `json:"items"`
	PaymentMethod     PaymentMethod            `json:"payment_method"`
	PaymentReference  *string                  `json:"payment_reference,omitempty"`
	PaymentStatusHint *string                  `json:"payment_status,omitempty"`
}

// CreateOrderItemRequest represents one requested order line
type CreateOrderItemRequest struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

// Validate validates the create order request
func (r *CreateOrderRequest) Validate() error {
	if r.CustomerName == "" {
		return NewValidationError("customer_name", "is required")
	}
	if r.CustomerPhone == "" {
		return NewValidationError("customer_phone", "is required")
	}
	if len(r.Items) == 0 {
		return NewValidationError("items", "at least one item is required")
	}
	for _, item := range r.Items {
		if item.MenuItemID == "" {
			return NewValidationError("items", "menu_item_id is required")
		}
		if item.Quantity <= 0 {
			return NewValidationError("items", "quantity must be greater than zero")
		}
		if item.UnitPrice < 0 {
			return NewValidationError("items", "unit_price cannot be negative")
		}
	}
	if !r.PaymentMethod.IsValid() {
		return NewValidationError("payment_method", "must be cash, mobile_money or card")
	}
	if r.PaymentMethod.IsElectronic() && (r.PaymentReference == nil || *r.PaymentReference == "") {
		return ErrMissingPaymentReference
	}
	return nil
}

// Total computes the order total from its requested items
func (r *CreateOrderRequest) Total() float64 {
	var total float64
	for _, item := range r.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}
