package sales

// Channel is where an order was placed
type Channel string

const (
	ChannelOnline  Channel = "ONLINE"
	ChannelInStore Channel = "INSTORE"
)

// IsValid checks if the channel is a known value
func (c Channel) IsValid() bool {
	return c == ChannelOnline || c == ChannelInStore
}

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
)

// IsValid checks if the status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled, OrderStatusShipped:
		return true
	}
	return false
}

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	PaymentMethodCard    PaymentMethod = "CARD"
	PaymentMethodAccount PaymentMethod = "ACCOUNT"
	PaymentMethodCash    PaymentMethod = "CASH"
)

// IsValid checks if the method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodAccount, PaymentMethodCash:
		return true
	}
	return false
}
