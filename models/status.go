package models

// OrderStatus is the lifecycle stage of a placed order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// orderTransitions is the closed transition table. Every coin and stock
// side effect hangs off one of these edges, so there is no order state an
// admin can reach that the ledger does not account for.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusReturned},
	OrderStatusCancelled:  {},
	OrderStatusReturned:   {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether the edge s -> next exists in the
// transition table.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible from s.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// Cancellable reports whether a customer may still cancel an order in this
// state. Only pending and confirmed orders qualify.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// StatusEffect names the inventory/coin side effect an order status
// transition triggers.
type StatusEffect int

const (
	EffectNone StatusEffect = iota
	// EffectCreditEarned credits the order's earned coins to the user.
	EffectCreditEarned
	// EffectRestoreAndRefund restores per-item stock and refunds the coins
	// the customer spent on the order.
	EffectRestoreAndRefund
	// EffectRestoreAndDebit restores per-item stock and debits the coins
	// previously credited on delivery.
	EffectRestoreAndDebit
)

// TransitionEffect returns the side effect attached to the s -> next edge.
func (s OrderStatus) TransitionEffect(next OrderStatus) StatusEffect {
	switch next {
	case OrderStatusDelivered:
		return EffectCreditEarned
	case OrderStatusCancelled:
		return EffectRestoreAndRefund
	case OrderStatusReturned:
		return EffectRestoreAndDebit
	}
	return EffectNone
}
