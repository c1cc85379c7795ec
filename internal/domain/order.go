package domain

import "time"

// KOTStatusServed is the terminal status of a kitchen order ticket.
const KOTStatusServed = "SERVED"

// Order is the order record as owned by the remote order engine.
type Order struct {
	ID          int64       `json:"id"`
	Number      string      `json:"number,omitempty"`
	Status      string      `json:"status"`
	Type        string      `json:"type,omitempty"`
	TableID     int64       `json:"table_id,omitempty"`
	TableName   string      `json:"table_name,omitempty"`
	GrandTotal  float64     `json:"grand_total"`
	Items       []OrderItem `json:"items,omitempty"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at,omitempty"`
	CustomerRef string      `json:"customer_ref,omitempty"`
}

// OrderItem is a line on an order.
type OrderItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// KOTUpdate is a kitchen order ticket routed to a preparation station.
type KOTUpdate struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Station   string    `json:"station,omitempty"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Payment is a settled amount against an order.
type Payment struct {
	ID      int64   `json:"id"`
	OrderID int64   `json:"order_id"`
	Method  string  `json:"method,omitempty"`
	Amount  float64 `json:"amount"`
}

// OrderEvent is an entry in the order's activity log.
type OrderEvent struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// TableSummary is a lightweight table reference attached to an order view.
// When reconstructed from the fallback path it is synthesized from fields
// embedded in the order payload, not a verified table record.
type TableSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderFullContext is the complete order view the dashboard renders:
// the order itself plus its tables, kitchen tickets and payments.
type OrderFullContext struct {
	Order    Order          `json:"order"`
	Tables   []TableSummary `json:"tables"`
	KOTs     []KOTUpdate    `json:"kots"`
	Payments []Payment      `json:"payments"`
	Events   []OrderEvent   `json:"events,omitempty"`
}

// IsFullyPaid reports whether recorded payments cover the order total.
// Recomputed from the current context, never stored.
func (c *OrderFullContext) IsFullyPaid() bool {
	var paid float64
	for _, p := range c.Payments {
		paid += p.Amount
	}
	return paid >= c.Order.GrandTotal
}

// AllKotsServed reports whether every ticket reached SERVED.
// Vacuously true when the order has no tickets.
func (c *OrderFullContext) AllKotsServed() bool {
	for _, k := range c.KOTs {
		if k.Status != KOTStatusServed {
			return false
		}
	}
	return true
}
