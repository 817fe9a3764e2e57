package models

// Status types partition the status table into disjoint domains. A status id
// is only meaningful together with its type; lookups must always filter on
// both so an order-status code can never be applied to an order item.
const (
	StatusTypeOrder = "order_status"
	StatusTypeItem  = "item_status"
)

// Seeded order status ids.
const (
	OrderStatusNew uint = iota + 1
	OrderStatusInProgress
	OrderStatusPreparing
	OrderStatusReady
	OrderStatusServed
	OrderStatusCancelled
)

// Seeded item status ids. They live in the same table as order statuses but
// form their own domain.
const (
	ItemStatusNew uint = iota + 7
	ItemStatusPreparing
	ItemStatusReady
	ItemStatusServed
	ItemStatusCancelled
)

// Seeded table status ids (separate table, see TableStatus).
const (
	TableStatusAvailable uint = iota + 1
	TableStatusOccupied
	TableStatusAwaitingPayment
	TableStatusReserved
	TableStatusUnavailable
)

// Status represents a status code within the order or item domain
type Status struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null;uniqueIndex:idx_statuses_name_type" json:"name"`
	Type string `gorm:"size:20;not null;uniqueIndex:idx_statuses_name_type" json:"type"` // order_status or item_status
}

// TableName specifies the table name for the Status model
func (Status) TableName() string {
	return "statuses"
}

// TableStatus represents a status code for a dining table, with a display
// color for the floor layout view
type TableStatus struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Color       string `gorm:"size:7;not null" json:"color"`
	Description string `json:"description,omitempty"`
}

// TableName specifies the table name for the TableStatus model
func (TableStatus) TableName() string {
	return "table_statuses"
}

// IsTerminalOrderStatus reports whether an order status id belongs to the
// canonical terminal set. The same set is used by status transitions,
// cancellation and active-order filtering.
func IsTerminalOrderStatus(statusID uint) bool {
	return statusID == OrderStatusServed || statusID == OrderStatusCancelled
}

// TerminalOrderStatusIDs returns the terminal set for query filters.
func TerminalOrderStatusIDs() []uint {
	return []uint{OrderStatusServed, OrderStatusCancelled}
}
