package model

const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"

	PaymentMethodCash       = "cash"
	PaymentMethodCard       = "card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetBanking = "netbanking"
)

type Payment struct {
	DTO
	OrderId       uint    `gorm:"not null;index" json:"orderId"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Method        *string `json:"method"`
	Status        string  `gorm:"default:completed" json:"status"`
	TransactionID string  `gorm:"unique;size:40" json:"transactionId"`
	Notes         *string `json:"notes,omitempty"`

	Order *Order `gorm:"foreignKey:OrderId" json:"order,omitempty"`
}

type CreatePaymentInput struct {
	OrderID int     `json:"orderId"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
	Notes   string  `json:"notes"`
}

type ListPaymentsInput struct {
	Page      int
	Limit     int
	Status    string
	Method    string
	OrderID   *uint
	SortBy    string
	SortOrder string
}

// PaymentFilter is the sanitized query the store executes: SortBy is a column
// name, SortOrder is ASC or DESC.
type PaymentFilter struct {
	Status    string
	Method    string
	OrderID   *uint
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

type PageInfo struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type PaymentPage struct {
	Payments   []Payment `json:"payments"`
	Pagination PageInfo  `json:"pagination"`
}

// PaymentMethodAggregate is one raw GROUP BY method row. Method is the stored
// value and may be nil or carry legacy tags; merging by normalized method
// happens in the service.
type PaymentMethodAggregate struct {
	Method      *string `json:"method"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

type MethodStat struct {
	Method      string  `json:"method"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

type PaymentStats struct {
	TotalPayments     int64        `json:"totalPayments"`
	CompletedPayments int64        `json:"completedPayments"`
	PendingPayments   int64        `json:"pendingPayments"`
	TotalAmount       float64      `json:"totalAmount"`
	MethodStats       []MethodStat `json:"methodStats"`
	RecentPayments    []Payment    `json:"recentPayments"`
}
