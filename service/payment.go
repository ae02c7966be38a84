package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"restaurant_manager/logger"
	"restaurant_manager/model"

	"go.uber.org/zap"
)

// PaymentStore is the persistence capability the payment workflow needs.
// The GORM implementation lives in the database package; tests use an
// in-memory fake.
type PaymentStore interface {
	// Transaction runs fn against a transactional view of the store.
	Transaction(ctx context.Context, fn func(PaymentStore) error) error

	GetOrder(ctx context.Context, id uint) (*model.Order, error)
	// GetOrderForUpdate locks the order row for the rest of the transaction.
	GetOrderForUpdate(ctx context.Context, id uint) (*model.Order, error)
	CountCompletedByOrder(ctx context.Context, orderID uint) (int64, error)
	CreatePayment(ctx context.Context, payment *model.Payment) error

	GetPayment(ctx context.Context, id uint) (*model.Payment, error)
	ListPayments(ctx context.Context, filter model.PaymentFilter) ([]model.Payment, int64, error)

	CountPayments(ctx context.Context, status string) (int64, error)
	SumCompletedAmount(ctx context.Context) (float64, error)
	MethodAggregates(ctx context.Context) ([]model.PaymentMethodAggregate, error)
	RecentPayments(ctx context.Context, limit int) ([]model.Payment, error)
}

// PaymentPolicy holds workflow decisions that are configurable per deployment.
// AllowMultiplePayments permits several completed payments against one order
// (split bills); when false the second completed payment is rejected.
type PaymentPolicy struct {
	AllowMultiplePayments bool
}

type PaymentService struct {
	store  PaymentStore
	policy PaymentPolicy
}

func NewPaymentService(store PaymentStore, policy PaymentPolicy) *PaymentService {
	return &PaymentService{store: store, policy: policy}
}

var paymentMethods = []string{
	model.PaymentMethodCash,
	model.PaymentMethodCard,
	model.PaymentMethodUPI,
	model.PaymentMethodNetBanking,
}

func isValidMethod(m string) bool {
	for _, v := range paymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// NormalizeMethod maps a stored method value onto one of the four display
// buckets. Missing, empty and legacy values all land in "card" so the UI
// always has a known bucket to render.
func NormalizeMethod(raw *string) string {
	if raw == nil {
		return model.PaymentMethodCard
	}
	v := strings.ToLower(*raw)
	if v == "" {
		return model.PaymentMethodCard
	}
	if isValidMethod(v) {
		return v
	}
	return model.PaymentMethodCard
}

func newTransactionID() string {
	return fmt.Sprintf("TXN%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

// Create validates the input, checks the referenced order and persists a
// completed payment. The order lookup, the paid check and the insert run in
// one transaction with the order row locked, so two concurrent creations for
// the same order serialize. The order status itself is never touched here:
// marking an order PAID is a separate staff action.
func (s *PaymentService) Create(ctx context.Context, input model.CreatePaymentInput) (*model.Payment, error) {
	var fields []FieldError
	if input.OrderID <= 0 {
		fields = append(fields, FieldError{Field: "orderId", Message: "Order ID is required"})
	}
	if input.Amount < 0.01 {
		fields = append(fields, FieldError{Field: "amount", Message: "Amount must be greater than 0"})
	}
	if !isValidMethod(input.Method) {
		fields = append(fields, FieldError{Field: "method", Message: "Invalid payment method"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var payment *model.Payment
	err := s.store.Transaction(ctx, func(tx PaymentStore) error {
		order, err := tx.GetOrderForUpdate(ctx, uint(input.OrderID))
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if strings.EqualFold(order.Status, model.OrderStatusPaid) {
			return ErrOrderAlreadyPaid
		}
		if !s.policy.AllowMultiplePayments {
			n, err := tx.CountCompletedByOrder(ctx, order.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrDuplicatePayment
			}
		}

		method := input.Method
		p := &model.Payment{
			OrderId:       order.ID,
			Amount:        input.Amount,
			Method:        &method,
			Status:        model.PaymentStatusCompleted,
			TransactionID: newTransactionID(),
		}
		if input.Notes != "" {
			notes := input.Notes
			p.Notes = &notes
		}
		if err := tx.CreatePayment(ctx, p); err != nil {
			return err
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("payment recorded",
		zap.Uint("orderId", payment.OrderId),
		zap.Float64("amount", payment.Amount),
		zap.String("transactionId", payment.TransactionID))
	return payment, nil
}

// column whitelist for caller-specified sorting
var paymentSortColumns = map[string]string{
	"createdAt": "created_at",
	"amount":    "amount",
	"status":    "status",
	"method":    "method",
	"id":        "id",
}

// List returns one page of payments, each enriched with its order summary and
// the order's customer. The total count ignores the page window.
func (s *PaymentService) List(ctx context.Context, input model.ListPaymentsInput) (*model.PaymentPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	sortBy, ok := paymentSortColumns[input.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	sortOrder := strings.ToUpper(input.SortOrder)
	if sortOrder != "ASC" {
		sortOrder = "DESC"
	}

	payments, total, err := s.store.ListPayments(ctx, model.PaymentFilter{
		Status:    input.Status,
		Method:    input.Method,
		OrderID:   input.OrderID,
		Limit:     limit,
		Offset:    (page - 1) * limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	})
	if err != nil {
		return nil, err
	}

	return &model.PaymentPage{
		Payments: payments,
		Pagination: model.PageInfo{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: int((total + int64(limit) - 1) / int64(limit)),
		},
	}, nil
}

// Get returns the payment with its order and customer, or ErrPaymentNotFound.
func (s *PaymentService) Get(ctx context.Context, id uint) (*model.Payment, error) {
	payment, err := s.store.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// Stats aggregates the whole payment record set. Raw method groups from the
// store are re-merged by normalized method, since two raw groups (say NULL and
// "CARD") can collapse into one bucket.
func (s *PaymentService) Stats(ctx context.Context) (*model.PaymentStats, error) {
	total, err := s.store.CountPayments(ctx, "")
	if err != nil {
		return nil, err
	}
	completed, err := s.store.CountPayments(ctx, model.PaymentStatusCompleted)
	if err != nil {
		return nil, err
	}
	pending, err := s.store.CountPayments(ctx, model.PaymentStatusPending)
	if err != nil {
		return nil, err
	}
	totalAmount, err := s.store.SumCompletedAmount(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.MethodAggregates(ctx)
	if err != nil {
		return nil, err
	}
	buckets := make(map[string]*model.MethodStat)
	for _, row := range rows {
		key := NormalizeMethod(row.Method)
		b, ok := buckets[key]
		if !ok {
			b = &model.MethodStat{Method: key}
			buckets[key] = b
		}
		b.Count += row.Count
		b.TotalAmount += row.TotalAmount
	}
	// emit buckets in the canonical method order so the payload is stable
	methodStats := make([]model.MethodStat, 0, len(buckets))
	for _, m := range paymentMethods {
		if b, ok := buckets[m]; ok {
			methodStats = append(methodStats, *b)
		}
	}

	recent, err := s.store.RecentPayments(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &model.PaymentStats{
		TotalPayments:     total,
		CompletedPayments: completed,
		PendingPayments:   pending,
		TotalAmount:       totalAmount,
		MethodStats:       methodStats,
		RecentPayments:    recent,
	}, nil
}
