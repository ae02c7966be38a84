package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	orders   map[uint]*model.Order
	payments []*model.Payment
	nextID   uint

	// when set, MethodAggregates returns these rows instead of grouping
	// the stored payments
	methodRows []model.PaymentMethodAggregate
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[uint]*model.Order{}}
}

func (f *fakeStore) Transaction(_ context.Context, fn func(PaymentStore) error) error {
	return fn(f)
}

func (f *fakeStore) GetOrder(_ context.Context, id uint) (*model.Order, error) {
	return f.orders[id], nil
}

func (f *fakeStore) GetOrderForUpdate(ctx context.Context, id uint) (*model.Order, error) {
	return f.GetOrder(ctx, id)
}

func (f *fakeStore) CountCompletedByOrder(_ context.Context, orderID uint) (int64, error) {
	var n int64
	for _, p := range f.payments {
		if p.OrderId == orderID && p.Status == model.PaymentStatusCompleted {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CreatePayment(_ context.Context, payment *model.Payment) error {
	f.nextID++
	payment.ID = f.nextID
	payment.CreatedAt = time.Now()
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeStore) GetPayment(_ context.Context, id uint) (*model.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListPayments(_ context.Context, filter model.PaymentFilter) ([]model.Payment, int64, error) {
	var matched []*model.Payment
	for _, p := range f.payments {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Method != "" && (p.Method == nil || *p.Method != filter.Method) {
			continue
		}
		if filter.OrderID != nil && p.OrderId != *filter.OrderID {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch filter.SortBy {
		case "amount":
			less = matched[i].Amount < matched[j].Amount
		default:
			less = matched[i].ID < matched[j].ID
		}
		if filter.SortOrder == "DESC" {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]model.Payment, 0, end-start)
	for _, p := range matched[start:end] {
		page = append(page, *p)
	}
	return page, total, nil
}

func (f *fakeStore) CountPayments(_ context.Context, status string) (int64, error) {
	if status == "" {
		return int64(len(f.payments)), nil
	}
	var n int64
	for _, p := range f.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) SumCompletedAmount(_ context.Context) (float64, error) {
	var sum float64
	for _, p := range f.payments {
		if p.Status == model.PaymentStatusCompleted {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (f *fakeStore) MethodAggregates(_ context.Context) ([]model.PaymentMethodAggregate, error) {
	if f.methodRows != nil {
		return f.methodRows, nil
	}
	type key struct {
		value string
		null  bool
	}
	groups := map[key]*model.PaymentMethodAggregate{}
	var order []key
	for _, p := range f.payments {
		k := key{null: p.Method == nil}
		if p.Method != nil {
			k.value = *p.Method
		}
		g, ok := groups[k]
		if !ok {
			g = &model.PaymentMethodAggregate{Method: p.Method}
			groups[k] = g
			order = append(order, k)
		}
		g.Count++
		g.TotalAmount += p.Amount
	}
	rows := make([]model.PaymentMethodAggregate, 0, len(order))
	for _, k := range order {
		rows = append(rows, *groups[k])
	}
	return rows, nil
}

func (f *fakeStore) RecentPayments(_ context.Context, limit int) ([]model.Payment, error) {
	var recent []model.Payment
	for i := len(f.payments) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, *f.payments[i])
	}
	return recent, nil
}

func (f *fakeStore) addOrder(id uint, status string) {
	f.orders[id] = &model.Order{DTO: model.DTO{ID: id}, Status: status}
}

func newTestService(store *fakeStore) *PaymentService {
	return NewPaymentService(store, PaymentPolicy{AllowMultiplePayments: true})
}

func TestCreatePayment(t *testing.T) {
	store := newFakeStore()
	store.addOrder(7, model.OrderStatusPending)
	svc := newTestService(store)

	payment, err := svc.Create(context.Background(), model.CreatePaymentInput{
		OrderID: 7,
		Amount:  250.50,
		Method:  model.PaymentMethodCash,
		Notes:   "table 4",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), payment.OrderId)
	assert.Equal(t, 250.50, payment.Amount)
	assert.Equal(t, model.PaymentStatusCompleted, payment.Status)
	require.NotNil(t, payment.Method)
	assert.Equal(t, model.PaymentMethodCash, *payment.Method)
	require.NotNil(t, payment.Notes)
	assert.Equal(t, "table 4", *payment.Notes)
	assert.True(t, strings.HasPrefix(payment.TransactionID, "TXN"))
	assert.Greater(t, len(payment.TransactionID), 10)

	// recording a payment never advances the order status
	assert.Equal(t, model.OrderStatusPending, store.orders[7].Status)
}

func TestCreatePayment_ValidationErrors(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(context.Background(), model.CreatePaymentInput{
		OrderID: 0,
		Amount:  0,
		Method:  "bitcoin",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, vErr.Fields, 3)

	fields := map[string]string{}
	for _, f := range vErr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "Order ID is required", fields["orderId"])
	assert.Equal(t, "Amount must be greater than 0", fields["amount"])
	assert.Equal(t, "Invalid payment method", fields["method"])
}

func TestCreatePayment_MethodIsCaseSensitive(t *testing.T) {
	store := newFakeStore()
	store.addOrder(1, model.OrderStatusPending)
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), model.CreatePaymentInput{
		OrderID: 1,
		Amount:  10,
		Method:  "CASH",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "method", vErr.Fields[0].Field)
}

func TestCreatePayment_OrderNotFound(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(context.Background(), model.CreatePaymentInput{
		OrderID: 99,
		Amount:  10,
		Method:  model.PaymentMethodCard,
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCreatePayment_OrderAlreadyPaid(t *testing.T) {
	for _, status := range []string{model.OrderStatusPaid, "paid", "Paid"} {
		store := newFakeStore()
		store.addOrder(3, status)
		svc := newTestService(store)

		_, err := svc.Create(context.Background(), model.CreatePaymentInput{
			OrderID: 3,
			Amount:  10,
			Method:  model.PaymentMethodUPI,
		})
		assert.ErrorIs(t, err, ErrOrderAlreadyPaid, "status %q", status)
	}
}

func TestCreatePayment_SplitPolicy(t *testing.T) {
	store := newFakeStore()
	store.addOrder(5, model.OrderStatusDelivered)
	first := model.CreatePaymentInput{OrderID: 5, Amount: 100, Method: model.PaymentMethodCard}
	second := model.CreatePaymentInput{OrderID: 5, Amount: 50, Method: model.PaymentMethodCash}

	svc := NewPaymentService(store, PaymentPolicy{AllowMultiplePayments: true})
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), second)
	assert.NoError(t, err)

	strict := newFakeStore()
	strict.addOrder(5, model.OrderStatusDelivered)
	svc = NewPaymentService(strict, PaymentPolicy{AllowMultiplePayments: false})
	_, err = svc.Create(context.Background(), first)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), second)
	assert.ErrorIs(t, err, ErrDuplicatePayment)
}

func TestCreatePayment_TransactionIDsDiffer(t *testing.T) {
	store := newFakeStore()
	store.addOrder(1, model.OrderStatusPending)
	svc := newTestService(store)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		p, err := svc.Create(context.Background(), model.CreatePaymentInput{
			OrderID: 1,
			Amount:  float64(i + 1),
			Method:  model.PaymentMethodCash,
		})
		require.NoError(t, err)
		assert.False(t, seen[p.TransactionID], "duplicate transaction id %s", p.TransactionID)
		seen[p.TransactionID] = true
	}
}

func TestNormalizeMethod(t *testing.T) {
	ptr := func(s string) *string { return &s }

	tests := []struct {
		name string
		raw  *string
		want string
	}{
		{"nil", nil, "card"},
		{"empty", ptr(""), "card"},
		{"cash", ptr("cash"), "cash"},
		{"uppercase", ptr("CASH"), "cash"},
		{"mixed_case", ptr("NetBanking"), "netbanking"},
		{"upi", ptr("upi"), "upi"},
		{"legacy_wallet", ptr("wallet"), "card"},
		{"unknown", ptr("cheque"), "card"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMethod(tt.raw))
		})
	}
}

func seedPayments(store *fakeStore, n int) {
	store.addOrder(1, model.OrderStatusDelivered)
	for i := 0; i < n; i++ {
		method := model.PaymentMethodCash
		store.payments = append(store.payments, &model.Payment{
			DTO:           model.DTO{ID: uint(i + 1)},
			OrderId:       1,
			Amount:        float64(i + 1),
			Method:        &method,
			Status:        model.PaymentStatusCompleted,
			TransactionID: fmt.Sprintf("TXN%020d", i),
		})
	}
	store.nextID = uint(n)
}

func TestListPayments_Pagination(t *testing.T) {
	store := newFakeStore()
	seedPayments(store, 120)
	svc := newTestService(store)

	page, err := svc.List(context.Background(), model.ListPaymentsInput{Page: 2, Limit: 50})
	require.NoError(t, err)

	assert.Len(t, page.Payments, 50)
	assert.Equal(t, int64(120), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, 50, page.Pagination.Limit)
	assert.Equal(t, 3, page.Pagination.Pages)

	// defaults kick in for out-of-range values
	page, err = svc.List(context.Background(), model.ListPaymentsInput{Page: 0, Limit: -5})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 50, page.Pagination.Limit)
	assert.Equal(t, 3, page.Pagination.Pages)
}

func TestListPayments_SortAndFilter(t *testing.T) {
	store := newFakeStore()
	store.addOrder(1, model.OrderStatusDelivered)
	store.addOrder(2, model.OrderStatusDelivered)
	cash, card := model.PaymentMethodCash, model.PaymentMethodCard
	store.payments = []*model.Payment{
		{DTO: model.DTO{ID: 1}, OrderId: 1, Amount: 30, Method: &cash, Status: model.PaymentStatusCompleted},
		{DTO: model.DTO{ID: 2}, OrderId: 2, Amount: 10, Method: &card, Status: model.PaymentStatusPending},
		{DTO: model.DTO{ID: 3}, OrderId: 1, Amount: 20, Method: &card, Status: model.PaymentStatusCompleted},
	}
	svc := newTestService(store)

	// unknown sort column falls back to created_at, order defaults to DESC
	page, err := svc.List(context.Background(), model.ListPaymentsInput{SortBy: "evil; DROP TABLE", SortOrder: "sideways"})
	require.NoError(t, err)
	require.Len(t, page.Payments, 3)
	assert.Equal(t, uint(3), page.Payments[0].ID)

	page, err = svc.List(context.Background(), model.ListPaymentsInput{SortBy: "amount", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, float64(10), page.Payments[0].Amount)

	page, err = svc.List(context.Background(), model.ListPaymentsInput{Status: model.PaymentStatusCompleted})
	require.NoError(t, err)
	assert.Len(t, page.Payments, 2)
	assert.Equal(t, int64(2), page.Pagination.Total)

	orderID := uint(2)
	page, err = svc.List(context.Background(), model.ListPaymentsInput{OrderID: &orderID})
	require.NoError(t, err)
	require.Len(t, page.Payments, 1)
	assert.Equal(t, uint(2), page.Payments[0].OrderId)
}

func TestGetPayment(t *testing.T) {
	store := newFakeStore()
	seedPayments(store, 1)
	svc := newTestService(store)

	payment, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), payment.ID)

	_, err = svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestStats_MergesLegacyMethodGroups(t *testing.T) {
	ptr := func(s string) *string { return &s }

	store := newFakeStore()
	cash := model.PaymentMethodCash
	store.payments = []*model.Payment{
		{DTO: model.DTO{ID: 1}, Amount: 100, Method: &cash, Status: model.PaymentStatusCompleted},
		{DTO: model.DTO{ID: 2}, Amount: 50, Status: model.PaymentStatusCompleted},
		{DTO: model.DTO{ID: 3}, Amount: 25, Method: ptr("CARD"), Status: model.PaymentStatusPending},
	}
	// raw groups as the database would emit them: NULL and "CARD" are
	// distinct rows that must collapse into the card bucket
	store.methodRows = []model.PaymentMethodAggregate{
		{Method: &cash, Count: 1, TotalAmount: 100},
		{Method: nil, Count: 1, TotalAmount: 50},
		{Method: ptr("CARD"), Count: 1, TotalAmount: 25},
	}
	svc := newTestService(store)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalPayments)
	assert.Equal(t, int64(2), stats.CompletedPayments)
	assert.Equal(t, int64(1), stats.PendingPayments)
	assert.Equal(t, float64(150), stats.TotalAmount)

	require.Len(t, stats.MethodStats, 2)
	assert.Equal(t, model.MethodStat{Method: "cash", Count: 1, TotalAmount: 100}, stats.MethodStats[0])
	assert.Equal(t, model.MethodStat{Method: "card", Count: 2, TotalAmount: 75}, stats.MethodStats[1])

	assert.Len(t, stats.RecentPayments, 3)
}

func TestStats_RecentPaymentsCapped(t *testing.T) {
	store := newFakeStore()
	seedPayments(store, 12)
	svc := newTestService(store)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.RecentPayments, 5)
	// newest first
	assert.Equal(t, uint(12), stats.RecentPayments[0].ID)
	assert.Equal(t, uint(8), stats.RecentPayments[4].ID)
}
