package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant_manager/model"
	"restaurant_manager/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPaymentStore struct {
	orders   map[uint]*model.Order
	payments []*model.Payment
	nextID   uint
}

func newStubPaymentStore() *stubPaymentStore {
	return &stubPaymentStore{orders: map[uint]*model.Order{}}
}

func (s *stubPaymentStore) Transaction(_ context.Context, fn func(service.PaymentStore) error) error {
	return fn(s)
}

func (s *stubPaymentStore) GetOrder(_ context.Context, id uint) (*model.Order, error) {
	return s.orders[id], nil
}

func (s *stubPaymentStore) GetOrderForUpdate(ctx context.Context, id uint) (*model.Order, error) {
	return s.GetOrder(ctx, id)
}

func (s *stubPaymentStore) CountCompletedByOrder(_ context.Context, orderID uint) (int64, error) {
	var n int64
	for _, p := range s.payments {
		if p.OrderId == orderID && p.Status == model.PaymentStatusCompleted {
			n++
		}
	}
	return n, nil
}

func (s *stubPaymentStore) CreatePayment(_ context.Context, payment *model.Payment) error {
	s.nextID++
	payment.ID = s.nextID
	s.payments = append(s.payments, payment)
	return nil
}

func (s *stubPaymentStore) GetPayment(_ context.Context, id uint) (*model.Payment, error) {
	for _, p := range s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubPaymentStore) ListPayments(_ context.Context, filter model.PaymentFilter) ([]model.Payment, int64, error) {
	var out []model.Payment
	for _, p := range s.payments {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *stubPaymentStore) CountPayments(_ context.Context, status string) (int64, error) {
	if status == "" {
		return int64(len(s.payments)), nil
	}
	var n int64
	for _, p := range s.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *stubPaymentStore) SumCompletedAmount(_ context.Context) (float64, error) {
	var sum float64
	for _, p := range s.payments {
		if p.Status == model.PaymentStatusCompleted {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (s *stubPaymentStore) MethodAggregates(_ context.Context) ([]model.PaymentMethodAggregate, error) {
	groups := map[string]*model.PaymentMethodAggregate{}
	var keys []string
	for _, p := range s.payments {
		key := "\x00"
		if p.Method != nil {
			key = *p.Method
		}
		g, ok := groups[key]
		if !ok {
			g = &model.PaymentMethodAggregate{Method: p.Method}
			groups[key] = g
			keys = append(keys, key)
		}
		g.Count++
		g.TotalAmount += p.Amount
	}
	rows := make([]model.PaymentMethodAggregate, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, *groups[k])
	}
	return rows, nil
}

func (s *stubPaymentStore) RecentPayments(_ context.Context, limit int) ([]model.Payment, error) {
	var recent []model.Payment
	for i := len(s.payments) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, *s.payments[i])
	}
	return recent, nil
}

func newPaymentTestApp(store *stubPaymentStore) *fiber.App {
	app := fiber.New()
	h := NewPaymentHandler(service.NewPaymentService(store, service.PaymentPolicy{AllowMultiplePayments: true}))
	h.RegisterRoutes(app.Group("/api/v1/payments"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func TestPaymentCreateEndpoint(t *testing.T) {
	store := newStubPaymentStore()
	store.orders[1] = &model.Order{DTO: model.DTO{ID: 1}, Status: model.OrderStatusDelivered}
	app := newPaymentTestApp(store)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/payments/", map[string]any{
		"orderId": 1,
		"amount":  499.99,
		"method":  "upi",
		"notes":   "split later",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Payment processed successfully", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["orderId"])
	assert.Equal(t, 499.99, data["amount"])
	assert.Equal(t, "completed", data["status"])
	assert.Contains(t, data["transactionId"], "TXN")
}

func TestPaymentCreateEndpoint_ValidationErrors(t *testing.T) {
	app := newPaymentTestApp(newStubPaymentStore())

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/payments/", map[string]any{
		"orderId": 0,
		"amount":  0,
		"method":  "cheque",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])

	errs := body["errors"].([]any)
	require.Len(t, errs, 3)
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.(map[string]any)["field"].(string)] = true
	}
	assert.True(t, fields["orderId"])
	assert.True(t, fields["amount"])
	assert.True(t, fields["method"])
}

func TestPaymentCreateEndpoint_OrderNotFound(t *testing.T) {
	app := newPaymentTestApp(newStubPaymentStore())

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/payments/", map[string]any{
		"orderId": 404,
		"amount":  10,
		"method":  "cash",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Order not found", body["message"])
}

func TestPaymentCreateEndpoint_OrderAlreadyPaid(t *testing.T) {
	store := newStubPaymentStore()
	store.orders[2] = &model.Order{DTO: model.DTO{ID: 2}, Status: model.OrderStatusPaid}
	app := newPaymentTestApp(store)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/payments/", map[string]any{
		"orderId": 2,
		"amount":  10,
		"method":  "card",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Order is already paid", body["message"])
}

func TestPaymentListEndpoint(t *testing.T) {
	store := newStubPaymentStore()
	cash := model.PaymentMethodCash
	for i := 0; i < 3; i++ {
		store.payments = append(store.payments, &model.Payment{
			DTO:           model.DTO{ID: uint(i + 1)},
			OrderId:       1,
			Amount:        float64(10 * (i + 1)),
			Method:        &cash,
			Status:        model.PaymentStatusCompleted,
			TransactionID: fmt.Sprintf("TXN%d", i),
		})
	}
	app := newPaymentTestApp(store)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/payments/", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Len(t, data["payments"].([]any), 3)

	pagination := data["pagination"].(map[string]any)
	assert.Equal(t, float64(3), pagination["total"])
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(50), pagination["limit"])
	assert.Equal(t, float64(1), pagination["pages"])
}

func TestPaymentGetEndpoint(t *testing.T) {
	store := newStubPaymentStore()
	card := model.PaymentMethodCard
	store.payments = append(store.payments, &model.Payment{
		DTO: model.DTO{ID: 9}, OrderId: 1, Amount: 75, Method: &card, Status: model.PaymentStatusCompleted,
	})
	app := newPaymentTestApp(store)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/payments/9", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(9), body["data"].(map[string]any)["id"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/payments/12", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Payment not found", body["message"])

	// a non-numeric id is treated as an unknown payment, not a bad request
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/payments/abc", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Payment not found", body["message"])
}

func TestPaymentStatsEndpoint(t *testing.T) {
	store := newStubPaymentStore()
	store.orders[1] = &model.Order{DTO: model.DTO{ID: 1}, Status: model.OrderStatusDelivered}
	app := newPaymentTestApp(store)

	// the stats path must not be swallowed by the :id route
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/payments/stats/overview", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["totalPayments"])
	assert.Equal(t, float64(0), data["totalAmount"])

	_, createBody := doJSON(t, app, http.MethodPost, "/api/v1/payments/", map[string]any{
		"orderId": 1, "amount": 120.0, "method": "cash",
	})
	require.Equal(t, true, createBody["success"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/payments/stats/overview", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data = body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["totalPayments"])
	assert.Equal(t, float64(1), data["completedPayments"])
	assert.Equal(t, float64(120), data["totalAmount"])

	methodStats := data["methodStats"].([]any)
	require.Len(t, methodStats, 1)
	bucket := methodStats[0].(map[string]any)
	assert.Equal(t, "cash", bucket["method"])
	assert.Equal(t, float64(1), bucket["count"])
	assert.Equal(t, float64(120), bucket["totalAmount"])

	assert.Len(t, data["recentPayments"].([]any), 1)
}
