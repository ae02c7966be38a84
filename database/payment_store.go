package database

import (
	"context"
	"errors"

	"restaurant_manager/model"
	"restaurant_manager/service"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentStore is the GORM implementation of service.PaymentStore.
type PaymentStore struct {
	db *gorm.DB
}

func NewPaymentStore(db *gorm.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

func (s *PaymentStore) Transaction(ctx context.Context, fn func(service.PaymentStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PaymentStore{db: tx})
	})
}

func (s *PaymentStore) GetOrder(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (s *PaymentStore) GetOrderForUpdate(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (s *PaymentStore) CountCompletedByOrder(ctx context.Context, orderID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ? AND status = ?", orderID, model.PaymentStatusCompleted).
		Count(&n).Error
	return n, err
}

func (s *PaymentStore) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return s.db.WithContext(ctx).Create(payment).Error
}

func (s *PaymentStore) GetPayment(ctx context.Context, id uint) (*model.Payment, error) {
	var payment model.Payment
	err := s.db.WithContext(ctx).
		Preload("Order").
		Preload("Order.Customer", selectCustomerSummary).
		First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentStore) ListPayments(ctx context.Context, filter model.PaymentFilter) ([]model.Payment, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Payment{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Method != "" {
		q = q.Where("method = ?", filter.Method)
	}
	if filter.OrderID != nil {
		q = q.Where("order_id = ?", *filter.OrderID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []model.Payment
	err := q.
		Preload("Order", selectOrderSummary).
		Preload("Order.Customer", selectCustomerSummary).
		Order(filter.SortBy + " " + filter.SortOrder).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (s *PaymentStore) CountPayments(ctx context.Context, status string) (int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Payment{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (s *PaymentStore) SumCompletedAmount(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Raw(`
        SELECT COALESCE(SUM(amount), 0)::float8
        FROM payments
        WHERE status = ? AND deleted_at IS NULL
    `, model.PaymentStatusCompleted).Scan(&total).Error
	return total, err
}

// MethodAggregates groups completed payments by their RAW stored method. SQL
// sums come back as numeric text; the ::float8 cast and the typed destination
// struct make sure callers only ever see numbers.
func (s *PaymentStore) MethodAggregates(ctx context.Context) ([]model.PaymentMethodAggregate, error) {
	var rows []model.PaymentMethodAggregate
	err := s.db.WithContext(ctx).Model(&model.Payment{}).
		Select("method, COUNT(id) AS count, COALESCE(SUM(amount), 0)::float8 AS total_amount").
		Where("status = ?", model.PaymentStatusCompleted).
		Group("method").
		Scan(&rows).Error
	return rows, err
}

func (s *PaymentStore) RecentPayments(ctx context.Context, limit int) ([]model.Payment, error) {
	var payments []model.Payment
	err := s.db.WithContext(ctx).
		Preload("Order", selectOrderSummary).
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

// customer_id rides along so the nested customer preload can still join
func selectOrderSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "table_number", "total", "status", "customer_id")
}

func selectCustomerSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "phone")
}
