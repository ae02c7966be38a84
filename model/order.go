package model

import "time"

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusPaid      = "PAID"
	OrderStatusCancelled = "CANCELLED"
)

type Order struct {
	DTO
	PublicCode  string      `gorm:"unique;size:20" json:"publicCode"`
	CustomerID  *uint       `json:"customerId,omitempty"`
	Customer    *Customer   `json:"customer,omitempty"`
	TableNumber int         `json:"tableNumber"`
	Total       float64     `json:"total"`
	Status      string      `gorm:"default:PENDING;index" json:"status"`
	Notes       string      `json:"notes,omitempty"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payments    []Payment   `gorm:"foreignKey:OrderId" json:"payments,omitempty"`
	PaidAt      *time.Time  `json:"paidAt,omitempty"`
	CancelledAt *time.Time  `json:"cancelledAt,omitempty"`
}

// OrderItem snapshots the menu item price at ordering time.
type OrderItem struct {
	DTO
	OrderID    uint      `gorm:"not null;index" json:"orderId"`
	MenuItemID uint      `gorm:"not null" json:"menuItemId"`
	MenuItem   *MenuItem `json:"menuItem,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      float64   `gorm:"not null" json:"price"`
}

type OrderItemInput struct {
	MenuItemID uint `json:"menuItemId" validate:"required,gt=0"`
	Quantity   int  `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderInput struct {
	CustomerID  *uint            `json:"customerId"`
	TableNumber int              `json:"tableNumber" validate:"required,gt=0"`
	Items       []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Notes       string           `json:"notes"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED PREPARING READY DELIVERED PAID CANCELLED"`
}

type FilterOrder struct {
	Status      string `query:"status"`
	TableNumber *int   `query:"tableNumber"`
	CustomerID  *uint  `query:"customerId"`
	Limit       *int   `query:"limit"`
	Page        *int   `query:"page"`
}

// OrderEvent is published on the order events channel whenever a status changes.
type OrderEvent struct {
	OrderID     uint      `json:"orderId"`
	PublicCode  string    `json:"publicCode"`
	TableNumber int       `json:"tableNumber"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	At          time.Time `json:"at"`
}
