package model

type InventoryItem struct {
	DTO
	Name         string  `gorm:"not null" json:"name"`
	Category     string  `gorm:"index" json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	ReorderLevel float64 `json:"reorderLevel"`
	CostPerUnit  float64 `json:"costPerUnit"`
	Supplier     string  `json:"supplier,omitempty"`
}

type CreateInventoryItemInput struct {
	Name         string  `json:"name" validate:"required,min=2"`
	Category     string  `json:"category" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gte=0"`
	Unit         string  `json:"unit" validate:"required"`
	ReorderLevel float64 `json:"reorderLevel" validate:"gte=0"`
	CostPerUnit  float64 `json:"costPerUnit" validate:"gte=0"`
	Supplier     string  `json:"supplier"`
}

type EditInventoryItemInput struct {
	Name         *string  `json:"name" validate:"omitempty,min=2"`
	Category     *string  `json:"category"`
	Quantity     *float64 `json:"quantity" validate:"omitempty,gte=0"`
	Unit         *string  `json:"unit"`
	ReorderLevel *float64 `json:"reorderLevel" validate:"omitempty,gte=0"`
	CostPerUnit  *float64 `json:"costPerUnit" validate:"omitempty,gte=0"`
	Supplier     *string  `json:"supplier"`
}

type FilterInventory struct {
	SearchKey string `query:"searchKey"`
	Category  string `query:"category"`
	LowStock  *bool  `query:"lowStock"`
	Limit     *int   `query:"limit"`
	Page      *int   `query:"page"`
}

type InventoryStats struct {
	TotalItems    int64   `json:"totalItems"`
	LowStockItems int64   `json:"lowStockItems"`
	StockValue    float64 `json:"stockValue"`
}
