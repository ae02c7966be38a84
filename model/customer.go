package model

type Customer struct {
	DTO
	Name    string  `gorm:"not null" json:"name"`
	Email   *string `gorm:"unique" json:"email,omitempty"`
	Phone   string  `gorm:"unique;not null" json:"phone"`
	Address string  `json:"address,omitempty"`
}

type CreateCustomerInput struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   string  `json:"phone" validate:"required,min=7,max=15"`
	Address string  `json:"address"`
}

type EditCustomerInput struct {
	Name    *string `json:"name" validate:"omitempty,min=2"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,min=7,max=15"`
	Address *string `json:"address"`
}

type FilterCustomer struct {
	SearchKey string `query:"searchKey"`
	Limit     *int   `query:"limit"`
	Page      *int   `query:"page"`
}
