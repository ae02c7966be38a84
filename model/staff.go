package model

import "time"

type Staff struct {
	DTO
	Name     string     `gorm:"not null" json:"name"`
	Role     string     `gorm:"index" json:"role"`
	Phone    string     `gorm:"unique;not null" json:"phone"`
	Email    *string    `json:"email,omitempty"`
	Salary   float64    `json:"salary"`
	IsActive bool       `gorm:"default:true" json:"isActive"`
	JoinedAt *time.Time `json:"joinedAt,omitempty"`
}

type CreateStaffInput struct {
	Name   string  `json:"name" validate:"required,min=2"`
	Role   string  `json:"role" validate:"required"`
	Phone  string  `json:"phone" validate:"required,min=7,max=15"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Salary float64 `json:"salary" validate:"gte=0"`
}

type EditStaffInput struct {
	Name   *string  `json:"name" validate:"omitempty,min=2"`
	Role   *string  `json:"role"`
	Phone  *string  `json:"phone" validate:"omitempty,min=7,max=15"`
	Email  *string  `json:"email" validate:"omitempty,email"`
	Salary *float64 `json:"salary" validate:"omitempty,gte=0"`
}

type FilterStaff struct {
	SearchKey string `query:"searchKey"`
	Role      string `query:"role"`
	Active    *bool  `query:"active"`
	Limit     *int   `query:"limit"`
	Page      *int   `query:"page"`
}

type StaffStats struct {
	Total       int64            `json:"total"`
	Active      int64            `json:"active"`
	ByRole      map[string]int64 `json:"byRole"`
	SalaryTotal float64          `json:"salaryTotal"`
}
