package model

type MenuItem struct {
	DTO
	Name        string  `gorm:"not null" json:"name"`
	Slug        string  `gorm:"unique;size:120" json:"slug"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"index" json:"category"`
	Description string  `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Available   bool    `gorm:"default:true" json:"available"`
}

type CreateMenuItemInput struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
	Available   *bool   `json:"available"`
}

type EditMenuItemInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=2"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
	Available   *bool    `json:"available"`
}

type FilterMenu struct {
	SearchKey string `query:"searchKey"`
	Category  string `query:"category"`
	Available *bool  `query:"available"`
	Limit     *int   `query:"limit"`
	Page      *int   `query:"page"`
}
