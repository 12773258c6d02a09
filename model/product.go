package model

type Product struct {
	DTO
	Name          string  `gorm:"not null" json:"name"`
	Slug          string  `gorm:"unique;not null" json:"slug"`
	DurationLabel string  `gorm:"not null" json:"durationLabel"` // "1 Month", "6 Months"...
	Price         float64 `gorm:"not null" json:"price"`
	Description   string  `json:"description"`
	IsActive      bool    `gorm:"default:true" json:"isActive"`
}

type Products []Product

type CreateProductInput struct {
	Name          string  `validate:"required" json:"name"`
	DurationLabel string  `validate:"required" json:"durationLabel"`
	Price         float64 `validate:"required,gt=0" json:"price"`
	Description   string  `json:"description"`
}

type UpdateProductInput struct {
	Name          *string  `json:"name"`
	DurationLabel *string  `json:"durationLabel"`
	Price         *float64 `validate:"omitempty,gt=0" json:"price"`
	Description   *string  `json:"description"`
	IsActive      *bool    `json:"isActive"`
}
