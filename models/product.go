package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `json:"description"`
	Material     string         `json:"material"`   // e.g. oak, rattan, steel
	Dimensions   string         `json:"dimensions"` // "WxDxH cm"
	SalePrice    float64        `gorm:"not null" json:"sale_price"` // VND
	RegularPrice float64        `json:"regular_price"`
	Image        string         `json:"image"`
	Weight       float64        `json:"weight"` // kg, drives shipping cost
	Stock        int            `json:"stock"`
	Active       bool           `gorm:"default:true" json:"active"`
	Categories   []Category     `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"unique;not null" json:"name"`
	Slug     string    `gorm:"unique;not null" json:"slug"`
	Products []Product `gorm:"many2many:product_categories" json:"products,omitempty"`
}
