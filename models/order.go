package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting payment confirmation
	OrderStatusProcessing OrderStatus = "processing" // paid or zero-due, being prepared
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OrderRef        string        `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID          string        `gorm:"not null;index" json:"user_id"`
	User            User          `gorm:"foreignKey:UserID" json:"-"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Shipping        ShippingInfo  `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping"`
	Subtotal        float64       `json:"subtotal"`
	ShippingCost    float64       `json:"shipping_cost"`
	VoucherDiscount float64       `json:"voucher_discount"`
	PointsDiscount  float64       `json:"points_discount"`
	PointsSpent     int           `json:"points_spent"`
	TotalAmount     float64       `json:"total_amount"`
	VoucherID       *uint         `json:"voucher_id,omitempty"`
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod   string        `json:"payment_method"` // momo, vnpay, googlepay, banktransfer, cod
	IsPaid          bool          `gorm:"default:false" json:"is_paid"`
	Payments        []Payment     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ShippingInfo is an immutable snapshot taken at checkout; later profile
// edits must not retroactively change past orders.
type ShippingInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	District string `json:"district"`
	Ward     string `json:"ward"`
	Street   string `json:"street"`
	Note     string `json:"note"`
}

// OrderItem denormalizes the product so the order survives later product
// edits or deletion.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"index" json:"order_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	UnitPrice    float64 `json:"unit_price"`
	RegularPrice float64 `json:"regular_price"`
	Weight       float64 `json:"weight"`
	Quantity     int     `json:"quantity"`
}
