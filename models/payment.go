package models

import "time"

type PaymentAttemptStatus string

const (
	PaymentAttemptPending PaymentAttemptStatus = "PENDING"
	PaymentAttemptSuccess PaymentAttemptStatus = "SUCCESS"
	PaymentAttemptFailed  PaymentAttemptStatus = "FAILED"
)

// Payment records one gateway attempt for an order. Fallback attempts leave
// one row each.
type Payment struct {
	ID             uint                 `gorm:"primaryKey" json:"id"`
	OrderID        uint                 `gorm:"index;not null" json:"order_id"`
	Gateway        string               `json:"gateway"`
	Amount         float64              `json:"amount"`
	Status         PaymentAttemptStatus `gorm:"type:VARCHAR(10);default:'PENDING'" json:"status"`
	TransactionRef string               `json:"transaction_ref"`
	PayURL         string               `json:"pay_url,omitempty"`
	Message        string               `json:"message,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
