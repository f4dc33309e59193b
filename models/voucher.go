package models

import "time"

type VoucherStatus string

const (
	VoucherActive   VoucherStatus = "ACTIVE"
	VoucherRedeemed VoucherStatus = "REDEEMED"
	VoucherExpired  VoucherStatus = "EXPIRED"
)

const (
	VoucherSourceRedeem = "points_redeem"
	VoucherSourcePromo  = "promotion"
)

// Voucher is single-use. Redemption happens under SELECT ... FOR UPDATE so
// two concurrent requests cannot both spend it.
type Voucher struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Code          string        `gorm:"uniqueIndex;not null" json:"code"`
	UserID        string        `gorm:"index" json:"user_id"`
	Value         float64       `json:"value"` // VND
	MinOrderValue float64       `json:"min_order_value"`
	Status        VoucherStatus `gorm:"type:VARCHAR(10);default:'ACTIVE'" json:"status"`
	Source        string        `json:"source"`
	ExpiresAt     time.Time     `json:"expires_at"`
	RedeemedAt    *time.Time    `json:"redeemed_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
