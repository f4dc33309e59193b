package models

import "time"

// RewardPoint is one row per user, mutated additively in the same
// transaction as the order that earns or spends the points.
type RewardPoint struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance   int       `json:"balance"`
	Lifetime  int       `json:"lifetime"` // never decreases, drives VIP tier
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RewardKindEarn    = "earn"
	RewardKindRedeem  = "redeem"
	RewardKindRefund  = "refund"
	RewardKindVoucher = "voucher"
)

type RewardTransaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	OrderID   *uint     `json:"order_id,omitempty"`
	Points    int       `json:"points"` // positive for earn/refund, negative for spend
	Kind      string    `json:"kind"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// VIP tiers by lifetime points.
const (
	TierMember  = "member"
	TierSilver  = "silver"
	TierGold    = "gold"
	TierDiamond = "diamond"
)

func TierFor(lifetime int) string {
	switch {
	case lifetime >= 5000:
		return TierDiamond
	case lifetime >= 2000:
		return TierGold
	case lifetime >= 500:
		return TierSilver
	default:
		return TierMember
	}
}
