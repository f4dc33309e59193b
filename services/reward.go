package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

// EarnedPoints converts a paid amount (VND) into reward points:
// floor(paid / 1,000,000 * rate).
func EarnedPoints(paid float64, rate int) int {
	if paid <= 0 || rate <= 0 {
		return 0
	}
	return int(paid / 1_000_000 * float64(rate))
}

// PointsDiscount converts a point balance into a discount against the
// remaining order amount. Points are spent in whole sets of pointsPerSet,
// each worth setValue VND. The discount never exceeds the remaining amount;
// the last set may be clipped by the cap but its points are still spent.
func PointsDiscount(balance, pointsPerSet int, setValue, remaining float64) (discount float64, spent int) {
	if balance < pointsPerSet || remaining <= 0 || pointsPerSet <= 0 || setValue <= 0 {
		return 0, 0
	}
	sets := balance / pointsPerSet
	maxSets := int(remaining / setValue)
	if remaining-float64(maxSets)*setValue > 0 {
		maxSets++ // a final partial set may cover the tail
	}
	if sets > maxSets {
		sets = maxSets
	}
	discount = float64(sets) * setValue
	if discount > remaining {
		discount = remaining
	}
	return discount, sets * pointsPerSet
}

// GetRewardAccount returns the user's point row, creating it lazily.
func GetRewardAccount(db *gorm.DB, userID string) (*models.RewardPoint, error) {
	var rp models.RewardPoint
	err := db.Where("user_id = ?", userID).First(&rp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rp = models.RewardPoint{UserID: userID}
		if err := db.Create(&rp).Error; err != nil {
			return nil, err
		}
		return &rp, nil
	}
	if err != nil {
		return nil, err
	}
	return &rp, nil
}

// creditPoints adds points inside tx and logs a transaction row.
func creditPoints(tx *gorm.DB, userID string, points int, kind, note string, orderID *uint) error {
	if points == 0 {
		return nil
	}
	rp, err := GetRewardAccount(tx, userID)
	if err != nil {
		return err
	}
	rp.Balance += points
	if points > 0 && (kind == models.RewardKindEarn) {
		rp.Lifetime += points
	}
	if err := tx.Save(rp).Error; err != nil {
		return err
	}
	return tx.Create(&models.RewardTransaction{
		UserID:  userID,
		OrderID: orderID,
		Points:  points,
		Kind:    kind,
		Note:    note,
	}).Error
}

// spendPoints deducts points inside tx, failing when the balance is short.
func spendPoints(tx *gorm.DB, userID string, points int, note string, orderID *uint) error {
	rp, err := GetRewardAccount(tx, userID)
	if err != nil {
		return err
	}
	if rp.Balance < points {
		return BadRequest("not enough reward points")
	}
	rp.Balance -= points
	if err := tx.Save(rp).Error; err != nil {
		return err
	}
	return tx.Create(&models.RewardTransaction{
		UserID:  userID,
		OrderID: orderID,
		Points:  -points,
		Kind:    models.RewardKindRedeem,
		Note:    note,
	}).Error
}

// RedeemPointsToVoucher burns a fixed point cost and mints a time-limited
// single-use voucher for the user.
func RedeemPointsToVoucher(db *gorm.DB, cfg config.RewardConfig, userID string) (*models.Voucher, error) {
	var voucher *models.Voucher
	err := db.Transaction(func(tx *gorm.DB) error {
		rp, err := GetRewardAccount(tx, userID)
		if err != nil {
			return err
		}
		if rp.Balance < cfg.VoucherCost {
			return BadRequest("not enough reward points for a voucher")
		}
		rp.Balance -= cfg.VoucherCost
		if err := tx.Save(rp).Error; err != nil {
			return err
		}

		v := models.Voucher{
			Code:      voucherCode(),
			UserID:    userID,
			Value:     cfg.VoucherValue,
			Status:    models.VoucherActive,
			Source:    models.VoucherSourceRedeem,
			ExpiresAt: time.Now().AddDate(0, 0, cfg.VoucherTTLDays),
		}
		if err := tx.Create(&v).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.RewardTransaction{
			UserID: userID,
			Points: -cfg.VoucherCost,
			Kind:   models.RewardKindVoucher,
			Note:   "redeemed points for voucher " + v.Code,
		}).Error; err != nil {
			return err
		}
		voucher = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return voucher, nil
}

// redeemVoucher fetches the voucher FOR UPDATE, validates it against the
// order, and marks it REDEEMED. The row lock is what stops two concurrent
// checkouts from both spending a single-use code.
func redeemVoucher(tx *gorm.DB, code, userID string, orderValue float64) (*models.Voucher, error) {
	var v models.Voucher
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", strings.TrimSpace(code)).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, BadRequest("voucher code not found")
	}
	if err != nil {
		return nil, err
	}

	if err := validateVoucher(&v, userID, orderValue); err != nil {
		return nil, err
	}

	now := time.Now()
	v.Status = models.VoucherRedeemed
	v.RedeemedAt = &now
	if err := tx.Save(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// validateVoucher checks a fetched voucher against the redeeming user and
// order. Callers must hold the row lock so a concurrent redemption cannot
// pass the ACTIVE check twice.
func validateVoucher(v *models.Voucher, userID string, orderValue float64) error {
	if v.UserID != "" && v.UserID != userID {
		return Forbidden("voucher belongs to another user")
	}
	if v.Status != models.VoucherActive {
		return Conflict("voucher has already been used")
	}
	if time.Now().After(v.ExpiresAt) {
		return BadRequest("voucher has expired")
	}
	if orderValue < v.MinOrderValue {
		return BadRequest("order does not meet the voucher minimum")
	}
	return nil
}

// ListVouchers returns the user's vouchers, most recent first.
func ListVouchers(db *gorm.DB, userID string) ([]models.Voucher, error) {
	var vouchers []models.Voucher
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&vouchers).Error
	return vouchers, err
}

// RewardSummary is what the rewards endpoint returns.
type RewardSummary struct {
	Balance  int    `json:"balance"`
	Lifetime int    `json:"lifetime"`
	Tier     string `json:"tier"`
}

func GetRewardSummary(db *gorm.DB, userID string) (*RewardSummary, error) {
	rp, err := GetRewardAccount(db, userID)
	if err != nil {
		return nil, err
	}
	return &RewardSummary{
		Balance:  rp.Balance,
		Lifetime: rp.Lifetime,
		Tier:     models.TierFor(rp.Lifetime),
	}, nil
}

// ListRewardHistory returns the transaction log for a user.
func ListRewardHistory(db *gorm.DB, userID string) ([]models.RewardTransaction, error) {
	var txs []models.RewardTransaction
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Limit(100).Find(&txs).Error
	return txs, err
}

func voucherCode() string {
	return "FURNI-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
