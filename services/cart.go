package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

// GetCart returns the user's cart with items, creating the cart row if the
// user somehow lacks one.
func GetCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// SetCartItem adds a product to the cart or replaces the quantity of an
// existing line. Quantity must not exceed current stock and the product must
// be active; a violation rejects the request before any write.
func SetCartItem(db *gorm.DB, userID string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, BadRequest("quantity must be at least 1")
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, BadRequest("product does not exist")
		}
		return nil, err
	}
	if !product.Active {
		return nil, BadRequest("product is no longer available")
	}
	if quantity > product.Stock {
		return nil, BadRequest("quantity exceeds available stock")
	}

	cart, err := GetCart(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			CartID:       cart.CartID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.Image,
			UnitPrice:    product.SalePrice,
			Weight:       product.Weight,
			Quantity:     quantity,
			AddedAt:      time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	item.UnitPrice = product.SalePrice
	item.AddedAt = time.Now()
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes one product line from the cart.
func RemoveCartItem(db *gorm.DB, userID string, productID uint) error {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return NotFound("cart not found")
	}
	res := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFound("cart item not found")
	}
	return nil
}

// ClearCart removes every item from the user's cart.
func ClearCart(db *gorm.DB, userID string) error {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return NotFound("cart not found")
	}
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}
