package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

const productCacheTTL = 5 * time.Minute

// ProductFilter narrows the public product listing.
type ProductFilter struct {
	CategoryID uint
	Search     string
	Page       int
	PageSize   int
}

// ListProducts returns active products with pagination and optional
// category/search filtering.
func ListProducts(db *gorm.DB, f ProductFilter) ([]models.Product, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}

	q := db.Model(&models.Product{}).Where("active = ?", true)
	if f.Search != "" {
		q = q.Where("name ILIKE ?", "%"+f.Search+"%")
	}
	if f.CategoryID != 0 {
		q = q.Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Where("pc.category_id = ?", f.CategoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := q.Preload("Categories").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&products).Error
	return products, total, err
}

// GetProduct reads one product cache-aside: redis hit first, DB on miss,
// then backfill with a TTL. A nil redis client degrades to DB-only.
func GetProduct(ctx context.Context, db *gorm.DB, rdb *redis.Client, id uint) (*models.Product, error) {
	key := productCacheKey(id)

	if rdb != nil {
		if raw, err := rdb.Get(ctx, key).Result(); err == nil {
			var cached models.Product
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var product models.Product
	if err := db.Preload("Categories").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("product not found")
		}
		return nil, err
	}

	if rdb != nil {
		if raw, err := json.Marshal(product); err == nil {
			if err := rdb.Set(ctx, key, raw, productCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Uint("product_id", id).Msg("product cache backfill failed")
			}
		}
	}
	return &product, nil
}

// InvalidateProduct drops the cached copy after an admin mutation.
func InvalidateProduct(ctx context.Context, rdb *redis.Client, id uint) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, productCacheKey(id)).Err(); err != nil {
		log.Warn().Err(err).Uint("product_id", id).Msg("product cache invalidation failed")
	}
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

type ProductInput struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Material     string  `json:"material"`
	Dimensions   string  `json:"dimensions"`
	SalePrice    float64 `json:"sale_price" binding:"required,gt=0"`
	RegularPrice float64 `json:"regular_price"`
	Image        string  `json:"image"`
	Weight       float64 `json:"weight"`
	Stock        int     `json:"stock" binding:"min=0"`
	Active       *bool   `json:"active"`
	CategoryIDs  []uint  `json:"category_ids"`
}

// CreateProduct inserts a product and attaches its categories.
func CreateProduct(db *gorm.DB, in ProductInput) (*models.Product, error) {
	categories, err := loadCategories(db, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		Name:         in.Name,
		Description:  in.Description,
		Material:     in.Material,
		Dimensions:   in.Dimensions,
		SalePrice:    in.SalePrice,
		RegularPrice: in.RegularPrice,
		Image:        in.Image,
		Weight:       in.Weight,
		Stock:        in.Stock,
		Active:       true,
		Categories:   categories,
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct overwrites a product's fields and category set.
func UpdateProduct(db *gorm.DB, id uint, in ProductInput) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("product not found")
		}
		return nil, err
	}

	categories, err := loadCategories(db, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Material = in.Material
	product.Dimensions = in.Dimensions
	product.SalePrice = in.SalePrice
	product.RegularPrice = in.RegularPrice
	product.Image = in.Image
	product.Weight = in.Weight
	product.Stock = in.Stock
	if in.Active != nil {
		product.Active = *in.Active
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&product).Error; err != nil {
			return err
		}
		return tx.Model(&product).Association("Categories").Replace(categories)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct soft-deletes; existing order items keep their snapshot.
func DeleteProduct(db *gorm.DB, id uint) error {
	res := db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFound("product not found")
	}
	return nil
}

func loadCategories(db *gorm.DB, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	if err := db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		return nil, BadRequest("one or more categories do not exist")
	}
	return categories, nil
}
