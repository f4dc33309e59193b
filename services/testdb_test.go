package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

// openTestDB gives each test its own in-memory sqlite database. The pool is
// pinned to one connection so every query sees the same memory store.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Voucher{},
		&models.RewardPoint{},
		&models.RewardTransaction{},
		&models.Notification{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	user := models.User{
		ID:       id,
		Email:    id + "@example.com",
		Name:     "Test " + id,
		Provider: "local",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Omit("Cart", "Orders", "Reward").Create(&user).Error)
}
