package models

import (
	"errors"
	"time"

	"github.com/taazabazaar/internal/logger"

	"gorm.io/gorm"
)

// SeedCatalog 初始化种子商品，已存在的商品不会被覆盖
func SeedCatalog(db *gorm.DB, now time.Time) (int, error) {
	if db == nil {
		return 0, errors.New("database not initialized")
	}
	created := 0
	for _, product := range SeedProducts(now) {
		var existing Product
		err := db.Where("id = ?", product.ID).First(&existing).Error
		if err == nil {
			logger.Debugw("seed_product_exists", "product_id", product.ID)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}
		item := product
		if err := db.Create(&item).Error; err != nil {
			return created, err
		}
		created++
	}
	if created > 0 {
		logger.Infow("seed_catalog_created", "count", created)
	}
	return created, nil
}
