package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return conn
}

func mustCreateTestCategory(t *testing.T, tx *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := &models.Category{
		Name: "Category " + slug,
		Slug: slug,
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, name string, mutate ...func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          name,
		Slug:          fmt.Sprintf("p-%s", uuid.NewString()),
		PriceCents:    1000,
		StockQuantity: 10,
		Unit:          "unit",
		IsActive:      true,
	}
	for _, fn := range mutate {
		fn(product)
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
