package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/pagination"
)

func TestRepositoryFindProductBySlug(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	category := mustCreateTestCategory(t, conn, "soil-amendments")
	created := mustCreateTestProduct(t, conn, "Organic Compost", func(p *models.Product) {
		p.Slug = "organic-compost"
		p.CategoryID = &category.ID
	})

	found, err := repo.FindProductBySlug(ctx, "  Organic-Compost ")
	if err != nil {
		t.Fatalf("find by slug: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected product %s, got %s", created.ID, found.ID)
	}
	if found.Category == nil || found.Category.Slug != "soil-amendments" {
		t.Fatalf("expected category preloaded")
	}

	if _, err := repo.FindProductBySlug(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestRepositoryListActiveProductsExcludesHidden(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	mustCreateTestProduct(t, conn, "Visible")
	mustCreateTestProduct(t, conn, "Hidden", func(p *models.Product) { p.IsActive = false })

	rows, err := repo.ListActiveProducts(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Visible" {
		t.Fatalf("expected only the active product, got %d rows", len(rows))
	}
}

func TestRepositoryListProductsFiltersAndPaginates(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	category := mustCreateTestCategory(t, conn, "cover-crops")
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * time.Minute
		mustCreateTestProduct(t, conn, "Clover Mix", func(p *models.Product) {
			p.CategoryID = &category.ID
			p.CreatedAt = base.Add(offset)
		})
	}
	mustCreateTestProduct(t, conn, "Unrelated")

	page, err := repo.ListProducts(ctx, ListProductsInput{
		CategorySlug: "cover-crops",
		Pagination:   pagination.Params{Limit: 2},
	})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	// limit+1 buffer rows come back so the service can detect a next page
	if len(page) != 3 {
		t.Fatalf("expected 3 buffered rows, got %d", len(page))
	}

	cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: page[1].CreatedAt, ID: page[1].ID})
	rest, err := repo.ListProducts(ctx, ListProductsInput{
		CategorySlug: "cover-crops",
		Pagination:   pagination.Params{Limit: 2, Cursor: cursor},
	})
	if err != nil {
		t.Fatalf("list products after cursor: %v", err)
	}
	if len(rest) != 1 {
		t.Fatalf("expected 1 remaining row, got %d", len(rest))
	}
}

func TestRepositoryListProductsQueryFilter(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	mustCreateTestProduct(t, conn, "Organic Compost")
	mustCreateTestProduct(t, conn, "Worm Castings")

	rows, err := repo.ListProducts(ctx, ListProductsInput{
		Query:      "compost",
		Pagination: pagination.Params{Limit: 10},
	})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Organic Compost" {
		t.Fatalf("expected query filter to match one product, got %d", len(rows))
	}
}

func TestRepositoryDeleteCategoryDetachesProducts(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	category := mustCreateTestCategory(t, conn, "doomed")
	product := mustCreateTestProduct(t, conn, "Orphan", func(p *models.Product) {
		p.CategoryID = &category.ID
	})

	if err := repo.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	reloaded, err := repo.FindProductByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.CategoryID != nil {
		t.Fatalf("expected product category cleared, got %v", reloaded.CategoryID)
	}
}
