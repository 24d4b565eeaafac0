package catalog

import (
	"context"
	"testing"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
	"github.com/calebhawthorne/regenmarket-backend/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := openTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo
}

func TestServiceCreateProductValidatesSlug(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name: "Compost",
		Slug: "Not A Slug!",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateProductRejectsDuplicateSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	input := CreateProductInput{Name: "Compost", Slug: "compost", PriceCents: 850, IsActive: true}
	if _, err := svc.CreateProduct(ctx, input); err != nil {
		t.Fatalf("create first: %v", err)
	}
	_, err := svc.CreateProduct(ctx, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestServiceEffectivePriceUsesSaleWhenSet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sale := 700
	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:           "Compost",
		Slug:           "compost",
		PriceCents:     850,
		SalePriceCents: &sale,
		IsActive:       true,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.EffectivePriceCents != 700 {
		t.Fatalf("expected sale price to win, got %d", created.EffectivePriceCents)
	}
}

func TestServiceGetProductBySlugHidesInactive(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	mustCreateTestProduct(t, repo.DB(context.Background()), "Retired", func(p *models.Product) {
		p.Slug = "retired"
		p.IsActive = false
	})

	_, err := svc.GetProductBySlug(ctx, "retired")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive product, got %v", err)
	}
}

func TestServiceListProductsReturnsNextCursor(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mustCreateTestProduct(t, repo.DB(context.Background()), "Seed Mix")
	}

	page, err := svc.ListProducts(ctx, ListProductsInput{Pagination: pagination.Params{Limit: 2}})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(page.Products) != 2 {
		t.Fatalf("expected 2 products on page, got %d", len(page.Products))
	}
	if page.NextCursor == nil {
		t.Fatalf("expected next cursor when more rows remain")
	}

	rest, err := svc.ListProducts(ctx, ListProductsInput{
		Pagination: pagination.Params{Limit: 2, Cursor: *page.NextCursor},
	})
	if err != nil {
		t.Fatalf("list products after cursor: %v", err)
	}
	if len(rest.Products) != 1 || rest.NextCursor != nil {
		t.Fatalf("expected final page of 1 with no cursor, got %d products", len(rest.Products))
	}
}

func TestServiceRetireProductIsIdempotent(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	product := mustCreateTestProduct(t, repo.DB(context.Background()), "Short Lived")
	if err := svc.RetireProduct(ctx, product.ID); err != nil {
		t.Fatalf("retire: %v", err)
	}
	if err := svc.RetireProduct(ctx, product.ID); err != nil {
		t.Fatalf("retire again: %v", err)
	}

	reloaded, err := repo.FindProductByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("expected product retired")
	}
}

func TestServiceCategoryLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Soil Amendments", Slug: "soil-amendments", Position: 2})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	newName := "Amendments"
	updated, err := svc.UpdateCategory(ctx, created.ID, UpdateCategoryInput{Name: &newName})
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated.Name != "Amendments" {
		t.Fatalf("expected renamed category, got %q", updated.Name)
	}

	listed, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one category, got %d", len(listed))
	}

	if err := svc.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	_, err = svc.UpdateCategory(ctx, created.ID, UpdateCategoryInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
