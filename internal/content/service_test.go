package content

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
)

func openContentTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.ContentSection{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newContentService(t *testing.T) Service {
	t.Helper()

	svc, err := NewService(NewRepository(openContentTestDB(t)))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateSectionNormalizesKeyAndValidates(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSectionInput{
		Key:       "  Hero-Banner ",
		Title:     "Regenerate Your Soil",
		Body:      "Shop cover crops and compost.",
		Published: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Key != "hero-banner" {
		t.Fatalf("expected normalized key, got %q", created.Key)
	}

	_, err = svc.Create(ctx, CreateSectionInput{Key: "  ", Title: "x"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateSectionDuplicateKeyConflicts(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateSectionInput{Key: "faq", Title: "FAQ"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, CreateSectionInput{Key: "FAQ", Title: "FAQ again"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestPublishedReadsHideDrafts(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateSectionInput{Key: "why-regen", Title: "Why Regenerative", Position: 2, Published: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateSectionInput{Key: "hero", Title: "Hero", Position: 1, Published: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateSectionInput{Key: "draft-promo", Title: "Promo", Position: 0}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	published, err := svc.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(published) != 2 || published[0].Key != "hero" || published[1].Key != "why-regen" {
		t.Fatalf("unexpected published sections %+v", published)
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sections for admin, got %d", len(all))
	}

	_, err = svc.GetPublishedByKey(ctx, "draft-promo")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected draft hidden from public reads, got %v", err)
	}

	section, err := svc.GetPublishedByKey(ctx, " HERO ")
	if err != nil {
		t.Fatalf("GetPublishedByKey: %v", err)
	}
	if section.Key != "hero" {
		t.Fatalf("unexpected section %+v", section)
	}
}

func TestUpdateSectionPatchesFields(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSectionInput{Key: "hero", Title: "Hero", Body: "old"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "Hero Updated"
	published := true
	updated, err := svc.Update(ctx, created.ID, UpdateSectionInput{Title: &title, Published: &published})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Hero Updated" || !updated.Published || updated.Body != "old" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	blank := "  "
	_, err = svc.Update(ctx, created.ID, UpdateSectionInput{Title: &blank})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}
}

func TestUnpublishKeepsRow(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSectionInput{Key: "hero", Title: "Hero", Published: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Unpublish(ctx, created.ID); err != nil {
		t.Fatalf("Unpublish: %v", err)
	}
	// idempotent
	if err := svc.Unpublish(ctx, created.ID); err != nil {
		t.Fatalf("Unpublish again: %v", err)
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].Published {
		t.Fatalf("expected retained unpublished row, got %+v", all)
	}

	err = svc.Unpublish(ctx, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
