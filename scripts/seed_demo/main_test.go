package main

import (
	"testing"

	"github.com/skillbanto/internal/content"
	"github.com/skillbanto/internal/db"
	"github.com/skillbanto/internal/service"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) (*service.PageService, func()) {
	t.Helper()

	gdb, err := db.Open("file:seed-demo?mode=memory&cache=shared", logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	return service.NewPageService(gdb), func() {
		_ = db.Close(gdb)
	}
}

func TestSeedDemoPagesFillsOnlyEmptyPages(t *testing.T) {
	pages, cleanup := setupSeedTestDB(t)
	defer cleanup()

	kept := []content.Block{{ID: "mine", Type: content.BlockTypeText, Content: "keep me"}}
	if _, err := pages.Create(service.PageInput{Title: "Pricing", Slug: "pricing", Content: kept, Published: true}); err != nil {
		t.Fatalf("failed to seed pricing: %v", err)
	}

	filled, err := seedDemoPages(pages, []string{"home", "pricing"})
	if err != nil {
		t.Fatalf("seedDemoPages returned error: %v", err)
	}
	if filled != 1 {
		t.Fatalf("expected 1 filled page, got %d", filled)
	}

	home, err := pages.GetBySlug("home")
	if err != nil {
		t.Fatalf("failed to load home: %v", err)
	}
	blocks := home.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("expected 4 demo blocks, got %d", len(blocks))
	}
	if blocks[0].Type != content.BlockTypeHeading || blocks[0].Content != "Home" {
		t.Fatalf("unexpected first block: %+v", blocks[0])
	}
	if err := content.ValidateBlocks(blocks); err != nil {
		t.Fatalf("demo blocks are invalid: %v", err)
	}

	pricing, err := pages.GetBySlug("pricing")
	if err != nil {
		t.Fatalf("failed to load pricing: %v", err)
	}
	if got := pricing.Blocks(); len(got) != 1 || got[0].ID != "mine" {
		t.Fatalf("expected pricing content to be untouched, got %+v", got)
	}

	again, err := seedDemoPages(pages, []string{"home", "pricing"})
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected second run to fill nothing, got %d", again)
	}
}
