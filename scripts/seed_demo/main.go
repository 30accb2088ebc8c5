package main

import (
	"fmt"
	"log"

	"github.com/skillbanto/internal/config"
	"github.com/skillbanto/internal/content"
	"github.com/skillbanto/internal/db"
	"github.com/skillbanto/internal/service"
)

// 演示数据生成器
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("配置加载失败:", err)
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示页面...")
	filled, err := seedDemoPages(service.NewPageService(db.DB), cfg.SeedSlugs)
	if err != nil {
		log.Fatal("演示页面生成失败:", err)
	}
	fmt.Printf("演示页面生成完成！填充 %d 个页面\n", filled)
}

// seedDemoPages makes sure every slug exists and gives empty pages a demo
// block list. Pages that already have blocks are left alone.
func seedDemoPages(pages *service.PageService, slugs []string) (int, error) {
	if _, err := pages.Bootstrap(slugs); err != nil {
		return 0, err
	}

	filled := 0
	for _, slug := range slugs {
		page, err := pages.GetBySlug(slug)
		if err != nil {
			return filled, fmt.Errorf("load %q: %w", slug, err)
		}
		if len(page.Blocks()) > 0 {
			fmt.Printf("页面 %s 已有内容，跳过\n", slug)
			continue
		}

		blocks := demoBlocks(page.Title)
		if _, err := pages.Update(page.ID, service.PageUpdate{Content: &blocks}); err != nil {
			return filled, fmt.Errorf("fill %q: %w", slug, err)
		}
		fmt.Printf("✅ 页面 %s 已填充 %d 个区块\n", slug, len(blocks))
		filled++
	}
	return filled, nil
}

func demoBlocks(title string) []content.Block {
	return []content.Block{
		{ID: "block-1", Type: content.BlockTypeHeading, Content: title},
		{ID: "block-2", Type: content.BlockTypeText, Content: fmt.Sprintf("Welcome to the **%s** page. Edit these blocks with `pagectl`.", title)},
		{ID: "block-3", Type: content.BlockTypeImage, Content: "https://placehold.co/800x400"},
		{ID: "block-4", Type: content.BlockTypeVideo, Content: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
	}
}
