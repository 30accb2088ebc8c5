package db

import (
	"time"

	"github.com/skillbanto/internal/content"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Page is a slug-addressed container for an ordered list of content blocks.
// Rows are hard deleted so a slug can be reused after removal.
type Page struct {
	ID        uint                              `gorm:"primaryKey" json:"id"`
	Title     string                            `gorm:"not null" json:"title"`
	Slug      string                            `gorm:"uniqueIndex;not null" json:"slug"`
	Content   datatypes.JSONSlice[content.Block] `gorm:"not null" json:"content"`
	Published bool                              `gorm:"not null;index" json:"published"`
	CreatedAt time.Time                         `json:"createdAt"`
	UpdatedAt time.Time                         `json:"updatedAt"`
}

// BeforeSave keeps the content column a JSON array, never null.
func (p *Page) BeforeSave(*gorm.DB) error {
	if p.Content == nil {
		p.Content = datatypes.JSONSlice[content.Block]{}
	}
	return nil
}

// Blocks returns a copy of the page content as a plain slice.
func (p *Page) Blocks() []content.Block {
	return content.CloneBlocks(p.Content)
}

// Wire converts the model into its API representation.
func (p *Page) Wire() content.Page {
	return content.Page{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Content:   p.Blocks(),
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
