package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skillbanto/internal/content"
	"github.com/skillbanto/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound   = errors.New("page not found")
	ErrPageSlugExists = errors.New("page slug already exists")
	ErrPageInvalid    = errors.New("invalid page")
)

// DefaultSeedSlugs are the pages created on first start.
var DefaultSeedSlugs = []string{"home", "courses", "products", "resources", "pricing"}

// PageInput carries the fields of a page to create.
type PageInput struct {
	Title     string
	Slug      string
	Content   []content.Block
	Published bool
}

// PageUpdate lists the fields to merge into a stored page. Nil fields are left as they are.
type PageUpdate struct {
	Title     *string
	Content   *[]content.Block
	Published *bool
}

// PageService provides durable CRUD over pages.
type PageService struct {
	db *gorm.DB
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// Create inserts a new page. The slug is derived from the title when empty.
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrPageInvalid)
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = content.Slugify(title)
	}
	if !content.IsValidSlug(slug) {
		return nil, fmt.Errorf("%w: slug %q must contain only lowercase letters, digits and single hyphens", ErrPageInvalid, slug)
	}

	if err := content.ValidateBlocks(input.Content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageInvalid, err)
	}

	var count int64
	if err := s.db.Model(&db.Page{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrPageSlugExists
	}

	page := db.Page{
		Title:     title,
		Slug:      slug,
		Content:   datatypes.NewJSONSlice(content.CloneBlocks(input.Content)),
		Published: input.Published,
	}
	if err := s.db.Create(&page).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrPageSlugExists
		}
		return nil, err
	}

	return &page, nil
}

// GetByID fetches a page by its numeric id.
func (s *PageService) GetByID(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// List returns every page ordered by id. A non-nil published restricts the
// result to pages with that flag.
func (s *PageService) List(published *bool) ([]db.Page, error) {
	query := s.db.Model(&db.Page{}).Order("id asc")
	if published != nil {
		query = query.Where("published = ?", *published)
	}

	pages := []db.Page{}
	if err := query.Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Update merges the provided fields into the page and refreshes UpdatedAt.
// Only the provided columns are written, so concurrent updates of other
// fields survive. Content is always replaced as a whole.
func (s *PageService) Update(id uint, update PageUpdate) (*db.Page, error) {
	page, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrPageInvalid)
		}
		changes["title"] = title
	}
	if update.Content != nil {
		if err := content.ValidateBlocks(*update.Content); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageInvalid, err)
		}
		changes["content"] = datatypes.NewJSONSlice(content.CloneBlocks(*update.Content))
	}
	if update.Published != nil {
		changes["published"] = *update.Published
	}

	// updated_at is added by gorm for map updates, so an empty change set
	// still touches the row.
	result := s.db.Model(page).Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPageNotFound
	}
	return s.GetByID(id)
}

// Delete removes the page and reports whether a row was actually deleted.
func (s *PageService) Delete(id uint) (bool, error) {
	result := s.db.Delete(&db.Page{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Bootstrap creates a published, empty page for every slug that does not
// exist yet and returns how many pages were created.
func (s *PageService) Bootstrap(slugs []string) (int, error) {
	created := 0
	for _, raw := range slugs {
		slug := strings.TrimSpace(raw)
		if slug == "" {
			continue
		}

		_, err := s.GetBySlug(slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrPageNotFound) {
			return created, err
		}

		if _, err := s.Create(PageInput{
			Title:     content.TitleFromSlug(slug),
			Slug:      slug,
			Published: true,
		}); err != nil {
			if errors.Is(err, ErrPageSlugExists) {
				continue
			}
			return created, fmt.Errorf("seed page %q: %w", slug, err)
		}
		created++
	}
	return created, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
