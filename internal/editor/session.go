package editor

import (
	"context"
	"fmt"

	"github.com/skillbanto/internal/content"
	"go.uber.org/zap"
)

// Store is the remote side of an editing session.
type Store interface {
	PageBySlug(ctx context.Context, slug string) (content.Page, error)
	UpdateContent(ctx context.Context, id uint, blocks []content.Block, published bool) (content.Page, error)
}

// LookupError reports that a slug could not be resolved to a page.
type LookupError struct {
	Slug string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("look up page %q: %v", e.Slug, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// SaveError reports that writing the block list failed. Local edits are kept.
type SaveError struct {
	Slug      string
	Published bool
	Err       error
}

func (e *SaveError) Error() string {
	action := "save draft of"
	if e.Published {
		action = "publish"
	}
	return fmt.Sprintf("%s page %q: %v", action, e.Slug, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Session ties an Editor to one page of a Store.
type Session struct {
	store   Store
	slug    string
	page    content.Page
	loaded  bool
	loadErr error
	ids     IDAllocator
	log     *zap.Logger

	*Editor
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithIDAllocator sets the allocator used for new blocks.
func WithIDAllocator(ids IDAllocator) SessionOption {
	return func(s *Session) { s.ids = ids }
}

// WithLogger sets the session logger.
func WithLogger(log *zap.Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

// Open starts a session for slug and loads the page. A failed load is kept
// in LoadError rather than returned, leaving an empty block list.
func Open(ctx context.Context, store Store, slug string, opts ...SessionOption) *Session {
	s := &Session{store: store, slug: slug, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.Editor = New(nil, s.ids)
	_ = s.Reload(ctx)
	return s
}

// Reload fetches the page again and replaces the local blocks. Pending edits are lost.
func (s *Session) Reload(ctx context.Context) error {
	page, err := s.store.PageBySlug(ctx, s.slug)
	if err != nil {
		s.loadErr = &LookupError{Slug: s.slug, Err: err}
		s.log.Warn("page load failed", zap.String("slug", s.slug), zap.Error(err))
		return s.loadErr
	}

	s.page = page
	s.loaded = true
	s.loadErr = nil
	s.Editor = New(page.Content, s.ids)
	return nil
}

// LoadError returns the pending load failure, if any.
func (s *Session) LoadError() error {
	return s.loadErr
}

// ClearError dismisses the load failure without fetching again.
func (s *Session) ClearError() {
	s.loadErr = nil
}

func (s *Session) Slug() string { return s.slug }

// Page returns the last page state seen from the store.
func (s *Session) Page() (content.Page, bool) {
	return s.page, s.loaded
}

// SaveDraft writes the full block list with published=false.
func (s *Session) SaveDraft(ctx context.Context) (content.Page, error) {
	return s.persist(ctx, false)
}

// Publish writes the full block list with published=true.
func (s *Session) Publish(ctx context.Context) (content.Page, error) {
	return s.persist(ctx, true)
}

// persist resolves the slug to an id and then replaces the page content.
// The two calls are not atomic; the page is assumed not to be renamed or
// deleted in between.
func (s *Session) persist(ctx context.Context, published bool) (content.Page, error) {
	target, err := s.store.PageBySlug(ctx, s.slug)
	if err != nil {
		s.log.Warn("page lookup before save failed", zap.String("slug", s.slug), zap.Error(err))
		return content.Page{}, &LookupError{Slug: s.slug, Err: err}
	}

	blocks := s.Blocks()
	saved, err := s.store.UpdateContent(ctx, target.ID, blocks, published)
	if err != nil {
		s.log.Warn("page save failed",
			zap.String("slug", s.slug),
			zap.Uint("page_id", target.ID),
			zap.Bool("published", published),
			zap.Error(err),
		)
		return content.Page{}, &SaveError{Slug: s.slug, Published: published, Err: err}
	}

	s.page = saved
	s.loaded = true
	s.log.Info("page saved",
		zap.String("slug", s.slug),
		zap.Uint("page_id", saved.ID),
		zap.Bool("published", saved.Published),
		zap.Int("blocks", len(blocks)),
	)
	return saved, nil
}
