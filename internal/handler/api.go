package handler

import (
	"github.com/skillbanto/internal/cache"
	"github.com/skillbanto/internal/render"
	"github.com/skillbanto/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	pages    *service.PageService
	renderer *render.Renderer
	cache    cache.Cache
	log      *zap.Logger
}

// Option customizes an API.
type Option func(*API)

// WithCache replaces the default in-memory page cache.
func WithCache(c cache.Cache) Option {
	return func(a *API) { a.cache = c }
}

// WithLogger sets the logger used for storage failures.
func WithLogger(log *zap.Logger) Option {
	return func(a *API) { a.log = log }
}

// WithRenderer sets the renderer used for public pages.
func WithRenderer(r *render.Renderer) Option {
	return func(a *API) { a.renderer = r }
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts ...Option) *API {
	a := &API{
		pages:    service.NewPageService(gdb),
		renderer: render.New(""),
		cache:    cache.NewMemory(0),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Pages exposes the page service for bootstrap tasks.
func (a *API) Pages() *service.PageService {
	return a.pages
}
