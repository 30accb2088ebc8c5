package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillbanto/internal/cache"
	"github.com/skillbanto/internal/content"
	"github.com/skillbanto/internal/db"
	"github.com/skillbanto/internal/service"
	"go.uber.org/zap"
)

const htmlContentType = "text/html; charset=utf-8"

// ShowPage renders a published page for site visitors. Drafts are reported as missing.
// The page row is always read first; the cache only saves the render, and an
// entry is served only when it was written for the row's current UpdatedAt.
func (a *API) ShowPage(c *gin.Context) {
	slug := c.Param("slug")
	if !content.IsValidSlug(slug) {
		c.String(http.StatusNotFound, "page not found")
		return
	}

	page, err := a.pages.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			c.String(http.StatusNotFound, "page not found")
			return
		}
		a.storageFailure(c, "show page", err)
		c.String(http.StatusInternalServerError, "failed to load page")
		return
	}
	if !page.Published {
		c.String(http.StatusNotFound, "page not found")
		return
	}

	ctx := c.Request.Context()
	key := cache.PageKey(page.Slug)
	version := pageVersion(page)

	if entry, err := a.cache.Get(ctx, key); err == nil {
		if doc, ok := cache.DecodeVersioned(entry, version); ok {
			c.Header("X-Cache", "hit")
			c.Data(http.StatusOK, htmlContentType, doc)
			return
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		a.log.Warn("page cache read failed", zap.String("slug", page.Slug), zap.Error(err))
	}

	doc, err := a.renderer.Page(page.Wire())
	if err != nil {
		a.log.Error("page render failed", zap.String("slug", page.Slug), zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}

	if err := a.cache.Set(ctx, key, cache.EncodeVersioned(version, doc), 0); err != nil {
		a.log.Warn("page cache write failed", zap.String("slug", page.Slug), zap.Error(err))
	}
	c.Header("X-Cache", "miss")
	c.Data(http.StatusOK, htmlContentType, doc)
}

func pageVersion(page *db.Page) string {
	return strconv.FormatInt(page.UpdatedAt.UnixNano(), 10)
}
