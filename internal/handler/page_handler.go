package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillbanto/internal/cache"
	"github.com/skillbanto/internal/content"
	"github.com/skillbanto/internal/db"
	"github.com/skillbanto/internal/service"
	"go.uber.org/zap"
)

type createPageRequest struct {
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Content   []content.Block `json:"content"`
	Published bool            `json:"published"`
}

// updatePageRequest uses pointers so omitted fields are left untouched.
type updatePageRequest struct {
	Title     *string          `json:"title"`
	Content   *[]content.Block `json:"content"`
	Published *bool            `json:"published"`
}

// ListPages 返回页面列表，可按 published 过滤
func (a *API) ListPages(c *gin.Context) {
	published, err := parseBoolQuery(c, "published")
	if err != nil {
		respondError(c, http.StatusBadRequest, "published must be true or false")
		return
	}

	pages, err := a.pages.List(published)
	if err != nil {
		a.storageFailure(c, "list pages", err)
		respondError(c, http.StatusInternalServerError, "failed to fetch pages")
		return
	}

	response := make([]content.Page, 0, len(pages))
	for i := range pages {
		response = append(response, pages[i].Wire())
	}
	c.JSON(http.StatusOK, response)
}

// GetPage returns a single page by numeric id.
func (a *API) GetPage(c *gin.Context) {
	id, ok := pageIDParam(c)
	if !ok {
		return
	}

	page, err := a.pages.GetByID(id)
	if err != nil {
		a.respondPageError(c, "get page", err)
		return
	}
	c.JSON(http.StatusOK, page.Wire())
}

// GetPageBySlug returns a single page by slug, drafts included.
func (a *API) GetPageBySlug(c *gin.Context) {
	page, err := a.pages.GetBySlug(c.Param("slug"))
	if err != nil {
		a.respondPageError(c, "get page by slug", err)
		return
	}
	c.JSON(http.StatusOK, page.Wire())
}

// CreatePage 创建新页面
func (a *API) CreatePage(c *gin.Context) {
	var req createPageRequest
	if !bindJSON(c, &req, "invalid page payload") {
		return
	}

	page, err := a.pages.Create(service.PageInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		a.respondPageError(c, "create page", err)
		return
	}

	c.JSON(http.StatusCreated, page.Wire())
}

// UpdatePage merges the provided fields into the page. Content is replaced wholesale.
func (a *API) UpdatePage(c *gin.Context) {
	id, ok := pageIDParam(c)
	if !ok {
		return
	}

	var req updatePageRequest
	if !bindJSON(c, &req, "invalid page payload") {
		return
	}

	page, err := a.pages.Update(id, service.PageUpdate{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		a.respondPageError(c, "update page", err)
		return
	}

	a.invalidate(c.Request.Context(), page)
	c.JSON(http.StatusOK, page.Wire())
}

// DeletePage 删除页面
func (a *API) DeletePage(c *gin.Context) {
	id, ok := pageIDParam(c)
	if !ok {
		return
	}

	page, err := a.pages.GetByID(id)
	if err != nil {
		a.respondPageError(c, "delete page", err)
		return
	}

	removed, err := a.pages.Delete(id)
	if err != nil {
		a.storageFailure(c, "delete page", err)
		respondError(c, http.StatusInternalServerError, "failed to delete page")
		return
	}
	if !removed {
		respondError(c, http.StatusNotFound, "page not found")
		return
	}

	a.invalidate(c.Request.Context(), page)
	c.Status(http.StatusNoContent)
}

func (a *API) respondPageError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrPageNotFound):
		respondError(c, http.StatusNotFound, "page not found")
	case errors.Is(err, service.ErrPageInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPageSlugExists):
		respondError(c, http.StatusConflict, "a page with this slug already exists")
	default:
		a.storageFailure(c, op, err)
		respondError(c, http.StatusInternalServerError, "failed to "+op)
	}
}

func (a *API) storageFailure(c *gin.Context, op string, err error) {
	_ = c.Error(err)
	a.log.Error("page storage failure", zap.String("op", op), zap.Error(err))
}

func (a *API) invalidate(ctx context.Context, page *db.Page) {
	if err := a.cache.Delete(ctx, cache.PageKey(page.Slug)); err != nil {
		a.log.Warn("page cache invalidation failed", zap.String("slug", page.Slug), zap.Error(err))
	}
}
