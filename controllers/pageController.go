package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fireguard/cms-api/builder"
	"github.com/fireguard/cms-api/initializers"
	"github.com/fireguard/cms-api/models"
	"github.com/fireguard/cms-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	msgPageNotFound  = "Page not found"
	msgPageNoContent = "This page has no content yet."
	msgSlugTaken     = "a page with this slug already exists"
)

var errStaleWrite = errors.New("page was changed by someone else since it was loaded")

var pagePublisher utils.Publisher

// SetPublisher enables POST /api/pages/:slug/publish.
func SetPublisher(p utils.Publisher) {
	pagePublisher = p
}

// pageStore is the builder's default persistence target. Once the page
// exists the store follows it by ID, so a save after a rename writes to the
// renamed page and a save after a delete fails. The owning session
// serializes every call.
type pageStore struct {
	db *gorm.DB
	id uint
}

func (s *pageStore) LoadPage(ctx context.Context, slug string) (builder.Snapshot, error) {
	var page models.Page
	if s.id != 0 {
		if err := s.db.WithContext(ctx).First(&page, s.id).Error; err != nil {
			return builder.Snapshot{}, err
		}
		return pageSnapshot(&page), nil
	}

	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return builder.Snapshot{}, nil
	}
	if err != nil {
		return builder.Snapshot{}, err
	}
	return pageSnapshot(&page), nil
}

func (s *pageStore) SavePage(ctx context.Context, slug, title string, snap builder.Snapshot) error {
	if s.id != 0 {
		_, err := writePage(ctx, s.db, byPageID(s.id), nil, snap, nil)
		return err
	}
	page, err := upsertPage(ctx, s.db, slug, title, snap, nil)
	if err != nil {
		return err
	}
	s.id = page.ID
	return nil
}

func pageSnapshot(page *models.Page) builder.Snapshot {
	doc, _ := builder.ParseDocument(page.Data)
	return builder.Snapshot{
		Document: doc,
		Markup:   builder.Markup{HTML: page.HTMLContent, CSS: page.CSSContent},
	}
}

// upsertPage replaces data, htmlContent and cssContent of the page in one
// write, creating the page if needed. A non-nil expected time turns the
// write into a conditional one.
func upsertPage(ctx context.Context, db *gorm.DB, slug, title string, snap builder.Snapshot, expected *time.Time) (models.Page, error) {
	bySlug := func(tx *gorm.DB) *gorm.DB { return tx.Where("slug = ?", slug) }
	return writePage(ctx, db, bySlug, &models.Page{Slug: slug, Title: title}, snap, expected)
}

func byPageID(id uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB { return tx.Where("id = ?", id) }
}

// writePage stores snap on the page matched by where. When nothing matches,
// fresh is created, or gorm.ErrRecordNotFound is returned if fresh is nil.
func writePage(ctx context.Context, db *gorm.DB, where func(*gorm.DB) *gorm.DB, fresh *models.Page, snap builder.Snapshot, expected *time.Time) (models.Page, error) {
	var page models.Page
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := where(tx.Clauses(clause.Locking{Strength: "UPDATE"})).First(&page).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound) && fresh != nil:
			page = *fresh
		case err != nil:
			return err
		case expected != nil && page.UpdatedAt.UnixMilli() != expected.UnixMilli():
			return errStaleWrite
		case fresh != nil && fresh.Title != "":
			page.Title = fresh.Title
		}

		page.Data = datatypes.JSON(snap.Document)
		page.HTMLContent = snap.HTML
		page.CSSContent = snap.CSS

		if err := page.Validate(); err != nil {
			return err
		}
		return tx.Save(&page).Error
	})
	return page, err
}

func findPage(ctx *gin.Context, slug string) (*models.Page, bool) {
	var page models.Page
	if err := initializers.DB.WithContext(ctx.Request.Context()).Where("slug = ?", slug).First(&page).Error; err != nil {
		sendStoreError(ctx, msgPageNotFound, err)
		return nil, false
	}
	return &page, true
}

func slugTaken(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := initializers.DB.WithContext(ctx).Model(&models.Page{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func GetPages(ctx *gin.Context) {
	pages := make([]models.Page, 0)
	if err := initializers.DB.WithContext(ctx.Request.Context()).Order("updated_at desc").Find(&pages).Error; err != nil {
		sendServerError(ctx, "Unable to fetch pages", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"pages": pages})
}

func GetPage(ctx *gin.Context) {
	page, ok := findPage(ctx, ctx.Param("slug"))
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"page": page})
}

// CreatePage registers an empty page. The slug defaults to the slugified
// title and must not be in use.
func CreatePage(ctx *gin.Context) {
	var req struct {
		Title string `json:"title"`
		Slug  string `json:"slug"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	page := models.Page{Title: req.Title, Slug: req.Slug}
	if page.Slug == "" {
		page.Slug = utils.Slugify(page.Title)
	}
	if err := page.Validate(); err != nil {
		sendValidationError(ctx, err)
		return
	}

	taken, err := slugTaken(ctx.Request.Context(), page.Slug)
	if err != nil {
		sendServerError(ctx, msgInternalServerError, err)
		return
	}
	if taken {
		sendValidationError(ctx, fieldError("slug", "validation_slug_taken", msgSlugTaken))
		return
	}

	if err := initializers.DB.WithContext(ctx.Request.Context()).Create(&page).Error; err != nil {
		sendStoreError(ctx, msgPageNotFound, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Page created successfully.", "page": page})
}

type savePageRequest struct {
	Slug        string           `json:"slug"`
	Title       string           `json:"title"`
	Data        builder.Document `json:"data"`
	HTMLContent string           `json:"htmlContent"`
	CSSContent  string           `json:"cssContent"`
	UpdatedAt   *time.Time       `json:"updatedAt"`
}

// SavePage upserts the builder artifacts of the page named in the path.
func SavePage(ctx *gin.Context) {
	slug := ctx.Param("slug")

	var req savePageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if req.Slug != "" && req.Slug != slug {
		sendValidationError(ctx, fieldError("slug", "validation_slug_mismatch", "must match the page being saved"))
		return
	}

	snap := builder.Snapshot{
		Document: req.Data,
		Markup:   builder.Markup{HTML: req.HTMLContent, CSS: req.CSSContent},
	}
	page, err := upsertPage(ctx.Request.Context(), initializers.DB, slug, req.Title, snap, req.UpdatedAt)
	if err != nil {
		if errors.Is(err, errStaleWrite) {
			sendErrorResponse(ctx, http.StatusConflict, err.Error())
			return
		}
		sendStoreError(ctx, msgPageNotFound, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Page saved successfully.", "page": page})
}

// RenamePage changes the title and/or slug of a page.
func RenamePage(ctx *gin.Context) {
	page, ok := findPage(ctx, ctx.Param("slug"))
	if !ok {
		return
	}

	var req struct {
		Title *string `json:"title"`
		Slug  *string `json:"slug"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	oldSlug := page.Slug
	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Slug != nil {
		page.Slug = *req.Slug
	}
	if err := page.Validate(); err != nil {
		sendValidationError(ctx, err)
		return
	}

	if page.Slug != oldSlug {
		taken, err := slugTaken(ctx.Request.Context(), page.Slug)
		if err != nil {
			sendServerError(ctx, msgInternalServerError, err)
			return
		}
		if taken {
			sendValidationError(ctx, fieldError("slug", "validation_slug_taken", msgSlugTaken))
			return
		}
	}

	err := initializers.DB.WithContext(ctx.Request.Context()).Model(page).Select("title", "slug").Updates(page).Error
	if err != nil {
		sendStoreError(ctx, msgPageNotFound, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Page updated successfully.", "page": page})
}

func DeletePage(ctx *gin.Context) {
	result := initializers.DB.WithContext(ctx.Request.Context()).Where("slug = ?", ctx.Param("slug")).Delete(&models.Page{})
	if result.Error != nil {
		sendServerError(ctx, "Failed to delete page", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgPageNotFound)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Page deleted successfully."})
}

// renderStoredPage loads a page and wraps its saved markup, refusing pages
// that were never saved from the builder.
func renderStoredPage(ctx *gin.Context) (*models.Page, string, bool) {
	page, ok := findPage(ctx, ctx.Param("slug"))
	if !ok {
		return nil, "", false
	}
	if !page.HasContent() {
		sendErrorResponse(ctx, http.StatusNotFound, msgPageNoContent)
		return nil, "", false
	}

	doc, err := builder.RenderDocument(page.Title, builder.Markup{HTML: page.HTMLContent, CSS: page.CSSContent})
	if err != nil {
		sendServerError(ctx, "Failed to render page", err)
		return nil, "", false
	}
	return page, doc, true
}

// PreviewPage renders the saved version of a page for the registry.
func PreviewPage(ctx *gin.Context) {
	_, doc, ok := renderStoredPage(ctx)
	if !ok {
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// RenderPublicPage serves a saved page on the public site.
func RenderPublicPage(ctx *gin.Context) {
	_, doc, ok := renderStoredPage(ctx)
	if !ok {
		return
	}
	ctx.Header("Cache-Control", "public, max-age=60")
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// PublishPage uploads the saved page to static hosting.
func PublishPage(ctx *gin.Context) {
	if pagePublisher == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, "Publishing is not configured.")
		return
	}

	page, doc, ok := renderStoredPage(ctx)
	if !ok {
		return
	}

	location, err := pagePublisher.Publish(ctx.Request.Context(), page.Slug, doc)
	if err != nil {
		sendServerError(ctx, "Failed to publish page", err)
		return
	}

	initializers.Log.Infow("Page published", "slug", page.Slug, "location", location)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Page published successfully.", "url": location})
}
