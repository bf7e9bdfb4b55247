package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fireguard/cms-api/builder"
	"github.com/fireguard/cms-api/initializers"
	"github.com/fireguard/cms-api/models"
	"github.com/fireguard/cms-api/utils"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

const (
	hostPage       = "page"
	hostSubProduct = "subProduct"

	msgSessionNotFound = "Builder session not found or expired."
)

var builderSessions = builder.NewManager(2 * time.Hour)

// ConfigureBuilder replaces the session registry, closing any live sessions.
func ConfigureBuilder(ttl time.Duration) {
	builderSessions.CloseAll()
	builderSessions = builder.NewManager(ttl)
}

// ShutdownBuilder disposes of every open session.
func ShutdownBuilder() {
	builderSessions.CloseAll()
}

type openSessionRequest struct {
	Host         string            `json:"host"`
	Slug         string            `json:"slug"`
	Title        string            `json:"title"`
	IsNew        bool              `json:"isNew"`
	SubProductID uint              `json:"subProductId"`
	InitialData  *builder.Snapshot `json:"initialData"`
}

func (r openSessionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Host, validation.Required, validation.In(hostPage, hostSubProduct)),
		validation.Field(&r.Title, validation.When(r.Host == hostPage && r.IsNew, validation.Required)),
		validation.Field(&r.Slug, validation.When(r.Host == hostPage, validation.Required)),
		validation.Field(&r.SubProductID, validation.When(r.Host == hostSubProduct, validation.Required)),
		validation.Field(&r.InitialData, validation.By(exportedSnapshot)),
	)
}

// exportedSnapshot refuses seed data that arrives without the markup the
// editor exported for it.
func exportedSnapshot(value interface{}) error {
	snap, _ := value.(*builder.Snapshot)
	if snap != nil && !snap.Document.IsEmpty() && snap.HTML == "" {
		return validation.NewError("validation_markup_required", "htmlContent is required alongside data")
	}
	return nil
}

func sessionView(s *builder.Session) gin.H {
	return gin.H{
		"id":     s.ID(),
		"host":   s.Host(),
		"slug":   s.Slug(),
		"title":  s.Title(),
		"config": s.Config(),
	}
}

// OpenBuilderSession starts an authoring session for a page or a
// sub-product.
func OpenBuilderSession(ctx *gin.Context) {
	var req openSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if req.Host == "" {
		req.Host = hostPage
	}
	if req.Host == hostPage && req.Slug == "" {
		req.Slug = utils.Slugify(req.Title)
	}
	if err := req.Validate(); err != nil {
		sendValidationError(ctx, err)
		return
	}

	var (
		opts builder.Options
		ok   bool
	)
	switch req.Host {
	case hostSubProduct:
		opts, ok = subProductSessionOptions(ctx, req)
	default:
		opts, ok = pageSessionOptions(ctx, req)
	}
	if !ok {
		return
	}

	session, err := builderSessions.Open(opts)
	if err != nil {
		sendServerError(ctx, "Failed to open builder session", err)
		return
	}

	initializers.Log.Infow("Builder session opened", "session", session.ID(), "host", session.Host(), "slug", session.Slug())
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Builder session opened.", "session": sessionView(session)})
}

func pageSessionOptions(ctx *gin.Context, req openSessionRequest) (builder.Options, bool) {
	page := models.Page{Slug: req.Slug, Title: req.Title}

	if req.IsNew {
		if err := page.Validate(); err != nil {
			sendValidationError(ctx, err)
			return builder.Options{}, false
		}
		taken, err := slugTaken(ctx.Request.Context(), page.Slug)
		if err != nil {
			sendServerError(ctx, msgInternalServerError, err)
			return builder.Options{}, false
		}
		if taken {
			sendValidationError(ctx, fieldError("slug", "validation_slug_taken", msgSlugTaken))
			return builder.Options{}, false
		}
	} else {
		stored, ok := findPage(ctx, req.Slug)
		if !ok {
			return builder.Options{}, false
		}
		page = *stored
	}

	opts := builder.Options{
		Host:  hostPage,
		Slug:  page.Slug,
		Title: page.Title,
		Store: &pageStore{db: initializers.DB, id: page.ID},
	}
	if req.InitialData != nil {
		seed := *req.InitialData
		opts.InitialData = &seed
	}
	return opts, true
}

func subProductSessionOptions(ctx *gin.Context, req openSessionRequest) (builder.Options, bool) {
	var sp models.SubProduct
	if err := initializers.DB.WithContext(ctx.Request.Context()).First(&sp, req.SubProductID).Error; err != nil {
		sendStoreError(ctx, "Sub-product not found", err)
		return builder.Options{}, false
	}
	if sp.IsExternal() {
		sendValidationError(ctx, errExternalSubProduct)
		return builder.Options{}, false
	}

	seed := subProductSnapshot(&sp)
	if req.InitialData != nil {
		seed = *req.InitialData
	}
	return builder.Options{
		Host:        hostSubProduct,
		Slug:        fmt.Sprintf("sub-product-%d", sp.ID),
		Title:       sp.Name,
		InitialData: &seed,
		Save:        subProductSaveHandler(initializers.DB, sp.ID),
	}, true
}

func currentSession(ctx *gin.Context) (*builder.Session, bool) {
	session, err := builderSessions.Get(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgSessionNotFound)
		return nil, false
	}
	return session, true
}

// sendSessionError maps builder errors to responses.
func sendSessionError(ctx *gin.Context, err error) {
	var saveErr *builder.SaveError
	switch {
	case errors.Is(err, builder.ErrSessionClosed), errors.Is(err, builder.ErrSessionNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, msgSessionNotFound)
	case errors.Is(err, builder.ErrEmptyDocument), errors.Is(err, builder.ErrMissingMarkup), errors.Is(err, builder.ErrInvalidDocument):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, "The page or sub-product being edited no longer exists.")
	case errors.As(err, new(validation.Errors)):
		sendValidationError(ctx, err)
	case errors.As(err, &saveErr):
		initializers.Log.Errorw("Builder save failed", "session", ctx.Param("id"), "error", err)
		sendJSONResponse(ctx, http.StatusInternalServerError, gin.H{
			"message":   "Saving failed. Your changes are still in the editor; please try again.",
			"retryable": saveErr.Retryable(),
		})
	default:
		sendServerError(ctx, msgInternalServerError, err)
	}
}

func GetBuilderSession(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"session": sessionView(session)})
}

// LoadBuilderProject returns the editor's document, loading stored content
// on first use.
func LoadBuilderProject(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}
	snap, err := session.Project(ctx.Request.Context())
	if err != nil {
		sendSessionError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"data": snap.Document, "htmlContent": snap.HTML, "cssContent": snap.CSS})
}

// StageBuilderProject records the browser editor's current export. Nothing
// is persisted.
func StageBuilderProject(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	var snap builder.Snapshot
	if err := ctx.ShouldBindJSON(&snap); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := session.Stage(snap); err != nil {
		sendSessionError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Editor state updated."})
}

func SaveBuilderSession(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}
	if err := session.Save(ctx.Request.Context()); err != nil {
		sendSessionError(ctx, err)
		return
	}
	initializers.Log.Infow("Builder content saved", "session", session.ID(), "host", session.Host(), "slug", session.Slug())
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Saved successfully."})
}

func PreviewBuilderSession(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}
	doc, err := session.Preview()
	if err != nil {
		sendSessionError(ctx, err)
		return
	}
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

func CloseBuilderSession(ctx *gin.Context) {
	if err := builderSessions.Close(ctx.Param("id")); err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgSessionNotFound)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Builder session closed."})
}
