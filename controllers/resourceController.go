package controllers

import (
	"fmt"
	"net/http"

	"github.com/fireguard/cms-api/initializers"
	"github.com/fireguard/cms-api/models"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// Resource serves the uniform CRUD endpoints of one content type.
type Resource[T any] struct {
	Singular string
	Plural   string
	Label    string
	Order    string

	// Check runs after validation on create and update. Returning
	// validation.Errors produces a 400.
	Check func(ctx *gin.Context, item *T) error

	// BeforeDelete runs in the delete transaction, before the row goes.
	BeforeDelete func(tx *gorm.DB, id uint) error

	// AfterCreate runs once the new record is committed.
	AfterCreate func(ctx *gin.Context, item *T)
}

func (r Resource[T]) order() string {
	if r.Order == "" {
		return "id asc"
	}
	return r.Order
}

func (r Resource[T]) notFound() string {
	return r.Label + " not found"
}

func (r Resource[T]) List(ctx *gin.Context) {
	items := make([]T, 0)
	if err := initializers.DB.WithContext(ctx.Request.Context()).Order(r.order()).Find(&items).Error; err != nil {
		sendServerError(ctx, fmt.Sprintf("Unable to fetch %s", r.Plural), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{r.Plural: items})
}

func (r Resource[T]) Get(ctx *gin.Context) {
	item, ok := r.load(ctx)
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{r.Singular: item})
}

func (r Resource[T]) Create(ctx *gin.Context) {
	var item T
	if err := ctx.ShouldBindJSON(&item); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	base(&item).ID = 0

	if !r.prepare(ctx, &item) {
		return
	}
	if err := initializers.DB.WithContext(ctx.Request.Context()).Create(&item).Error; err != nil {
		sendStoreError(ctx, r.notFound(), err)
		return
	}
	if r.AfterCreate != nil {
		r.AfterCreate(ctx, &item)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":  r.Label + " created successfully.",
		r.Singular: item,
	})
}

// Replace handles PUT: every field comes from the body.
func (r Resource[T]) Replace(ctx *gin.Context) {
	existing, ok := r.load(ctx)
	if !ok {
		return
	}

	var item T
	if err := ctx.ShouldBindJSON(&item); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	base(&item).ID = base(existing).ID
	base(&item).CreatedAt = base(existing).CreatedAt

	r.save(ctx, &item)
}

// Patch handles PATCH: fields absent from the body keep their values.
func (r Resource[T]) Patch(ctx *gin.Context) {
	item, ok := r.load(ctx)
	if !ok {
		return
	}
	id, createdAt := base(item).ID, base(item).CreatedAt

	if err := ctx.ShouldBindJSON(item); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	base(item).ID = id
	base(item).CreatedAt = createdAt

	r.save(ctx, item)
}

func (r Resource[T]) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+r.Singular+" ID")
		return
	}

	err := initializers.DB.WithContext(ctx.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var item T
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		if r.BeforeDelete != nil {
			if err := r.BeforeDelete(tx, id); err != nil {
				return err
			}
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		sendStoreError(ctx, r.notFound(), err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": r.Label + " deleted successfully."})
}

func (r Resource[T]) load(ctx *gin.Context) (*T, bool) {
	id, ok := parseID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+r.Singular+" ID")
		return nil, false
	}

	var item T
	if err := initializers.DB.WithContext(ctx.Request.Context()).First(&item, id).Error; err != nil {
		sendStoreError(ctx, r.notFound(), err)
		return nil, false
	}
	return &item, true
}

func (r Resource[T]) save(ctx *gin.Context, item *T) {
	if !r.prepare(ctx, item) {
		return
	}
	if err := initializers.DB.WithContext(ctx.Request.Context()).Save(item).Error; err != nil {
		sendStoreError(ctx, r.notFound(), err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  r.Label + " updated successfully.",
		r.Singular: item,
	})
}

// prepare normalizes, validates and checks item, answering the request
// itself when the item is rejected.
func (r Resource[T]) prepare(ctx *gin.Context, item *T) bool {
	if err := prepareAndValidate(item); err != nil {
		sendValidationError(ctx, err)
		return false
	}
	if r.Check != nil {
		if err := r.Check(ctx, item); err != nil {
			sendStoreError(ctx, r.notFound(), err)
			return false
		}
	}
	return true
}

func prepareAndValidate(item any) error {
	if p, ok := item.(models.Preparer); ok {
		p.Prepare()
	}
	if v, ok := item.(validation.Validatable); ok {
		return v.Validate()
	}
	return nil
}

// base reaches the embedded models.Model of any record type.
func base(item any) *models.Model {
	return item.(interface{ Base() *models.Model }).Base()
}
