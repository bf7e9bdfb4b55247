package controllers

import (
	"context"
	"fmt"
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

var SubProducts = Resource[models.SubProduct]{
	Singular:     "subProduct",
	Plural:       "subProducts",
	Label:        "Sub-product",
	Order:        "name asc",
	Check:        warnMissingExternalURL,
	BeforeDelete: removeSubProductReferences,
}

var linkChecker = utils.NewLinkChecker(5 * time.Second)

var errExternalSubProduct = fieldError("contentType", "validation_external_content",
	"sub-product uses an external link; switch it to manual content to edit its page")

// An external record without a URL is accepted as a draft.
func warnMissingExternalURL(ctx *gin.Context, sp *models.SubProduct) error {
	if sp.IsExternal() && sp.ExternalURL == nil {
		initializers.Log.Warnw("external sub-product saved without externalUrl", "name", sp.Name)
	}
	return nil
}

// removeSubProductReferences drops the deleted ID from every product's
// subProductIds list. The products themselves stay.
func removeSubProductReferences(tx *gorm.DB, subProductID uint) error {
	var products []models.Product
	if err := referencingProducts(tx, subProductID).Find(&products).Error; err != nil {
		return err
	}
	for i := range products {
		if !products[i].WithoutSubProduct(subProductID) {
			continue
		}
		if err := tx.Save(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// referencingProducts narrows a products query to rows whose subProductIds
// hold id. The jsonb "?" operator only matches strings, so postgres gets a
// containment test instead.
func referencingProducts(tx *gorm.DB, id uint) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Where("sub_product_ids @> ?::jsonb", fmt.Sprintf("[%d]", id))
	}
	return tx.Where(datatypes.JSONArrayQuery("sub_product_ids").Contains(id))
}

// subProductSaveHandler writes builder output into one sub-product. The
// three artifacts change in a single update.
func subProductSaveHandler(db *gorm.DB, id uint) builder.SaveHandler {
	return func(ctx context.Context, doc builder.Document, html, css string) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var sp models.SubProduct
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sp, id).Error; err != nil {
				return err
			}
			if sp.IsExternal() {
				return errExternalSubProduct
			}

			sp.PageData = datatypes.JSON(doc)
			sp.HTMLContent = &html
			sp.CSSContent = &css
			return tx.Model(&sp).Select("page_data", "html_content", "css_content").Updates(&sp).Error
		})
	}
}

func subProductSnapshot(sp *models.SubProduct) builder.Snapshot {
	snap := builder.Snapshot{}
	if sp.HasPage() {
		snap.Document = builder.Document(sp.PageData)
	}
	if sp.HTMLContent != nil {
		snap.HTML = *sp.HTMLContent
	}
	if sp.CSSContent != nil {
		snap.CSS = *sp.CSSContent
	}
	return snap
}

// CheckSubProductLink reports whether an external sub-product's URL
// answers. It is advisory and never changes the record.
func CheckSubProductLink(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid subProduct ID")
		return
	}

	var sp models.SubProduct
	if err := initializers.DB.WithContext(ctx.Request.Context()).First(&sp, id).Error; err != nil {
		sendStoreError(ctx, "Sub-product not found", err)
		return
	}
	if !sp.IsExternal() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Sub-product does not use an external link")
		return
	}
	if sp.ExternalURL == nil || *sp.ExternalURL == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Sub-product has no external URL yet")
		return
	}

	status := linkChecker.Check(ctx.Request.Context(), *sp.ExternalURL)
	if !status.Reachable {
		initializers.Log.Warnw("external sub-product link unreachable", "id", sp.ID, "url", status.URL, "status", status.StatusCode, "error", status.Error)
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"linkStatus": status})
}
