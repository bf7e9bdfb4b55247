package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fireguard/cms-api/initializers"
	"github.com/fireguard/cms-api/models"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

var Products = Resource[models.Product]{
	Singular: "product",
	Plural:   "products",
	Label:    "Product",
	Order:    "created_at desc",
	Check:    checkProductReferences,
}

var Brands = Resource[models.Brand]{
	Singular:     "brand",
	Plural:       "brands",
	Label:        "Brand",
	Order:        "name asc",
	BeforeDelete: detachBrandFromProducts,
}

// checkProductReferences makes sure brandId and every subProductIds entry
// point at existing records.
func checkProductReferences(ctx *gin.Context, product *models.Product) error {
	db := initializers.DB.WithContext(ctx.Request.Context())
	errs := validation.Errors{}

	if product.BrandID != nil {
		var count int64
		if err := db.Model(&models.Brand{}).Where("id = ?", *product.BrandID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			errs["brandId"] = validation.NewError("validation_brand_missing", "brand does not exist")
		}
	}

	if len(product.SubProductIDs) > 0 {
		var count int64
		ids := []uint(product.SubProductIDs)
		if err := db.Model(&models.SubProduct{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			errs["subProductIds"] = validation.NewError("validation_sub_product_missing", "one or more sub-products do not exist")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// detachBrandFromProducts keeps products of a deleted brand, unbranded.
func detachBrandFromProducts(tx *gorm.DB, brandID uint) error {
	return tx.Model(&models.Product{}).Where("brand_id = ?", brandID).Update("brand_id", nil).Error
}

// likeEscaper makes search text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// GetProducts lists products, optionally filtered by ?brandId= and ?search=.
func GetProducts(ctx *gin.Context) {
	query := initializers.DB.WithContext(ctx.Request.Context()).Order("created_at desc")

	if brandID := ctx.Query("brandId"); brandID != "" {
		id, err := strconv.ParseUint(brandID, 10, 64)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid brandId")
			return
		}
		query = query.Where("brand_id = ?", id)
	}
	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(search)+"%")
	}

	products := make([]models.Product, 0)
	if err := query.Find(&products).Error; err != nil {
		sendServerError(ctx, "Unable to fetch products", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

// GetProduct returns the product with its brand and sub-product cards.
func GetProduct(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	detail, err := loadProductDetail(ctx, id)
	if err != nil {
		sendStoreError(ctx, "Product not found", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": detail})
}

func loadProductDetail(ctx *gin.Context, id uint) (*models.ProductDetail, error) {
	db := initializers.DB.WithContext(ctx.Request.Context())

	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		return nil, err
	}
	detail := &models.ProductDetail{Product: product, SubProducts: []models.SubProductCard{}}

	if product.BrandID != nil {
		var brand models.Brand
		err := db.First(&brand, *product.BrandID).Error
		switch {
		case err == nil:
			detail.Brand = &brand
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	if len(product.SubProductIDs) == 0 {
		return detail, nil
	}

	var subProducts []models.SubProduct
	if err := db.Where("id IN ?", []uint(product.SubProductIDs)).Find(&subProducts).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.SubProduct, len(subProducts))
	for i := range subProducts {
		byID[subProducts[i].ID] = &subProducts[i]
	}
	for _, subID := range product.SubProductIDs {
		if sp, ok := byID[subID]; ok {
			detail.SubProducts = append(detail.SubProducts, sp.Card())
		}
	}
	return detail, nil
}
