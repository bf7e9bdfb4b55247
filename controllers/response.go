package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fireguard/cms-api/initializers"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

const (
	msgInvalidInput        = "invalid input"
	msgValidationFailed    = "Validation failed"
	msgInternalServerError = "Internal server error"
	msgDuplicate           = "A record with the same unique value already exists."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// sendServerError logs err and answers with a generic 500.
func sendServerError(ctx *gin.Context, message string, err error) {
	initializers.Log.Errorw(message,
		"error", err,
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
	)
	sendErrorResponse(ctx, http.StatusInternalServerError, message)
}

// sendValidationError answers 400 with the field-level error map when err
// carries one.
func sendValidationError(ctx *gin.Context, err error) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{"message": msgValidationFailed, "errors": fieldErrs})
		return
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		sendServerError(ctx, msgInternalServerError, err)
		return
	}
	sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
}

// sendStoreError maps a persistence error to the matching response.
func sendStoreError(ctx *gin.Context, notFoundMessage string, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		sendErrorResponse(ctx, http.StatusBadRequest, msgDuplicate)
	default:
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			sendValidationError(ctx, err)
			return
		}
		sendServerError(ctx, msgInternalServerError, err)
	}
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func fieldError(field, code, message string) validation.Errors {
	return validation.Errors{field: validation.NewError(code, message)}
}
