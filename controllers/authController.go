package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/fireguard/cms-api/initializers"
	"github.com/fireguard/cms-api/middlewares"
	"github.com/fireguard/cms-api/models"
	"github.com/fireguard/cms-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgInvalidCredentials    = "invalid username or password"
	msgFailedToGenerateToken = "failed to generate session"
	msgLoggedIn              = "Logged in successfully."
	msgLoggedOut             = "Logged out successfully."
)

func findUserByUsername(ctx *gin.Context, username string) (models.User, error) {
	var user models.User
	result := initializers.DB.WithContext(ctx.Request.Context()).Where("username = ?", username).First(&user)
	return user, result.Error
}

func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middlewares.SessionCookieName, token, maxAge, "/", "", initializers.Config.CookieSecure, true)
}

// Login checks credentials and starts a 24 hour cookie session.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := loginData.Validate(); err != nil {
		sendValidationError(ctx, err)
		return
	}

	user, err := findUserByUsername(ctx, loginData.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			sendServerError(ctx, msgInternalServerError, err)
			return
		}
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := utils.ComparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, err := middlewares.IssueSessionToken(initializers.Config.JWTSecret, user.ID, user.Username, user.Role, time.Now())
	if err != nil {
		sendServerError(ctx, msgFailedToGenerateToken, err)
		return
	}

	setSessionCookie(ctx, token, int(middlewares.SessionTTL.Seconds()))
	initializers.Log.Infow("User logged in", "username", user.Username)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoggedIn, "user": user})
}

func Logout(ctx *gin.Context) {
	setSessionCookie(ctx, "", -1)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoggedOut})
}

// Me returns the user behind the current session.
func Me(ctx *gin.Context) {
	claims, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Session is invalid or has expired")
		return
	}

	var user models.User
	if err := initializers.DB.WithContext(ctx.Request.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusUnauthorized, "Session is invalid or has expired")
			return
		}
		sendServerError(ctx, msgInternalServerError, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}
