package controllers

import (
	"net/http"

	"github.com/fireguard/cms-api/initializers"
	"github.com/fireguard/cms-api/models"
	"github.com/fireguard/cms-api/utils"
	"github.com/gin-gonic/gin"
)

var Inquiries = Resource[models.Inquiry]{
	Singular:    "inquiry",
	Plural:      "inquiries",
	Label:       "Inquiry",
	Order:       "created_at desc",
	AfterCreate: notifyInquiry,
}

var AnalyticsEvents = Resource[models.Analytics]{
	Singular: "event",
	Plural:   "events",
	Label:    "Analytics event",
	Order:    "created_at desc",
	Check:    stampUserAgent,
}

// notifyInquiry mails the new inquiry to the configured inbox. Delivery
// runs in the background and failures are only logged.
func notifyInquiry(ctx *gin.Context, inquiry *models.Inquiry) {
	to := initializers.Config.InquiryNotifyEmail
	if to == "" || !utils.MailConfigured() {
		return
	}

	data := utils.EmailData{
		Name:    inquiry.Name,
		Email:   inquiry.Email,
		Phone:   inquiry.Phone,
		Subject: inquiry.Subject,
		Message: inquiry.Message,
	}
	subject := "New inquiry"
	if inquiry.Subject != "" {
		subject += ": " + inquiry.Subject
	}
	id := inquiry.ID

	go func() {
		if err := utils.SendEmail(to, subject, data); err != nil {
			initializers.Log.Errorw("Inquiry notification failed", "inquiry", id, "error", err)
			return
		}
		initializers.Log.Infow("Inquiry notification sent", "inquiry", id)
	}()
}

func stampUserAgent(ctx *gin.Context, event *models.Analytics) error {
	if event.UserAgent == "" {
		event.UserAgent = ctx.Request.UserAgent()
	}
	if event.Referrer == "" {
		event.Referrer = ctx.Request.Referer()
	}
	return nil
}

// GetAnalyticsSummary returns visit counts per path, busiest first.
func GetAnalyticsSummary(ctx *gin.Context) {
	db := initializers.DB.WithContext(ctx.Request.Context())

	var total int64
	if err := db.Model(&models.Analytics{}).Count(&total).Error; err != nil {
		sendServerError(ctx, "Unable to summarize analytics", err)
		return
	}

	paths := make([]models.PathVisits, 0)
	err := db.Model(&models.Analytics{}).
		Select("path, COUNT(*) AS visits").
		Group("path").
		Order("visits desc, path asc").
		Limit(50).
		Scan(&paths).Error
	if err != nil {
		sendServerError(ctx, "Unable to summarize analytics", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"summary": gin.H{"total": total, "paths": paths}})
}
