package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the FireGuard CMS API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/api/login" - Start an admin session
- POST "/api/logout" - End the session
- GET "/api/me" - Current user

CONTENT (GET is public, writes need a session, DELETE needs an admin)
- GET|POST "/api/{resource}" - List or create
- GET|PUT|PATCH|DELETE "/api/{resource}/{id}" - Read, replace, merge or delete
  resources: products, sub-products, brands, blogs, gallery, portfolio,
  customers, contact-info, about-stats
- GET "/api/products?brandId=&search=" - Filter products
- GET "/api/sub-products/{id}/link-status" - Check an external link

PAGES
- GET "/api/pages" - List pages
- POST "/api/pages" - Create an empty page
- GET "/api/pages/{slug}" - Get page by slug
- POST "/api/pages/{slug}" - Save builder output
- PATCH "/api/pages/{slug}" - Rename
- DELETE "/api/pages/{slug}" - Delete
- GET "/api/pages/{slug}/preview" - Preview stored content
- POST "/api/pages/{slug}/publish" - Publish to the static bucket
- GET "/p/{slug}" - Public page

BUILDER
- POST "/api/builder/sessions" - Open an editor session
- GET|DELETE "/api/builder/sessions/{id}" - Inspect or close
- GET|PUT "/api/builder/sessions/{id}/project" - Load or stage editor state
- POST "/api/builder/sessions/{id}/save" - Persist
- GET "/api/builder/sessions/{id}/preview" - Preview unsaved state

SITE
- POST "/api/inquiries" - Submit a contact inquiry
- POST "/api/analytics" - Record a page visit
- GET "/api/analytics/summary" - Visits per path`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
