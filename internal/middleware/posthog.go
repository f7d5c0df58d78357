package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_reconciler/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog.
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware tracks successful API calls as PostHog events named after the matched route,
// e.g. "PUT /api/v1/companies/:company_id/journal-entries/:entry_id" becomes "journal_entries_put".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := routeEventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"status_code": c.Writer.Status(),
		}
		if companyID := c.Param("company_id"); companyID != "" {
			props["company_id"] = companyID
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent sends a domain event for the current user, e.g. when an edit left sync warnings.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}
	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	if companyID := c.Param("company_id"); companyID != "" {
		properties["company_id"] = companyID
	}
	posthogClient.Enqueue(userID, eventName, properties)
}

// routeEventName keeps the static segments after the company scope.
func routeEventName(method, fullPath string) string {
	if fullPath == "" {
		return ""
	}
	segments := strings.Split(strings.Trim(fullPath, "/"), "/")
	parts := make([]string, 0, len(segments)+1)
	for _, s := range segments {
		if s == "" || strings.HasPrefix(s, ":") || strings.HasPrefix(s, "*") {
			continue
		}
		switch s {
		case "api", "v1", "companies":
			continue
		}
		parts = append(parts, strings.ReplaceAll(s, "-", "_"))
	}
	parts = append(parts, strings.ToLower(method))
	return strings.Join(parts, "_")
}
