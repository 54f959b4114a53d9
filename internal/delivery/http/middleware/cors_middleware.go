package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const corsAllowHeaders = "X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version, X-Request-ID"

// CORSMiddleware adds CORS headers for the website's browser requests.
//
// allowedOrigins is an explicit whitelist; a "*" entry allows any origin.
// Preflight requests always get an empty 200: a disallowed origin simply gets
// no Access-Control-* headers and the browser blocks the real request.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	whitelist := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			allowAll = true
			continue
		}
		if o != "" {
			whitelist[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		switch {
		case origin == "" && allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
			setCORSHeaders(c)
		case origin != "" && (allowAll || whitelist[origin]):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			setCORSHeaders(c)
		}

		// Vary header to ensure caches differentiate by Origin
		c.Header("Vary", "Origin")

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

func setCORSHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Header("Access-Control-Max-Age", "86400") // 24 hours
}
