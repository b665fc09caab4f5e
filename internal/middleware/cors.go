package middleware

import (
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const defaultAllowHeaders = "Content-Type, Authorization"

// CORS answers browser preflights for the frontend at allowedOrigin ("*"
// echoes any origin). methods is called once, on the first request, so it
// can describe routes registered after the middleware was installed.
func CORS(allowedOrigin string, methods func() []string) gin.HandlerFunc {
	var (
		once         sync.Once
		allowMethods string
	)

	return func(c *gin.Context) {
		once.Do(func() {
			allowMethods = strings.Join(methods(), ", ")
		})

		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowedOrigin == "*" || origin == allowedOrigin) {
			// credentials forbid a literal wildcard
			c.Header("Access-Control-Allow-Origin", origin)
		}

		c.Header("Vary", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", allowMethods)

		headers := strings.TrimSpace(c.Request.Header.Get("Access-Control-Request-Headers"))
		if headers == "" {
			headers = defaultAllowHeaders
		}
		c.Header("Access-Control-Allow-Headers", headers)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RouteMethods lists the distinct methods registered on r plus OPTIONS,
// sorted.
func RouteMethods(r *gin.Engine) []string {
	methods := []string{http.MethodOptions}
	for _, route := range r.Routes() {
		if !slices.Contains(methods, route.Method) {
			methods = append(methods, route.Method)
		}
	}
	slices.Sort(methods)
	return methods
}
