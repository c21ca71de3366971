package api

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/onboarding/internal/auth"
)

//go:embed docs.html
var docsPage []byte

//go:embed openapi.json
var openAPISpec []byte

// docsGuard blocks the API documentation for non-privileged callers outside
// development. Development keeps the docs open for local work.
func docsGuard(tokens *auth.TokenManager, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if development {
			c.Next()
			return
		}

		claims, err := tokens.Validate(bearerToken(c))
		if err != nil || !claims.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Documentation is restricted to administrators",
			})
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return token
}

func serveDocs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", docsPage)
}

func serveOpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", openAPISpec)
}
