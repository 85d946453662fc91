// utils/response.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondWithError aborts the request with a JSON {"error": message} body.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RespondWithDetails is RespondWithError with a details payload, used for
// field-level validation failures.
func RespondWithDetails(c *gin.Context, code int, message string, details interface{}) {
	c.AbortWithStatusJSON(code, gin.H{"error": message, "details": details})
}
