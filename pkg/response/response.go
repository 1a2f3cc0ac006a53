package response

import "github.com/gin-gonic/gin"

// The API speaks the flat JSON the SPA client expects: success bodies are
// bare objects and every failure is {"error": "..."} with an optional
// details map for field-level validation messages.

// Error writes an error body with the given status.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// ErrorDetails writes an error body carrying per-field details.
func ErrorDetails(c *gin.Context, status int, msg string, details any) {
	c.JSON(status, gin.H{"error": msg, "details": details})
}

// AbortError writes an error body and stops the handler chain. Middleware
// must use this variant so downstream handlers never run on a rejected
// request.
func AbortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
