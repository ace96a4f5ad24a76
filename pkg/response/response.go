package response

import (
	"election-service/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Error writes a JSON error body with the status derived from the
// error's kind.
func Error(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
}

// Message writes a simple JSON message body.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
