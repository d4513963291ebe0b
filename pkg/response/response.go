package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fields are payload keys written next to message and request_id
type Fields map[string]any

func body(c *gin.Context, message string, fields Fields) gin.H {
	h := gin.H{"message": message}
	if rid := c.GetString("request_id"); rid != "" {
		h["request_id"] = rid
	}
	for k, v := range fields {
		h[k] = v
	}
	return h
}

// Success writes a JSON body made of message plus the given payload fields
func Success(c *gin.Context, status int, message string, fields Fields) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, body(c, message, fields))
}

// Error writes a client safe error. details, when non-nil, is exposed as "errors".
func Error(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	f := Fields{}
	if details != nil {
		f["errors"] = details
	}
	c.JSON(status, body(c, message, f))
}

// Abort is Error for middleware: it also stops the handler chain
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, body(c, message, nil))
}
