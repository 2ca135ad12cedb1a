package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKey is the gin context key the request id travels under; the
// logging middleware sets it, the envelope echoes it back
const ContextKey = "requestID"

// Response represents a standard API response
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId"`
	Data      interface{} `json:"data,omitempty"`
}

// requestID returns the id assigned by the middleware, minting one for
// requests that bypassed it
func requestID(c *gin.Context) string {
	if id := c.GetString(ContextKey); id != "" {
		return id
	}
	id := uuid.NewString()
	c.Set(ContextKey, id)
	return id
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:      0,
		Message:   "success",
		RequestID: requestID(c),
		Data:      data,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:      code,
		Message:   message,
		RequestID: requestID(c),
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string) {
	Error(c, 500, message)
}
