package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the JSON envelope shared with the mobile client. The failure
// variant always carries a stable ErrorCode so the app can branch on
// failure kind without parsing prose.
type Body struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, data any, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Body{Success: true, Data: data, Message: message})
}

// Fail writes a failure envelope. msg must already be genericized; provider
// detail belongs in server-side logs only.
func Fail(c *gin.Context, status int, msg, code string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, Body{Success: false, Error: msg, ErrorCode: code})
}

// AbortFail writes a failure envelope and aborts the handler chain. Used by
// middleware.
func AbortFail(c *gin.Context, status int, msg, code string) {
	c.AbortWithStatusJSON(status, Body{Success: false, Error: msg, ErrorCode: code})
}
