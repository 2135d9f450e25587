package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// All endpoints answer with a flat envelope: {"success": bool, "message": ...}
// plus any payload fields merged at the top level. Errors carry a non-2xx
// status and, for validation failures, a details map.

// OK writes a success envelope. Payload fields are merged beside success and
// message; a payload key named "success" or "message" is ignored.
func OK(c *gin.Context, status int, message string, payload gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		if k == "success" || k == "message" {
			continue
		}
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail writes an error envelope and leaves the request unaborted; middleware
// uses AbortFail instead.
func Fail(c *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := gin.H{"success": false, "message": message}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

// AbortFail writes an error envelope and aborts the handler chain.
func AbortFail(c *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := gin.H{"success": false, "message": message}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}
