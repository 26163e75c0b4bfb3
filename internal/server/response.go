package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// apiResponse is the envelope every JSON endpoint answers with. Data is
// dropped on errors; meta carries extras such as per-field messages.
type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Ok writes a 200 with code 0 and message "ok".
func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

// Error writes status with the same value echoed as code, so clients that
// only read the body still see 400 or 404. No data is sent.
func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// intQuery reads key as an int. ok is false when the value is present but
// not a number.
func intQuery(c *gin.Context, key string, def int) (int, bool) {
	val := c.Query(key)
	if val == "" {
		return def, true
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return i, true
}
