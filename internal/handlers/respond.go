package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Error writes the shared error envelope. details carries the HTTP status so
// frontend error handling can branch without reading the response code.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
		"details": fmt.Sprintf("HTTP %d", status),
	})
}

// orNull maps an empty string to JSON null, for optional envelope fields.
func orNull(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or not a number.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
