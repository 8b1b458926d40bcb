package common

import "github.com/gin-gonic/gin"

// ErrorResponse is the uniform error payload of the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

func RespError(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, ErrorResponse{Error: msg})
}

func RespJSON(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}
